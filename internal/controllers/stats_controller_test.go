package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdualzizsm/telegram-bot/internal/models"
	"github.com/Abdualzizsm/telegram-bot/internal/services"
	"github.com/Abdualzizsm/telegram-bot/internal/structures"
	"github.com/Abdualzizsm/telegram-bot/internal/testutil"
)

func newStatsController(t *testing.T) (*StatsController, services.LedgerServiceInterface, *testutil.MockCache) {
	t.Helper()
	conf := &structures.Config{}
	conf.Persistence.FilePath = "ledger.json"
	service := services.NewLedgerService(conf, &testutil.MockLedgerStore{}, &testutil.MockLogger{})
	cache := testutil.NewMockCache()
	return NewStatsController(&testutil.MockLogger{}, service, cache), service, cache
}

func TestStatsController_GetStats(t *testing.T) {
	sc, service, _ := newStatsController(t)
	require.NoError(t, service.Record(models.NewContactEvent(1, models.Identity{FirstName: "A"})))
	require.NoError(t, service.Record(models.NewDownloadEvent(1)))

	rec := httptest.NewRecorder()
	sc.GetStats(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp statsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Users)
	assert.Equal(t, 1, resp.ActiveToday)
	assert.Equal(t, int64(1), resp.TotalDownloads)
}

func TestStatsController_GetStatsServesFromCache(t *testing.T) {
	sc, service, cache := newStatsController(t)

	rec := httptest.NewRecorder()
	sc.GetStats(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	first := rec.Body.String()
	_, cached := cache.Get("api:stats")
	assert.True(t, cached)

	// Later mutations are invisible until the cache entry expires.
	require.NoError(t, service.Record(models.NewDownloadEvent(1)))
	rec = httptest.NewRecorder()
	sc.GetStats(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	assert.Equal(t, first, rec.Body.String())
}

func TestStatsController_GetUsers(t *testing.T) {
	sc, service, _ := newStatsController(t)
	require.NoError(t, service.Record(models.NewContactEvent(1, models.Identity{FirstName: "Sara", Username: "sara"})))

	rec := httptest.NewRecorder()
	sc.GetUsers(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var profiles []*models.UserProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profiles))
	require.Len(t, profiles, 1)
	assert.Equal(t, "sara", profiles[0].Username)
}
