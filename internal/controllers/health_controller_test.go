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

func TestHealthController_Health(t *testing.T) {
	conf := &structures.Config{}
	conf.Persistence.FilePath = "ledger.json"
	service := services.NewLedgerService(conf, &testutil.MockLedgerStore{}, &testutil.MockLogger{})
	require.NoError(t, service.Record(models.NewContactEvent(1, models.Identity{FirstName: "A"})))

	hc := NewHealthController(service)

	rec := httptest.NewRecorder()
	hc.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Users)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 0.0)
}

func TestHealthController_MethodNotAllowed(t *testing.T) {
	hc := NewHealthController(services.NewLedgerService(
		&structures.Config{}, &testutil.MockLedgerStore{}, &testutil.MockLogger{}))

	rec := httptest.NewRecorder()
	hc.Health(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h0m5s", formatDuration(5e9))
	assert.Equal(t, "1h1m1s", formatDuration(3661e9))
}
