package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdualzizsm/telegram-bot/internal/controllers"
	"github.com/Abdualzizsm/telegram-bot/internal/services"
	"github.com/Abdualzizsm/telegram-bot/internal/structures"
	"github.com/Abdualzizsm/telegram-bot/internal/testutil"
)

func routesTestController(t *testing.T) *controllers.StatsController {
	t.Helper()
	conf := &structures.Config{}
	conf.Persistence.FilePath = "ledger.json"
	service := services.NewLedgerService(conf, &testutil.MockLedgerStore{}, &testutil.MockLogger{})
	return controllers.NewStatsController(&testutil.MockLogger{}, service, testutil.NewMockCache())
}

func TestInitRoutes_RegistersStatsRoutes(t *testing.T) {
	router := InitRoutes(routesTestController(t), &structures.Config{})
	routes := router.GetRoutes()

	require.Len(t, routes, 2)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}
	assert.Contains(t, urls, "/stats")
	assert.Contains(t, urls, "/users")
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	router := InitRoutes(routesTestController(t), &structures.Config{})

	mux := http.NewServeMux()
	for _, r := range router.GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/stats", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
