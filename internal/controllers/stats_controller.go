package controllers

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Abdualzizsm/telegram-bot/internal/providers"
	"github.com/Abdualzizsm/telegram-bot/internal/services"
)

// StatsController exposes read-only ledger views for operational tooling.
type StatsController struct {
	logger  providers.Logger
	service services.LedgerServiceInterface
	cache   providers.CacheProviderInterface
}

func NewStatsController(logger providers.Logger, service services.LedgerServiceInterface, cache providers.CacheProviderInterface) *StatsController {
	return &StatsController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func (sc *StatsController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := sc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

type statsResponse struct {
	Users          int   `json:"users"`
	ActiveToday    int   `json:"active_today"`
	TotalDownloads int64 `json:"total_downloads"`
}

func (sc *StatsController) GetStats(w http.ResponseWriter, r *http.Request) {
	sc.serveFromCacheOrCompute(w, "api:stats", func() (any, error) {
		return statsResponse{
			Users:          sc.service.UserCount(),
			ActiveToday:    sc.service.ActiveSince(24 * time.Hour),
			TotalDownloads: sc.service.TotalDownloads(),
		}, nil
	})
}

func (sc *StatsController) GetUsers(w http.ResponseWriter, r *http.Request) {
	sc.serveFromCacheOrCompute(w, "api:users", func() (any, error) {
		return sc.service.Profiles(), nil
	})
}
