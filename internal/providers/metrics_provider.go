package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/atomic"

	"github.com/Abdualzizsm/telegram-bot/internal/services"
	"github.com/Abdualzizsm/telegram-bot/internal/structures"
)

type MetricsProviderInterface interface {
	IncDownloads(source, outcome string)
	ObserveDownloadDuration(source string, duration time.Duration)
	IncActiveDownloads()
	DecActiveDownloads()
	IncBroadcastSent()
	IncBroadcastFailed()
	ObservePersistenceDuration(duration time.Duration)
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
}

type MetricsProvider struct {
	downloadsTotal      *prometheus.CounterVec
	downloadDuration    *prometheus.HistogramVec
	broadcastSent       prometheus.Counter
	broadcastFailed     prometheus.Counter
	persistenceDuration prometheus.Histogram
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	activeDownloads     atomic.Int64
}

func (m *MetricsProvider) IncDownloads(source, outcome string) {
	m.downloadsTotal.WithLabelValues(source, outcome).Inc()
}

func (m *MetricsProvider) ObserveDownloadDuration(source string, duration time.Duration) {
	m.downloadDuration.WithLabelValues(source).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncActiveDownloads() {
	m.activeDownloads.Inc()
}

func (m *MetricsProvider) DecActiveDownloads() {
	m.activeDownloads.Dec()
}

func (m *MetricsProvider) IncBroadcastSent() {
	m.broadcastSent.Inc()
}

func (m *MetricsProvider) IncBroadcastFailed() {
	m.broadcastFailed.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, service services.LedgerServiceInterface) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		downloadsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tgdl_downloads_total",
			Help: "Total number of download attempts by source and outcome",
		}, []string{"source", "outcome"}),

		downloadDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tgdl_download_duration_seconds",
			Help:    "End-to-end download duration in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"source"}),

		broadcastSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tgdl_broadcast_sent_total",
			Help: "Total number of broadcast messages delivered",
		}),

		broadcastFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tgdl_broadcast_failed_total",
			Help: "Total number of broadcast deliveries that failed",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tgdl_persistence_duration_seconds",
			Help:    "Duration of ledger persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tgdl_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tgdl_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tgdl_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tgdl_cache_misses_total",
			Help: "Total number of cache misses",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "tgdl_active_downloads",
		Help: "Number of downloads currently in flight",
	}, func() float64 {
		return float64(m.activeDownloads.Load())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "tgdl_users_total",
		Help: "Total number of user profiles in the ledger",
	}, func() float64 {
		return float64(service.UserCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "tgdl_downloads_recorded_total",
		Help: "Grand-total download counter from the ledger",
	}, func() float64 {
		return float64(service.TotalDownloads())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncDownloads(_, _ string)                            {}
func (n *noopMetrics) ObserveDownloadDuration(_ string, _ time.Duration)   {}
func (n *noopMetrics) IncActiveDownloads()                                 {}
func (n *noopMetrics) DecActiveDownloads()                                 {}
func (n *noopMetrics) IncBroadcastSent()                                   {}
func (n *noopMetrics) IncBroadcastFailed()                                 {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)          {}
func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                    {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)    {}
func (n *noopMetrics) IncCacheHits()                                       {}
func (n *noopMetrics) IncCacheMisses()                                     {}
