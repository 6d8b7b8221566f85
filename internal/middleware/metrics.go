package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	messagesReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "weather_bot_messages_received_total",
		Help: "Total number of updates received",
	}, []string{"kind"})

	commandsExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "weather_bot_commands_executed_total",
		Help: "Total number of commands executed",
	}, []string{"command"})

	callbackActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "weather_bot_callback_actions_total",
		Help: "Total number of menu callback actions handled",
	}, []string{"action"})

	weatherFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "weather_bot_weather_fetches_total",
		Help: "Total number of upstream weather fetches",
	}, []string{"kind", "status"})

	weatherFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "weather_bot_weather_fetch_duration_seconds",
		Help:    "Duration of upstream weather fetches",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "weather_bot_cache_hits_total",
		Help: "Total number of weather cache hits",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "weather_bot_cache_misses_total",
		Help: "Total number of weather cache misses",
	})

	notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "weather_bot_notifications_total",
		Help: "Daily notification fire outcomes",
	}, []string{"status"})

	rateLimitExceeded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "weather_bot_rate_limit_exceeded_total",
		Help: "Total number of rate limit exceeded events",
	})

	scheduledJobs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "weather_bot_scheduled_jobs",
		Help: "Number of registered daily notification jobs",
	})
)

// Metrics provides methods to record metrics
type Metrics struct{}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordMessageReceived records a received update by kind (command, text, callback)
func (m *Metrics) RecordMessageReceived(kind string) {
	messagesReceived.WithLabelValues(kind).Inc()
}

// RecordCommandExecuted records an executed command
func (m *Metrics) RecordCommandExecuted(command string) {
	commandsExecuted.WithLabelValues(command).Inc()
}

// RecordCallbackAction records a handled menu action
func (m *Metrics) RecordCallbackAction(action string) {
	callbackActions.WithLabelValues(action).Inc()
}

// RecordWeatherFetch records an upstream fetch
func (m *Metrics) RecordWeatherFetch(kind, status string, duration time.Duration) {
	weatherFetches.WithLabelValues(kind, status).Inc()
	weatherFetchDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordCacheHit records a weather cache hit
func (m *Metrics) RecordCacheHit() {
	cacheHits.Inc()
}

// RecordCacheMiss records a weather cache miss
func (m *Metrics) RecordCacheMiss() {
	cacheMisses.Inc()
}

// RecordNotification records one daily notification fire outcome
func (m *Metrics) RecordNotification(status string) {
	notifications.WithLabelValues(status).Inc()
}

// RecordRateLimitExceeded records a rate limit exceeded event
func (m *Metrics) RecordRateLimitExceeded() {
	rateLimitExceeded.Inc()
}

// SetScheduledJobs sets the registered job gauge
func (m *Metrics) SetScheduledJobs(count float64) {
	scheduledJobs.Set(count)
}

// StartMetricsServer starts the metrics HTTP server
func StartMetricsServer(port int, path string) error {
	router := mux.NewRouter()
	router.Handle(path, promhttp.Handler())

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}
