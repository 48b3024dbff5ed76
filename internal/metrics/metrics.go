package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Webhook metrics
	WebhookDurationSeconds *prometheus.HistogramVec
	WebhookRequestsTotal   *prometheus.CounterVec

	// Detail cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Store metrics
	StoreRequestsTotal   *prometheus.CounterVec
	StoreDurationSeconds *prometheus.HistogramVec

	// Loading-indicator notifier metrics
	NotifierTasksTotal    *prometheus.CounterVec
	NotifierAttemptsTotal *prometheus.CounterVec

	// Form endpoint metrics
	FormSubmissionsTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		WebhookDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "housebot_webhook_duration_seconds",
				Help:    "Webhook event processing duration in seconds by event type",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"event_type"}, // event_type: message, postback, follow
		),

		WebhookRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "housebot_webhook_requests_total",
				Help: "Total number of webhook events by event type and status",
			},
			[]string{"event_type", "status"}, // status: success, error, reply_error
		),

		CacheHitsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "housebot_cache_hits_total",
				Help: "Total number of detail cache hits by collection",
			},
			[]string{"collection"},
		),

		CacheMissesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "housebot_cache_misses_total",
				Help: "Total number of detail cache misses by collection",
			},
			[]string{"collection"},
		),

		StoreRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "housebot_store_requests_total",
				Help: "Total number of document store operations by collection, op and status",
			},
			[]string{"collection", "op", "status"}, // op: get, query, set, add
		),

		StoreDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "housebot_store_duration_seconds",
				Help:    "Document store operation duration in seconds by collection",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"collection"},
		),

		NotifierTasksTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "housebot_notifier_tasks_total",
				Help: "Total number of loading-indicator tasks by outcome",
			},
			[]string{"outcome"}, // outcome: sent, dropped, failed
		),

		NotifierAttemptsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "housebot_notifier_attempts_total",
				Help: "Total number of loading-indicator HTTP attempts by status class",
			},
			[]string{"status"}, // status: 2xx, 4xx, 5xx, network_error
		),

		FormSubmissionsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "housebot_form_submissions_total",
				Help: "Total number of form submissions by endpoint and status",
			},
			[]string{"endpoint", "status"}, // endpoint: subscribe, search, booking
		),

		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "housebot_rate_limiter_dropped_total",
				Help: "Total number of requests that hit the rate limiter by limiter type",
			},
			[]string{"limiter"},
		),
	}

	return m
}

// RecordWebhook records a webhook event with its processing duration.
func (m *Metrics) RecordWebhook(eventType, status string, durationSeconds float64) {
	m.WebhookRequestsTotal.WithLabelValues(eventType, status).Inc()
	if durationSeconds > 0 {
		m.WebhookDurationSeconds.WithLabelValues(eventType).Observe(durationSeconds)
	}
}

// RecordCacheHit records a detail cache hit.
func (m *Metrics) RecordCacheHit(collection string) {
	m.CacheHitsTotal.WithLabelValues(collection).Inc()
}

// RecordCacheMiss records a detail cache miss.
func (m *Metrics) RecordCacheMiss(collection string) {
	m.CacheMissesTotal.WithLabelValues(collection).Inc()
}

// RecordStore records a document store operation.
func (m *Metrics) RecordStore(collection, op, status string, durationSeconds float64) {
	m.StoreRequestsTotal.WithLabelValues(collection, op, status).Inc()
	if durationSeconds > 0 {
		m.StoreDurationSeconds.WithLabelValues(collection).Observe(durationSeconds)
	}
}

// RecordNotifierTask records the final outcome of one notifier task.
func (m *Metrics) RecordNotifierTask(outcome string) {
	m.NotifierTasksTotal.WithLabelValues(outcome).Inc()
}

// RecordNotifierAttempt records a single loading-indicator HTTP attempt.
func (m *Metrics) RecordNotifierAttempt(status string) {
	m.NotifierAttemptsTotal.WithLabelValues(status).Inc()
}

// RecordFormSubmission records a form endpoint submission.
func (m *Metrics) RecordFormSubmission(endpoint, status string) {
	m.FormSubmissionsTotal.WithLabelValues(endpoint, status).Inc()
}

// RecordRateLimiterDrop records a request rejected by a rate limiter.
func (m *Metrics) RecordRateLimiterDrop(limiter string) {
	m.RateLimiterDropped.WithLabelValues(limiter).Inc()
}
