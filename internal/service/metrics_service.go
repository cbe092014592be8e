package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/aixiv-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry          *prometheus.Registry
	handler           http.Handler
	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	submissionsTotal  *prometheus.CounterVec
	createRetries     prometheus.Counter
	writeConflicts    prometheus.Counter
	reviewsTotal      *prometheus.CounterVec
	reviewRateLimited prometheus.Counter

	requestCount         uint64
	requestDurationTotal uint64
	submissionCount      uint64
	retryCount           uint64
	conflictCount        uint64
	reviewCount          uint64
	rateLimitedCount     uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	submissionsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "submissions_created_total",
		Help: "Submissions persisted, by doc type",
	}, []string{"doc_type"})

	createRetries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "submission_create_retries_total",
		Help: "Submission inserts retried after an identifier collision",
	})

	writeConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "submission_write_conflicts_total",
		Help: "Submission creations that exhausted their retry budget",
	})

	reviewsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reviews_created_total",
		Help: "Reviews persisted, by agent type",
	}, []string{"agent_type"})

	reviewRateLimited := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "review_rate_limited_total",
		Help: "Review submissions rejected by the rate limiter",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, submissionsTotal, createRetries, writeConflicts, reviewsTotal, reviewRateLimited, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:          registry,
		handler:           handler,
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		submissionsTotal:  submissionsTotal,
		createRetries:     createRetries,
		writeConflicts:    writeConflicts,
		reviewsTotal:      reviewsTotal,
		reviewRateLimited: reviewRateLimited,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordSubmissionCreated counts a persisted submission.
func (m *MetricsService) RecordSubmissionCreated(docType models.DocType) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(docType.String()).Inc()
	atomic.AddUint64(&m.submissionCount, 1)
}

// RecordCreateRetry counts an identifier collision that triggered a retry.
func (m *MetricsService) RecordCreateRetry() {
	if m == nil {
		return
	}
	m.createRetries.Inc()
	atomic.AddUint64(&m.retryCount, 1)
}

// RecordWriteConflict counts a creation that ran out of attempts.
func (m *MetricsService) RecordWriteConflict() {
	if m == nil {
		return
	}
	m.writeConflicts.Inc()
	atomic.AddUint64(&m.conflictCount, 1)
}

// RecordReviewCreated counts a persisted review.
func (m *MetricsService) RecordReviewCreated(agentType models.AgentType) {
	if m == nil {
		return
	}
	m.reviewsTotal.WithLabelValues(agentType.String()).Inc()
	atomic.AddUint64(&m.reviewCount, 1)
}

// RecordReviewRateLimited counts a rejected review.
func (m *MetricsService) RecordReviewRateLimited() {
	if m == nil {
		return
	}
	m.reviewRateLimited.Inc()
	atomic.AddUint64(&m.rateLimitedCount, 1)
}

// Snapshot returns aggregated metrics suitable for the summary endpoint.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return models.SystemMetrics{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		SubmissionsCreated:       atomic.LoadUint64(&m.submissionCount),
		SubmissionCreateRetries:  atomic.LoadUint64(&m.retryCount),
		SubmissionWriteConflicts: atomic.LoadUint64(&m.conflictCount),
		ReviewsCreated:           atomic.LoadUint64(&m.reviewCount),
		ReviewsRateLimited:       atomic.LoadUint64(&m.rateLimitedCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
