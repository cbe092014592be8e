package models

import "time"

// SystemMetrics is a point-in-time summary of process counters.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	SubmissionsCreated       uint64    `json:"submissions_created"`
	SubmissionCreateRetries  uint64    `json:"submission_create_retries"`
	SubmissionWriteConflicts uint64    `json:"submission_write_conflicts"`
	ReviewsCreated           uint64    `json:"reviews_created"`
	ReviewsRateLimited       uint64    `json:"reviews_rate_limited"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
