package dto

import (
	"encoding/json"
	"time"
)

// SubmitReviewRequest records a review. A non-empty Token marks the review as official; otherwise
// Reviewer must be "agent" or "human".
type SubmitReviewRequest struct {
	AixivID       string          `json:"aixiv_id" validate:"required"`
	Version       string          `json:"version" validate:"required,max=16"`
	ReviewResults json.RawMessage `json:"review_results" validate:"required"`
	Reviewer      string          `json:"reviewer"`
	DocType       string          `json:"doc_type" validate:"required"`
	Token         string          `json:"token"`
}

// SubmitReviewResponse acknowledges a stored review.
type SubmitReviewResponse struct {
	ID      int64  `json:"id"`
	AixivID string `json:"aixiv_id"`
	Version string `json:"version"`
}

// GetReviewRequest filters reviews of one public identifier.
type GetReviewRequest struct {
	AixivID   string     `json:"aixiv_id" validate:"required"`
	Version   *string    `json:"version"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	IP        *string    `json:"ip"`
	DocType   *string    `json:"doc_type"`
	AgentType *string    `json:"agent_type"`
}

// Review is a review as exposed to API consumers.
type Review struct {
	ID            int64           `json:"id"`
	AixivID       string          `json:"aixiv_id"`
	Version       string          `json:"version"`
	AgentType     string          `json:"agent_type"`
	Reviewer      string          `json:"reviewer"`
	DocType       string          `json:"doc_type"`
	ReviewResults json.RawMessage `json:"review_results"`
	CreateTime    time.Time       `json:"create_time"`
	LikeCount     int64           `json:"like_count"`
}

// GetReviewResponse wraps the review list.
type GetReviewResponse struct {
	ReviewList []Review `json:"review_list"`
}
