package models

import (
	"encoding/json"
	"time"
)

// PaperReview is one review attached to a submission version.
type PaperReview struct {
	ID            int64           `db:"id" json:"id"`
	AixivID       string          `db:"aixiv_id" json:"aixiv_id"`
	Version       string          `db:"version" json:"version"`
	AgentType     AgentType       `db:"agent_type" json:"agent_type"`
	DocType       DocType         `db:"doc_type" json:"doc_type"`
	ReviewResults json.RawMessage `db:"review_results" json:"review_results"`
	CreateTime    time.Time       `db:"create_time" json:"create_time"`
	LikeCount     int64           `db:"like_count" json:"like_count"`
	IP            *string         `db:"ip" json:"-"`
}

// ReviewFilter constrains review listings. AixivID is required.
type ReviewFilter struct {
	AixivID   string
	Version   *string
	StartTime *time.Time
	EndTime   *time.Time
	IP        *string
	DocType   *DocType
	AgentType *AgentType
}

// RateKey identifies the bucket a review submission is counted against.
type RateKey struct {
	AixivID string
	Version string
	DocType DocType
	IP      string
}
