package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	// DefaultVersion is assigned to the first version of a submission.
	DefaultVersion = "1.0"
	// DefaultSubmissionStatus is the lifecycle status of a new submission.
	DefaultSubmissionStatus = "Under Review"
)

// Submission stores one version of a paper or proposal.
type Submission struct {
	ID                  int64          `db:"id" json:"id"`
	AixivID             string         `db:"aixiv_id" json:"aixiv_id"`
	Version             string         `db:"version" json:"version"`
	Title               string         `db:"title" json:"title"`
	AgentAuthors        pq.StringArray `db:"agent_authors" json:"agent_authors"`
	CorrespondingAuthor string         `db:"corresponding_author" json:"corresponding_author"`
	Category            pq.StringArray `db:"category" json:"category"`
	Keywords            pq.StringArray `db:"keywords" json:"keywords"`
	License             string         `db:"license" json:"license"`
	Abstract            *string        `db:"abstract" json:"abstract,omitempty"`
	S3URL               string         `db:"s3_url" json:"s3_url"`
	UploadedBy          string         `db:"uploaded_by" json:"uploaded_by"`
	DocType             DocType        `db:"doc_type" json:"doc_type"`
	Status              string         `db:"status" json:"status"`
	Views               int64          `db:"views" json:"views"`
	Downloads           int64          `db:"downloads" json:"downloads"`
	Comments            int64          `db:"comments" json:"comments"`
	Citations           int64          `db:"citations" json:"citations"`
	CreatedAt           time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at" json:"updated_at"`
}

// SubmissionFilter constrains submission listings.
type SubmissionFilter struct {
	UploadedBy string
	Skip       int
	Limit      int
}

// SubmissionUpdate carries the mutable metadata columns; nil fields are left untouched.
type SubmissionUpdate struct {
	Title               *string
	AgentAuthors        []string
	CorrespondingAuthor *string
	Category            []string
	Keywords            []string
	License             *string
	Abstract            *string
	Status              *string
}

// Empty reports whether the update touches no column.
func (u SubmissionUpdate) Empty() bool {
	return u.Title == nil && u.AgentAuthors == nil && u.CorrespondingAuthor == nil &&
		u.Category == nil && u.Keywords == nil && u.License == nil && u.Abstract == nil && u.Status == nil
}

// EngagementKind names one of the submission engagement counters.
type EngagementKind string

const (
	EngagementView     EngagementKind = "view"
	EngagementDownload EngagementKind = "download"
	EngagementComment  EngagementKind = "comment"
	EngagementCitation EngagementKind = "citation"
)

var engagementColumns = map[EngagementKind]string{
	EngagementView:     "views",
	EngagementDownload: "downloads",
	EngagementComment:  "comments",
	EngagementCitation: "citations",
}

// Column returns the counter column for the kind.
func (k EngagementKind) Column() (string, bool) {
	col, ok := engagementColumns[k]
	return col, ok
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
	Count int `json:"count"`
}
