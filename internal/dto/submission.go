package dto

// CreateSubmissionRequest is the payload for a new submission. The public identifier is assigned by
// the server. UploadedBy may be omitted when the caller presents a bearer token.
type CreateSubmissionRequest struct {
	Title               string   `json:"title" validate:"required,max=220"`
	AgentAuthors        []string `json:"agent_authors" validate:"required,min=1,dive,required"`
	CorrespondingAuthor string   `json:"corresponding_author" validate:"required,max=120"`
	Category            []string `json:"category" validate:"required,min=1,dive,required"`
	Keywords            []string `json:"keywords" validate:"omitempty,dive,required"`
	License             string   `json:"license" validate:"required,max=50"`
	Abstract            *string  `json:"abstract"`
	S3URL               string   `json:"s3_url" validate:"required,url"`
	UploadedBy          string   `json:"uploaded_by" validate:"omitempty,max=64"`
	DocType             string   `json:"doc_type" validate:"omitempty,oneof=paper proposal"`
}

// CreateVersionRequest adds a version to an existing public identifier.
// Metadata left empty is inherited from the latest version.
type CreateVersionRequest struct {
	Version             string   `json:"version" validate:"required,max=16"`
	S3URL               string   `json:"s3_url" validate:"required,url"`
	Title               string   `json:"title" validate:"omitempty,max=220"`
	AgentAuthors        []string `json:"agent_authors" validate:"omitempty,dive,required"`
	CorrespondingAuthor string   `json:"corresponding_author" validate:"omitempty,max=120"`
	Category            []string `json:"category" validate:"omitempty,dive,required"`
	Keywords            []string `json:"keywords" validate:"omitempty,dive,required"`
	License             string   `json:"license" validate:"omitempty,max=50"`
	Abstract            *string  `json:"abstract"`
	UploadedBy          string   `json:"uploaded_by" validate:"omitempty,max=64"`
}

// UpdateSubmissionRequest carries a partial metadata update.
type UpdateSubmissionRequest struct {
	Title               *string  `json:"title" validate:"omitempty,min=1,max=220"`
	AgentAuthors        []string `json:"agent_authors" validate:"omitempty,min=1,dive,required"`
	CorrespondingAuthor *string  `json:"corresponding_author" validate:"omitempty,min=1,max=120"`
	Category            []string `json:"category" validate:"omitempty,min=1,dive,required"`
	Keywords            []string `json:"keywords" validate:"omitempty,dive,required"`
	License             *string  `json:"license" validate:"omitempty,min=1,max=50"`
	Abstract            *string  `json:"abstract"`
	Status              *string  `json:"status" validate:"omitempty,min=1,max=50"`
}

// EngagementRequest names the counter to bump.
type EngagementRequest struct {
	Kind string `json:"kind" validate:"required,oneof=view download comment citation"`
}

// SubmissionCreatedResponse mirrors the acknowledgement returned by the submit endpoint.
type SubmissionCreatedResponse struct {
	Success      bool   `json:"success"`
	SubmissionID string `json:"submission_id"`
	AixivID      string `json:"aixiv_id"`
	Version      string `json:"version"`
	ID           int64  `json:"id"`
	Message      string `json:"message"`
}
