package dto

import "time"

// UploadURLRequest asks for a pre-signed PUT URL for filename.
type UploadURLRequest struct {
	Filename string `json:"filename" validate:"required,max=255"`
}

// UploadURLResponse describes where and how the client must upload the file.
type UploadURLResponse struct {
	UploadURL     string    `json:"upload_url"`
	FileKey       string    `json:"file_key"`
	S3URL         string    `json:"s3_url"`
	ContentType   string    `json:"content_type"`
	FileExtension string    `json:"file_extension"`
	ExpiresAt     time.Time `json:"expires_at"`
}
