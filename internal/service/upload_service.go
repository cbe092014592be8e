package service

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/aixiv-api/internal/dto"
	appErrors "github.com/noah-isme/aixiv-api/pkg/errors"
)

var uploadContentTypes = map[string]string{
	".pdf":   "application/pdf",
	".tex":   "application/x-tex",
	".latex": "application/x-tex",
}

type uploadPresigner interface {
	PresignPut(ctx context.Context, key, contentType string) (string, time.Time, error)
	ObjectURL(key string) string
}

// UploadService hands out pre-signed URLs for paper sources.
type UploadService struct {
	storage   uploadPresigner
	validator *validator.Validate
	logger    *zap.Logger
	newKey    func() string
}

// NewUploadService constructs the service.
func NewUploadService(storage uploadPresigner, validate *validator.Validate, logger *zap.Logger) *UploadService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{
		storage:   storage,
		validator: validate,
		logger:    logger,
		newKey:    uuid.NewString,
	}
}

// RequestUploadURL validates the file name and returns a pre-signed PUT URL under a unique key.
func (s *UploadService) RequestUploadURL(ctx context.Context, req dto.UploadURLRequest) (*dto.UploadURLResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid upload request")
	}
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(req.Filename), `\`, "/"))
	ext := strings.ToLower(filepath.Ext(base))
	contentType, ok := uploadContentTypes[ext]
	if !ok || base == ext {
		return nil, appErrors.InvalidField("filename", "extension", ".pdf .tex .latex", "only PDF and LaTeX files (.pdf, .tex, .latex) are allowed")
	}
	key := s.newKey() + "_" + strings.ReplaceAll(base, " ", "_")

	uploadURL, expiresAt, err := s.storage.PresignPut(ctx, key, contentType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate upload URL")
	}
	s.logger.Debug("issued upload url", zap.String("key", key), zap.Time("expires_at", expiresAt))
	return &dto.UploadURLResponse{
		UploadURL:     uploadURL,
		FileKey:       key,
		S3URL:         s.storage.ObjectURL(key),
		ContentType:   contentType,
		FileExtension: strings.TrimPrefix(ext, "."),
		ExpiresAt:     expiresAt,
	}, nil
}
