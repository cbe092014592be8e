package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/aixiv-api/internal/dto"
	"github.com/noah-isme/aixiv-api/internal/models"
	"github.com/noah-isme/aixiv-api/internal/repository"
	"github.com/noah-isme/aixiv-api/pkg/database"
	appErrors "github.com/noah-isme/aixiv-api/pkg/errors"
	"github.com/noah-isme/aixiv-api/pkg/logger"
)

const (
	defaultCreateAttempts = 3
	// maxUploaderLength matches submissions.uploaded_by.
	maxUploaderLength = 64
)

type submissionStore interface {
	LatestAixivID(ctx context.Context, prefix string) (string, error)
	Create(ctx context.Context, sub *models.Submission) error
	GetByID(ctx context.Context, id int64) (*models.Submission, error)
	GetByAixivID(ctx context.Context, aixivID, version string) (*models.Submission, error)
	ListVersions(ctx context.Context, aixivID string) ([]models.Submission, error)
	List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, error)
	Update(ctx context.Context, id int64, update models.SubmissionUpdate) (*models.Submission, error)
	Delete(ctx context.Context, id int64) (*models.Submission, error)
	IncrementCounter(ctx context.Context, id int64, kind models.EngagementKind) (*models.Submission, error)
}

type objectRemover interface {
	Delete(ctx context.Context, key string) error
	KeyFromURL(raw string) (string, bool)
}

// SubmissionService creates and manages versioned submissions.
type SubmissionService struct {
	store     submissionStore
	objects   objectRemover
	ids       *IdentifierGenerator
	attempts  int
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// SubmissionServiceOption configures the service.
type SubmissionServiceOption func(*SubmissionService)

// WithCreateAttempts bounds how many identifiers a single creation may try.
func WithCreateAttempts(n int) SubmissionServiceOption {
	return func(s *SubmissionService) {
		if n > 0 {
			s.attempts = n
		}
	}
}

// WithSubmissionMetrics attaches Prometheus counters.
func WithSubmissionMetrics(m *MetricsService) SubmissionServiceOption {
	return func(s *SubmissionService) {
		s.metrics = m
	}
}

// WithObjectRemover sets the storage used to drop uploaded files on delete.
func WithObjectRemover(objects objectRemover) SubmissionServiceOption {
	return func(s *SubmissionService) {
		s.objects = objects
	}
}

// NewSubmissionService constructs the service with defaults.
func NewSubmissionService(store submissionStore, ids *IdentifierGenerator, validate *validator.Validate, logger *zap.Logger, opts ...SubmissionServiceOption) *SubmissionService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &SubmissionService{
		store:     store,
		ids:       ids,
		attempts:  defaultCreateAttempts,
		validator: validate,
		logger:    logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Create persists a new submission under a freshly assigned public identifier. Identifier
// collisions with concurrent writers are retried with a new identifier; any other failure
// aborts immediately.
func (s *SubmissionService) Create(ctx context.Context, req dto.CreateSubmissionRequest, uploadedBy string) (*models.Submission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid submission payload")
	}
	uploader := firstNonEmpty(uploadedBy, req.UploadedBy)
	if err := checkUploader(uploader); err != nil {
		return nil, err
	}
	docType := models.DocTypePaper
	if req.DocType != "" {
		parsed, ok := models.ParseDocType(req.DocType)
		if !ok {
			return nil, appErrors.InvalidField("doc_type", "oneof", "paper proposal", "invalid doc_type; must be 'paper' or 'proposal'")
		}
		docType = parsed
	}

	var lastErr error
	log := logger.ForContext(ctx, s.logger)
	for attempt := 1; attempt <= s.attempts; attempt++ {
		aixivID, err := s.ids.Next(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign identifier")
		}
		sub := &models.Submission{
			AixivID:             aixivID,
			Version:             models.DefaultVersion,
			Title:               req.Title,
			AgentAuthors:        pq.StringArray(req.AgentAuthors),
			CorrespondingAuthor: req.CorrespondingAuthor,
			Category:            pq.StringArray(req.Category),
			Keywords:            stringArray(req.Keywords),
			License:             req.License,
			Abstract:            req.Abstract,
			S3URL:               req.S3URL,
			UploadedBy:          uploader,
			DocType:             docType,
			Status:              models.DefaultSubmissionStatus,
		}
		err = s.store.Create(ctx, sub)
		if err == nil {
			s.metrics.RecordSubmissionCreated(sub.DocType)
			log.Info("submission created",
				zap.Int64("id", sub.ID),
				zap.String("aixiv_id", sub.AixivID),
				zap.Int("attempt", attempt),
			)
			return sub, nil
		}
		if !isIdentifierCollision(err) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create submission")
		}
		lastErr = err
		s.metrics.RecordCreateRetry()
		log.Warn("identifier collision, retrying",
			zap.String("aixiv_id", aixivID),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.attempts),
		)
	}
	s.metrics.RecordWriteConflict()
	log.Error("submission create exhausted attempts", zap.Int("attempts", s.attempts), zap.Error(lastErr))
	return nil, appErrors.Wrap(lastErr, appErrors.ErrWriteConflict.Code, appErrors.ErrWriteConflict.Status, appErrors.ErrWriteConflict.Message)
}

// CreateVersion adds a version to an existing identifier. Duplicate versions are a conflict and
// are never retried.
func (s *SubmissionService) CreateVersion(ctx context.Context, aixivID string, req dto.CreateVersionRequest, uploadedBy string) (*models.Submission, error) {
	if !s.ids.Valid(aixivID) {
		return nil, appErrors.InvalidField("aixiv_id", "format", "<prefix>.YYMMDD.NNNNNN", "invalid aixiv_id format")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid version payload")
	}
	version := strings.TrimSpace(req.Version)
	if version == "" {
		return nil, appErrors.InvalidField("version", "required", "", "version must not be blank")
	}
	uploader := firstNonEmpty(uploadedBy, req.UploadedBy)
	if uploader != "" {
		if err := checkUploader(uploader); err != nil {
			return nil, err
		}
	}
	latest, err := s.store.GetByAixivID(ctx, aixivID, "")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submission")
	}

	sub := &models.Submission{
		AixivID:             aixivID,
		Version:             version,
		Title:               firstNonEmpty(req.Title, latest.Title),
		AgentAuthors:        inheritArray(req.AgentAuthors, latest.AgentAuthors),
		CorrespondingAuthor: firstNonEmpty(req.CorrespondingAuthor, latest.CorrespondingAuthor),
		Category:            inheritArray(req.Category, latest.Category),
		Keywords:            inheritArray(req.Keywords, latest.Keywords),
		License:             firstNonEmpty(req.License, latest.License),
		Abstract:            latest.Abstract,
		S3URL:               req.S3URL,
		UploadedBy:          firstNonEmpty(uploader, latest.UploadedBy),
		DocType:             latest.DocType,
		Status:              models.DefaultSubmissionStatus,
	}
	if req.Abstract != nil {
		sub.Abstract = req.Abstract
	}
	if err := s.store.Create(ctx, sub); err != nil {
		if isIdentifierCollision(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "version already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create version")
	}
	s.metrics.RecordSubmissionCreated(sub.DocType)
	return sub, nil
}

// Get returns a submission by numeric id.
func (s *SubmissionService) Get(ctx context.Context, id int64) (*models.Submission, error) {
	sub, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err, "submission not found", "failed to load submission")
	}
	return sub, nil
}

// GetPaper returns one version of an identifier, the latest when version is empty.
func (s *SubmissionService) GetPaper(ctx context.Context, aixivID, version string) (*models.Submission, error) {
	if !s.ids.Valid(aixivID) {
		return nil, appErrors.InvalidField("aixiv_id", "format", "<prefix>.YYMMDD.NNNNNN", "invalid aixiv_id format")
	}
	sub, err := s.store.GetByAixivID(ctx, aixivID, strings.TrimSpace(version))
	if err != nil {
		return nil, notFoundOrInternal(err, "paper not found", "failed to load paper")
	}
	return sub, nil
}

// ListVersions returns every version of an identifier.
func (s *SubmissionService) ListVersions(ctx context.Context, aixivID string) ([]models.Submission, error) {
	if !s.ids.Valid(aixivID) {
		return nil, appErrors.InvalidField("aixiv_id", "format", "<prefix>.YYMMDD.NNNNNN", "invalid aixiv_id format")
	}
	subs, err := s.store.ListVersions(ctx, aixivID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list versions")
	}
	if len(subs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "paper not found")
	}
	return subs, nil
}

// List pages through submissions, optionally restricted to one uploader.
func (s *SubmissionService) List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, *models.Pagination, error) {
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	subs, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list submissions")
	}
	if subs == nil {
		subs = []models.Submission{}
	}
	return subs, &models.Pagination{Skip: filter.Skip, Limit: filter.Limit, Count: len(subs)}, nil
}

// Update applies a partial metadata change.
func (s *SubmissionService) Update(ctx context.Context, id int64, req dto.UpdateSubmissionRequest) (*models.Submission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid update payload")
	}
	update := models.SubmissionUpdate{
		Title:               req.Title,
		AgentAuthors:        req.AgentAuthors,
		CorrespondingAuthor: req.CorrespondingAuthor,
		Category:            req.Category,
		Keywords:            req.Keywords,
		License:             req.License,
		Abstract:            req.Abstract,
		Status:              req.Status,
	}
	if update.Empty() {
		return nil, appErrors.InvalidField("body", "required_one", "", "no fields to update")
	}
	sub, err := s.store.Update(ctx, id, update)
	if err != nil {
		return nil, notFoundOrInternal(err, "submission not found", "failed to update submission")
	}
	return sub, nil
}

// Delete removes the submission row and then its uploaded object. Object removal failures are
// logged and do not fail the request.
func (s *SubmissionService) Delete(ctx context.Context, id int64) error {
	sub, err := s.store.Delete(ctx, id)
	if err != nil {
		return notFoundOrInternal(err, "submission not found", "failed to delete submission")
	}
	if s.objects == nil {
		return nil
	}
	key, ok := s.objects.KeyFromURL(sub.S3URL)
	if !ok {
		return nil
	}
	if err := s.objects.Delete(ctx, key); err != nil {
		logger.ForContext(ctx, s.logger).Warn("failed to delete uploaded object", zap.Int64("id", id), zap.String("key", key), zap.Error(err))
	}
	return nil
}

// RecordEngagement increments one engagement counter.
func (s *SubmissionService) RecordEngagement(ctx context.Context, id int64, req dto.EngagementRequest) (*models.Submission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid engagement kind")
	}
	sub, err := s.store.IncrementCounter(ctx, id, models.EngagementKind(req.Kind))
	if err != nil {
		return nil, notFoundOrInternal(err, "submission not found", "failed to record engagement")
	}
	return sub, nil
}

func isIdentifierCollision(err error) bool {
	violation, ok := database.AsUniqueViolation(err)
	return ok && violation.Constraint == repository.SubmissionIdentityConstraint
}

func notFoundOrInternal(err error, notFound, internal string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, internal)
}

func checkUploader(uploader string) error {
	if uploader == "" {
		return appErrors.InvalidField("uploaded_by", "required", "", "uploaded_by is required")
	}
	if utf8.RuneCountInString(uploader) > maxUploaderLength {
		return appErrors.InvalidField("uploaded_by", "max", strconv.Itoa(maxUploaderLength), "uploaded_by must be at most 64 characters")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func stringArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(values)
}

func inheritArray(values []string, fallback pq.StringArray) pq.StringArray {
	if len(values) > 0 {
		return pq.StringArray(values)
	}
	return fallback
}
