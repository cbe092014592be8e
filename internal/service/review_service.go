package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/aixiv-api/internal/dto"
	"github.com/noah-isme/aixiv-api/internal/models"
	"github.com/noah-isme/aixiv-api/pkg/clientip"
	"github.com/noah-isme/aixiv-api/pkg/config"
	appErrors "github.com/noah-isme/aixiv-api/pkg/errors"
)

type reviewStore interface {
	Create(ctx context.Context, review *models.PaperReview) error
	List(ctx context.Context, filter models.ReviewFilter) ([]models.PaperReview, error)
	AdjustLikes(ctx context.Context, id int64, delta int) (*models.PaperReview, error)
}

type submissionExistence interface {
	Exists(ctx context.Context, aixivID, version string, docType models.DocType) (bool, error)
}

type reviewLimiter interface {
	Allow(ctx context.Context, key models.RateKey) error
}

// ReviewService records and lists reviews.
type ReviewService struct {
	store          reviewStore
	submissions    submissionExistence
	limiter        reviewLimiter
	ids            *IdentifierGenerator
	existenceCheck bool
	sharedToken    string
	validator      *validator.Validate
	logger         *zap.Logger
	metrics        *MetricsService
}

// ReviewServiceOption configures the service.
type ReviewServiceOption func(*ReviewService)

// WithReviewMetrics attaches Prometheus counters.
func WithReviewMetrics(m *MetricsService) ReviewServiceOption {
	return func(s *ReviewService) {
		s.metrics = m
	}
}

// NewReviewService constructs the service from the core options.
func NewReviewService(store reviewStore, submissions submissionExistence, limiter reviewLimiter, ids *IdentifierGenerator, opts config.CoreOptions, validate *validator.Validate, logger *zap.Logger, options ...ReviewServiceOption) *ReviewService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &ReviewService{
		store:          store,
		submissions:    submissions,
		limiter:        limiter,
		ids:            ids,
		existenceCheck: opts.ExistenceCheckEnabled,
		sharedToken:    opts.SharedToken,
		validator:      validate,
		logger:         logger,
	}
	for _, opt := range options {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Submit validates a review, checks the submission precondition and rate limit, then stores it.
func (s *ReviewService) Submit(ctx context.Context, req dto.SubmitReviewRequest, clientIP string) (*dto.SubmitReviewResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid review payload")
	}
	if !s.ids.Valid(req.AixivID) {
		return nil, appErrors.InvalidField("aixiv_id", "format", "<prefix>.YYMMDD.NNNNNN", "invalid aixiv_id format")
	}
	agentType, docType, err := s.resolveAgentAndDoc(req.Reviewer, req.DocType, req.Token)
	if err != nil {
		return nil, err
	}
	if !isJSONObject(req.ReviewResults) {
		return nil, appErrors.InvalidField("review_results", "object", "", "review_results must be a JSON object")
	}

	version := strings.TrimSpace(req.Version)
	if version == "" {
		return nil, appErrors.InvalidField("version", "required", "", "version must not be blank")
	}
	ip := clientip.Normalize(clientIP)
	if ip == "" {
		ip = clientip.Unknown
	}
	if s.existenceCheck {
		exists, err := s.submissions.Exists(ctx, req.AixivID, version, docType)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify submission")
		}
		if !exists {
			return nil, appErrors.WithDetails(appErrors.ErrPreconditionNotFound, "submission version not found", map[string]interface{}{
				"aixiv_id": req.AixivID,
				"version":  version,
				"doc_type": docType.String(),
			})
		}
	}

	if s.limiter != nil {
		key := models.RateKey{AixivID: req.AixivID, Version: version, DocType: docType, IP: ip}
		if err := s.limiter.Allow(ctx, key); err != nil {
			if errors.Is(err, appErrors.ErrRateLimited) {
				s.metrics.RecordReviewRateLimited()
			}
			return nil, err
		}
	}

	review := &models.PaperReview{
		AixivID:       req.AixivID,
		Version:       version,
		AgentType:     agentType,
		DocType:       docType,
		ReviewResults: append(json.RawMessage(nil), req.ReviewResults...),
		IP:            &ip,
	}
	if err := s.store.Create(ctx, review); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store review")
	}
	s.metrics.RecordReviewCreated(agentType)
	return &dto.SubmitReviewResponse{ID: review.ID, AixivID: review.AixivID, Version: review.Version}, nil
}

// List returns reviews of one identifier matching the optional filters.
func (s *ReviewService) List(ctx context.Context, req dto.GetReviewRequest) (*dto.GetReviewResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid review query")
	}
	if !s.ids.Valid(req.AixivID) {
		return nil, appErrors.InvalidField("aixiv_id", "format", "<prefix>.YYMMDD.NNNNNN", "invalid aixiv_id format")
	}
	filter := models.ReviewFilter{
		AixivID:   req.AixivID,
		Version:   req.Version,
		StartTime: req.StartDate,
		EndTime:   req.EndDate,
		IP:        req.IP,
	}
	if req.DocType != nil {
		docType, ok := models.ParseDocType(*req.DocType)
		if !ok {
			return nil, appErrors.InvalidField("doc_type", "oneof", "paper proposal", "invalid doc_type; must be 'paper' or 'proposal'")
		}
		filter.DocType = &docType
	}
	if req.AgentType != nil {
		agentType, ok := models.ParseAgentType(*req.AgentType)
		if !ok {
			return nil, appErrors.InvalidField("agent_type", "oneof", "official agent human", "invalid agent_type; must be 'official', 'agent' or 'human'")
		}
		filter.AgentType = &agentType
	}
	if filter.StartTime != nil && filter.EndTime != nil && filter.EndTime.Before(*filter.StartTime) {
		return nil, appErrors.InvalidField("end_date", "gtefield", "start_date", "end_date must not precede start_date")
	}

	reviews, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reviews")
	}
	out := make([]dto.Review, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewDTO(r))
	}
	return &dto.GetReviewResponse{ReviewList: out}, nil
}

// Like increments the like counter of a review.
func (s *ReviewService) Like(ctx context.Context, id int64) (*dto.Review, error) {
	return s.adjustLikes(ctx, id, 1)
}

// Dislike decrements the like counter of a review, stopping at zero.
func (s *ReviewService) Dislike(ctx context.Context, id int64) (*dto.Review, error) {
	return s.adjustLikes(ctx, id, -1)
}

func (s *ReviewService) adjustLikes(ctx context.Context, id int64, delta int) (*dto.Review, error) {
	review, err := s.store.AdjustLikes(ctx, id, delta)
	if err != nil {
		return nil, notFoundOrInternal(err, "review not found", "failed to update review")
	}
	out := toReviewDTO(*review)
	return &out, nil
}

func (s *ReviewService) resolveAgentAndDoc(reviewer, docType, token string) (models.AgentType, models.DocType, error) {
	var agentType models.AgentType
	if token != "" {
		if s.sharedToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.sharedToken)) != 1 {
			return models.AgentTypeUnknown, models.DocTypeUnknown, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
		}
		agentType = models.AgentTypeOfficial
	} else {
		parsed, ok := models.ParseAgentType(reviewer)
		if !ok || parsed == models.AgentTypeOfficial {
			return models.AgentTypeUnknown, models.DocTypeUnknown, appErrors.InvalidField("reviewer", "oneof", "agent human", "invalid reviewer; must be 'agent' or 'human'")
		}
		agentType = parsed
	}
	parsedDoc, ok := models.ParseDocType(docType)
	if !ok {
		return models.AgentTypeUnknown, models.DocTypeUnknown, appErrors.InvalidField("doc_type", "oneof", "paper proposal", "invalid doc_type; must be 'paper' or 'proposal'")
	}
	return agentType, parsedDoc, nil
}

func toReviewDTO(r models.PaperReview) dto.Review {
	return dto.Review{
		ID:            r.ID,
		AixivID:       r.AixivID,
		Version:       r.Version,
		AgentType:     r.AgentType.String(),
		Reviewer:      r.AgentType.DisplayName(),
		DocType:       r.DocType.String(),
		ReviewResults: r.ReviewResults,
		CreateTime:    r.CreateTime,
		LikeCount:     r.LikeCount,
	}
}

func isJSONObject(raw json.RawMessage) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false
	}
	return obj != nil
}
