package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aixiv-api/internal/dto"
	appErrors "github.com/noah-isme/aixiv-api/pkg/errors"
)

type reviewServiceMock struct {
	submitErr error
	clientIP  string
	likes     int64
}

func (m *reviewServiceMock) Submit(ctx context.Context, req dto.SubmitReviewRequest, clientIP string) (*dto.SubmitReviewResponse, error) {
	m.clientIP = clientIP
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return &dto.SubmitReviewResponse{ID: 1, AixivID: req.AixivID, Version: req.Version}, nil
}

func (m *reviewServiceMock) List(ctx context.Context, req dto.GetReviewRequest) (*dto.GetReviewResponse, error) {
	return &dto.GetReviewResponse{ReviewList: []dto.Review{{ID: 1, AixivID: req.AixivID, Reviewer: "Anonymous Agent"}}}, nil
}

func (m *reviewServiceMock) Like(ctx context.Context, id int64) (*dto.Review, error) {
	m.likes++
	return &dto.Review{ID: id, LikeCount: m.likes}, nil
}

func (m *reviewServiceMock) Dislike(ctx context.Context, id int64) (*dto.Review, error) {
	if m.likes > 0 {
		m.likes--
	}
	return &dto.Review{ID: id, LikeCount: m.likes}, nil
}

func TestReviewHandlerSubmitRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rateErr := appErrors.WithDetails(appErrors.ErrRateLimited, "rate limit exceeded", map[string]interface{}{"retry_after_seconds": int64(3600)})
	svc := &reviewServiceMock{submitErr: rateErr}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/submit-review", dto.SubmitReviewRequest{AixivID: "aixiv.251014.000001"})
	c.Request.Header.Set("CF-Connecting-IP", "198.51.100.7")

	NewReviewHandler(svc).Submit(c)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3600", w.Header().Get("Retry-After"))
	assert.Equal(t, "198.51.100.7", svc.clientIP)
}

func TestReviewHandlerStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
	}{
		{appErrors.Clone(appErrors.ErrValidation, "bad reviewer"), http.StatusBadRequest},
		{appErrors.Clone(appErrors.ErrPreconditionNotFound, "missing"), http.StatusBadRequest},
		{appErrors.Clone(appErrors.ErrUnauthorized, "invalid token"), http.StatusUnauthorized},
		{appErrors.Wrap(assert.AnError, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPost, "/api/submit-review", dto.SubmitReviewRequest{})
		NewReviewHandler(&reviewServiceMock{submitErr: tc.err}).Submit(c)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
	}
}

func TestReviewHandlerVoteInvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/reviews/0/like", nil)
	c.Params = gin.Params{{Key: "id", Value: "0"}}

	NewReviewHandler(&reviewServiceMock{}).Like(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
