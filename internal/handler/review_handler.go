package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/aixiv-api/internal/dto"
	appErrors "github.com/noah-isme/aixiv-api/pkg/errors"
	"github.com/noah-isme/aixiv-api/pkg/response"
)

type reviewService interface {
	Submit(ctx context.Context, req dto.SubmitReviewRequest, clientIP string) (*dto.SubmitReviewResponse, error)
	List(ctx context.Context, req dto.GetReviewRequest) (*dto.GetReviewResponse, error)
	Like(ctx context.Context, id int64) (*dto.Review, error)
	Dislike(ctx context.Context, id int64) (*dto.Review, error)
}

// ReviewHandler exposes review endpoints.
type ReviewHandler struct {
	service reviewService
}

// NewReviewHandler builds a new handler.
func NewReviewHandler(service reviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// Submit godoc
// @Summary Submit a review
// @Tags Reviews
// @Accept json
// @Produce json
// @Param payload body dto.SubmitReviewRequest true "Review"
// @Success 201 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /submit-review [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	var req dto.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid review payload"))
		return
	}
	out, err := h.service.Submit(c.Request.Context(), req, clientIPFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, out)
}

// List godoc
// @Summary Query reviews of a paper
// @Tags Reviews
// @Accept json
// @Produce json
// @Param payload body dto.GetReviewRequest true "Filters"
// @Success 200 {object} response.Envelope
// @Router /get-review [post]
func (h *ReviewHandler) List(c *gin.Context) {
	var req dto.GetReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid review query"))
		return
	}
	out, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out, nil)
}

// Like godoc
// @Summary Like a review
// @Tags Reviews
// @Produce json
// @Param id path int true "Review id"
// @Success 200 {object} response.Envelope
// @Router /reviews/{id}/like [post]
func (h *ReviewHandler) Like(c *gin.Context) {
	h.vote(c, h.service.Like)
}

// Dislike godoc
// @Summary Dislike a review
// @Tags Reviews
// @Produce json
// @Param id path int true "Review id"
// @Success 200 {object} response.Envelope
// @Router /reviews/{id}/dislike [post]
func (h *ReviewHandler) Dislike(c *gin.Context) {
	h.vote(c, h.service.Dislike)
}

func (h *ReviewHandler) vote(c *gin.Context, apply func(ctx context.Context, id int64) (*dto.Review, error)) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	review, err := apply(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, review, nil)
}
