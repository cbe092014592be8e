package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/aixiv-api/internal/dto"
	"github.com/noah-isme/aixiv-api/internal/models"
	appErrors "github.com/noah-isme/aixiv-api/pkg/errors"
	"github.com/noah-isme/aixiv-api/pkg/response"
)

type submissionService interface {
	Create(ctx context.Context, req dto.CreateSubmissionRequest, uploadedBy string) (*models.Submission, error)
	CreateVersion(ctx context.Context, aixivID string, req dto.CreateVersionRequest, uploadedBy string) (*models.Submission, error)
	Get(ctx context.Context, id int64) (*models.Submission, error)
	GetPaper(ctx context.Context, aixivID, version string) (*models.Submission, error)
	ListVersions(ctx context.Context, aixivID string) ([]models.Submission, error)
	List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, *models.Pagination, error)
	Update(ctx context.Context, id int64, req dto.UpdateSubmissionRequest) (*models.Submission, error)
	Delete(ctx context.Context, id int64) error
	RecordEngagement(ctx context.Context, id int64, req dto.EngagementRequest) (*models.Submission, error)
}

// SubmissionHandler exposes submission endpoints.
type SubmissionHandler struct {
	service submissionService
}

// NewSubmissionHandler builds a new handler.
func NewSubmissionHandler(service submissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// Submit godoc
// @Summary Submit a paper
// @Tags Submissions
// @Accept json
// @Produce json
// @Param payload body dto.CreateSubmissionRequest true "Submission metadata"
// @Success 201 {object} response.Envelope
// @Router /submit [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req dto.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid submission payload"))
		return
	}
	sub, err := h.service.Create(c.Request.Context(), req, uploaderFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.SubmissionCreatedResponse{
		Success:      true,
		SubmissionID: sub.AixivID,
		AixivID:      sub.AixivID,
		Version:      sub.Version,
		ID:           sub.ID,
		Message:      "Paper submitted successfully",
	})
}

// CreateVersion godoc
// @Summary Add a version to a paper
// @Tags Submissions
// @Accept json
// @Produce json
// @Param aixiv_id path string true "Public identifier"
// @Param payload body dto.CreateVersionRequest true "Version metadata"
// @Success 201 {object} response.Envelope
// @Router /papers/{aixiv_id}/versions [post]
func (h *SubmissionHandler) CreateVersion(c *gin.Context) {
	var req dto.CreateVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid version payload"))
		return
	}
	sub, err := h.service.CreateVersion(c.Request.Context(), c.Param("aixiv_id"), req, uploaderFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sub)
}

// ListVersions godoc
// @Summary List versions of a paper
// @Tags Submissions
// @Produce json
// @Param aixiv_id path string true "Public identifier"
// @Success 200 {object} response.Envelope
// @Router /papers/{aixiv_id}/versions [get]
func (h *SubmissionHandler) ListVersions(c *gin.Context) {
	subs, err := h.service.ListVersions(c.Request.Context(), c.Param("aixiv_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subs, nil)
}

// List godoc
// @Summary List submissions
// @Tags Submissions
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 500)"
// @Success 200 {object} response.Envelope
// @Router /submissions [get]
func (h *SubmissionHandler) List(c *gin.Context) {
	h.list(c, "")
}

// ListByUploader godoc
// @Summary List submissions of one uploader
// @Tags Submissions
// @Produce json
// @Param uploaded_by path string true "Uploader"
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 500)"
// @Success 200 {object} response.Envelope
// @Router /users/{uploaded_by}/submissions [get]
func (h *SubmissionHandler) ListByUploader(c *gin.Context) {
	h.list(c, c.Param("uploaded_by"))
}

func (h *SubmissionHandler) list(c *gin.Context, uploadedBy string) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		response.Error(c, err)
		return
	}
	limit, err := queryInt(c, "limit", 100)
	if err != nil {
		response.Error(c, err)
		return
	}
	subs, page, err := h.service.List(c.Request.Context(), models.SubmissionFilter{UploadedBy: uploadedBy, Skip: skip, Limit: limit})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, subs, page)
}

// Get godoc
// @Summary Get submission by id
// @Tags Submissions
// @Produce json
// @Param id path int true "Submission id"
// @Success 200 {object} response.Envelope
// @Router /submissions/{id} [get]
func (h *SubmissionHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	sub, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sub, nil)
}

// GetPaper godoc
// @Summary Get a paper by public identifier
// @Tags Submissions
// @Produce json
// @Param aixiv_id path string true "Public identifier"
// @Param version query string false "Version label; latest when omitted"
// @Success 200 {object} response.Envelope
// @Router /papers/{aixiv_id} [get]
func (h *SubmissionHandler) GetPaper(c *gin.Context) {
	sub, err := h.service.GetPaper(c.Request.Context(), c.Param("aixiv_id"), c.Query("version"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sub, nil)
}

// Update godoc
// @Summary Update submission metadata
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path int true "Submission id"
// @Param payload body dto.UpdateSubmissionRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /submissions/{id} [patch]
func (h *SubmissionHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid update payload"))
		return
	}
	sub, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sub, nil)
}

// Delete godoc
// @Summary Delete a submission
// @Tags Submissions
// @Param id path int true "Submission id"
// @Success 204
// @Router /submissions/{id} [delete]
func (h *SubmissionHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RecordEngagement godoc
// @Summary Increment an engagement counter
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path int true "Submission id"
// @Param payload body dto.EngagementRequest true "Counter kind"
// @Success 200 {object} response.Envelope
// @Router /submissions/{id}/engagement [post]
func (h *SubmissionHandler) RecordEngagement(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.EngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid engagement payload"))
		return
	}
	sub, err := h.service.RecordEngagement(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sub, nil)
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.InvalidField(name, "numeric", "", "invalid "+name)
	}
	return value, nil
}
