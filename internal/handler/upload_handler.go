package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/aixiv-api/internal/dto"
	appErrors "github.com/noah-isme/aixiv-api/pkg/errors"
	"github.com/noah-isme/aixiv-api/pkg/response"
)

type uploadService interface {
	RequestUploadURL(ctx context.Context, req dto.UploadURLRequest) (*dto.UploadURLResponse, error)
}

// UploadHandler issues pre-signed upload URLs.
type UploadHandler struct {
	service uploadService
}

// NewUploadHandler builds a new handler.
func NewUploadHandler(service uploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// UploadURL godoc
// @Summary Get a pre-signed upload URL
// @Tags Uploads
// @Accept json
// @Produce json
// @Param payload body dto.UploadURLRequest true "File name"
// @Success 200 {object} response.Envelope
// @Router /get-upload-url [post]
func (h *UploadHandler) UploadURL(c *gin.Context) {
	var req dto.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid upload request"))
		return
	}
	out, err := h.service.RequestUploadURL(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out, nil)
}
