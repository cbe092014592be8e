package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler mounted by RegisterRoutes.
type Handlers struct {
	Submissions *SubmissionHandler
	Reviews     *ReviewHandler
	Uploads     *UploadHandler
	Metrics     *MetricsHandler
}

// RegisterRoutes mounts the API under prefix plus the root banner and /metrics.
func RegisterRoutes(r gin.IRouter, prefix string, h Handlers) {
	r.GET("/", h.Metrics.Root)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(prefix)
	api.GET("/health", h.Metrics.Health)
	api.GET("/metrics/summary", h.Metrics.Summary)

	api.POST("/get-upload-url", h.Uploads.UploadURL)

	api.POST("/submit", h.Submissions.Submit)
	api.GET("/submissions", h.Submissions.List)
	api.GET("/submissions/:id", h.Submissions.Get)
	api.PATCH("/submissions/:id", h.Submissions.Update)
	api.DELETE("/submissions/:id", h.Submissions.Delete)
	api.POST("/submissions/:id/engagement", h.Submissions.RecordEngagement)
	api.GET("/papers/:aixiv_id", h.Submissions.GetPaper)
	api.GET("/papers/:aixiv_id/versions", h.Submissions.ListVersions)
	api.POST("/papers/:aixiv_id/versions", h.Submissions.CreateVersion)
	api.GET("/users/:uploaded_by/submissions", h.Submissions.ListByUploader)

	api.POST("/submit-review", h.Reviews.Submit)
	api.POST("/get-review", h.Reviews.List)
	api.POST("/reviews/:id/like", h.Reviews.Like)
	api.POST("/reviews/:id/dislike", h.Reviews.Dislike)
}
