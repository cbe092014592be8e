package logger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/aixiv-api/pkg/middleware/requestid"
)

func TestGinMiddlewareLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	r := gin.New()
	r.Use(requestid.Middleware())
	r.Use(GinMiddleware(zap.New(core), "/api/health"))
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/api/submit-review", func(c *gin.Context) { c.Status(http.StatusTooManyRequests) })
	r.POST("/api/submit", func(c *gin.Context) {
		_ = c.Error(errors.New("insert failed"))
		c.Status(http.StatusInternalServerError)
	})

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/health", nil),
		httptest.NewRequest(http.MethodPost, "/api/submit-review", nil),
		httptest.NewRequest(http.MethodPost, "/api/submit", nil),
	} {
		req.Header.Set("X-Forwarded-For", "198.51.100.4, 10.0.0.1")
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)

	fields := entries[2].ContextMap()
	assert.Equal(t, "198.51.100.4", fields["client_ip"])
	assert.Equal(t, "/api/submit", fields["route"])
	assert.NotEmpty(t, fields["request_id"])
	assert.Contains(t, fields["errors"], "insert failed")
}

func TestForContextTagsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := requestid.NewContext(context.Background(), "req-7")

	ForContext(ctx, zap.New(core)).Info("identifier collision")
	ForContext(context.Background(), zap.New(core)).Info("untagged")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-7", entries[0].ContextMap()["request_id"])
	assert.NotContains(t, entries[1].ContextMap(), "request_id")
	assert.NotNil(t, ForContext(ctx, nil))
}
