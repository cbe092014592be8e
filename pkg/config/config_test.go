package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	require.NotNil(t, cfg)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "aixiv", cfg.Submissions.IdentifierPrefix)
	assert.Equal(t, 3, cfg.Submissions.CreateAttempts)
	assert.Equal(t, float64(1), cfg.Reviews.RateLimitWindowHours)
	assert.Equal(t, 3, cfg.Reviews.RateLimitMaxCount)
	assert.False(t, cfg.Reviews.ExistenceCheckEnabled)
	assert.Equal(t, time.Hour, cfg.Storage.UploadURLTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("IDENTIFIER_PREFIX", "arx")
	v.Set("REVIEW_EXISTENCE_CHECK", true)
	v.Set("REVIEW_RATE_LIMIT_WINDOW_HOURS", 0)
	v.Set("SUBMISSION_CREATE_ATTEMPTS", -2)
	v.Set("AUTH_SHARED_TOKEN", "s3cret")
	v.Set("UPLOAD_URL_TTL", "not-a-duration")
	v.Set("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg := fromViper(v)
	assert.Equal(t, 3, cfg.Submissions.CreateAttempts)
	assert.Equal(t, time.Hour, cfg.Storage.UploadURLTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)

	core := cfg.Core()
	assert.Equal(t, CoreOptions{
		IdentifierPrefix:      "arx",
		ExistenceCheckEnabled: true,
		RateLimitWindowHours:  0,
		RateLimitMaxCount:     3,
		SharedToken:           "s3cret",
	}, core)
}
