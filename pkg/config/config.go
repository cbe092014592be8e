package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database    DatabaseConfig
	CORS        CORSConfig
	Log         LogConfig
	Storage     StorageConfig
	Submissions SubmissionsConfig
	Reviews     ReviewsConfig
	Auth        AuthConfig
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// StorageConfig points at the S3 bucket receiving paper uploads.
type StorageConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	// Endpoint overrides the AWS endpoint for S3-compatible providers.
	Endpoint     string
	UploadURLTTL time.Duration
}

// SubmissionsConfig controls public identifier assignment.
type SubmissionsConfig struct {
	IdentifierPrefix string
	CreateAttempts   int
}

// ReviewsConfig holds the review precondition flag and rate limit thresholds.
type ReviewsConfig struct {
	ExistenceCheckEnabled bool
	RateLimitWindowHours  float64
	RateLimitMaxCount     int
}

// AuthConfig holds the shared token accepted for official reviews.
type AuthConfig struct {
	SharedToken string
}

// CoreOptions is the set of options consumed by the submission and review services.
type CoreOptions struct {
	IdentifierPrefix      string
	ExistenceCheckEnabled bool
	RateLimitWindowHours  float64
	RateLimitMaxCount     int
	SharedToken           string
}

// Core projects the recognized core options out of the full configuration.
func (c *Config) Core() CoreOptions {
	return CoreOptions{
		IdentifierPrefix:      c.Submissions.IdentifierPrefix,
		ExistenceCheckEnabled: c.Reviews.ExistenceCheckEnabled,
		RateLimitWindowHours:  c.Reviews.RateLimitWindowHours,
		RateLimitMaxCount:     c.Reviews.RateLimitMaxCount,
		SharedToken:           c.Auth.SharedToken,
	}
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:            v.GetString("DB_HOST"),
		Port:            v.GetInt("DB_PORT"),
		User:            v.GetString("DB_USER"),
		Password:        v.GetString("DB_PASSWORD"),
		Name:            v.GetString("DB_NAME"),
		SSLMode:         v.GetString("DB_SSL_MODE"),
		MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: parseDuration(v.GetString("DB_CONN_MAX_LIFETIME"), time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Storage = StorageConfig{
		AccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		Region:          v.GetString("AWS_REGION"),
		Bucket:          v.GetString("AWS_S3_BUCKET"),
		Endpoint:        v.GetString("AWS_S3_ENDPOINT"),
		UploadURLTTL:    parseDuration(v.GetString("UPLOAD_URL_TTL"), time.Hour),
	}

	attempts := v.GetInt("SUBMISSION_CREATE_ATTEMPTS")
	if attempts <= 0 {
		attempts = 3
	}
	cfg.Submissions = SubmissionsConfig{
		IdentifierPrefix: v.GetString("IDENTIFIER_PREFIX"),
		CreateAttempts:   attempts,
	}

	cfg.Reviews = ReviewsConfig{
		ExistenceCheckEnabled: v.GetBool("REVIEW_EXISTENCE_CHECK"),
		RateLimitWindowHours:  v.GetFloat64("REVIEW_RATE_LIMIT_WINDOW_HOURS"),
		RateLimitMaxCount:     v.GetInt("REVIEW_RATE_LIMIT_MAX_COUNT"),
	}

	cfg.Auth = AuthConfig{SharedToken: v.GetString("AUTH_SHARED_TOKEN")}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8000)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "aixiv_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "1h")

	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_S3_BUCKET", "aixiv-papers")
	v.SetDefault("AWS_S3_ENDPOINT", "")
	v.SetDefault("UPLOAD_URL_TTL", "1h")

	v.SetDefault("IDENTIFIER_PREFIX", "aixiv")
	v.SetDefault("SUBMISSION_CREATE_ATTEMPTS", 3)

	v.SetDefault("REVIEW_EXISTENCE_CHECK", false)
	v.SetDefault("REVIEW_RATE_LIMIT_WINDOW_HOURS", 1)
	v.SetDefault("REVIEW_RATE_LIMIT_MAX_COUNT", 3)

	v.SetDefault("AUTH_SHARED_TOKEN", "")
}

// viper reports a missing explicit config file as an os error, not ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
