package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/aixiv-api/internal/models"
	appErrors "github.com/noah-isme/aixiv-api/pkg/errors"
	"github.com/noah-isme/aixiv-api/pkg/logger"
)

type reviewWindowCounter interface {
	CountInWindow(ctx context.Context, key models.RateKey, since, until time.Time) (int, error)
}

// ReviewRateLimiter bounds how many reviews one client IP may file for the same
// (identifier, version, doc type) within a trailing window. Counts come from persisted
// review timestamps; no counter state is kept in process.
type ReviewRateLimiter struct {
	counter     reviewWindowCounter
	window      time.Duration
	windowHours float64
	max         int
	now         func() time.Time
	logger      *zap.Logger
}

// NewReviewRateLimiter builds a limiter. A windowHours <= 0 disables it.
func NewReviewRateLimiter(counter reviewWindowCounter, windowHours float64, max int, logger *zap.Logger) *ReviewRateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if max < 0 {
		max = 0
	}
	return &ReviewRateLimiter{
		counter:     counter,
		window:      time.Duration(windowHours * float64(time.Hour)),
		windowHours: windowHours,
		max:         max,
		now:         time.Now,
		logger:      logger,
	}
}

// WithClock overrides the time source.
func (l *ReviewRateLimiter) WithClock(now func() time.Time) *ReviewRateLimiter {
	if now != nil {
		l.now = now
	}
	return l
}

// Enabled reports whether the limiter counts anything.
func (l *ReviewRateLimiter) Enabled() bool {
	return l != nil && l.window > 0
}

// Allow returns nil when one more review for key fits in the window, or a rate-limit error
// carrying the window as retry hint.
func (l *ReviewRateLimiter) Allow(ctx context.Context, key models.RateKey) error {
	if !l.Enabled() {
		return nil
	}
	until := l.now()
	since := until.Add(-l.window)
	count, err := l.counter.CountInWindow(ctx, key, since, until)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to evaluate review rate limit")
	}
	if count < l.max {
		return nil
	}
	logger.ForContext(ctx, l.logger).Warn("review rate limit exceeded",
		zap.String("aixiv_id", key.AixivID),
		zap.String("version", key.Version),
		zap.String("doc_type", key.DocType.String()),
		zap.String("ip", key.IP),
		zap.Int("count", count),
		zap.Int("max", l.max),
	)
	hours := strconv.FormatFloat(l.windowHours, 'f', -1, 64)
	return appErrors.WithDetails(appErrors.ErrRateLimited,
		fmt.Sprintf("rate limit exceeded: at most %d reviews per %s hour(s); retry after %s hour(s)", l.max, hours, hours),
		map[string]interface{}{
			"retry_after_seconds": int64(l.window / time.Second),
			"window_hours":        l.windowHours,
			"max_count":           l.max,
		})
}
