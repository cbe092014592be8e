package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/aixiv-api/internal/models"
)

const reviewColumns = `id, aixiv_id, version, agent_type, doc_type, review_results, create_time, like_count, ip`

// ReviewRepository persists paper reviews.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository constructs the repository.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create stores a review and fills id, create_time and like_count.
func (r *ReviewRepository) Create(ctx context.Context, review *models.PaperReview) error {
	const query = `INSERT INTO paper_review (aixiv_id, version, agent_type, doc_type, review_results, ip)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + reviewColumns
	var stored models.PaperReview
	// jsonb is sent as text; lib/pq would encode []byte as bytea.
	if err := r.db.GetContext(ctx, &stored, query,
		review.AixivID, review.Version, review.AgentType, review.DocType, string(review.ReviewResults), review.IP,
	); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	*review = stored
	return nil
}

// GetByID fetches a review.
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*models.PaperReview, error) {
	query := `SELECT ` + reviewColumns + ` FROM paper_review WHERE id = $1`
	var review models.PaperReview
	if err := r.db.GetContext(ctx, &review, query, id); err != nil {
		return nil, err
	}
	return &review, nil
}

// List returns reviews for one identifier matching every supplied filter, newest first.
func (r *ReviewRepository) List(ctx context.Context, filter models.ReviewFilter) ([]models.PaperReview, error) {
	conditions := []string{"aixiv_id = $1"}
	args := []interface{}{filter.AixivID}
	add := func(expr string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(expr, len(args)))
	}
	if filter.Version != nil {
		add("version = $%d", *filter.Version)
	}
	if filter.StartTime != nil {
		add("create_time >= $%d", *filter.StartTime)
	}
	if filter.EndTime != nil {
		add("create_time <= $%d", *filter.EndTime)
	}
	if filter.IP != nil {
		add("ip = $%d", *filter.IP)
	}
	if filter.DocType != nil {
		add("doc_type = $%d", *filter.DocType)
	}
	if filter.AgentType != nil {
		add("agent_type = $%d", *filter.AgentType)
	}

	query := `SELECT ` + reviewColumns + ` FROM paper_review WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY create_time DESC, id DESC`
	var reviews []models.PaperReview
	if err := r.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// CountInWindow counts reviews for the key created within [since, until].
func (r *ReviewRepository) CountInWindow(ctx context.Context, key models.RateKey, since, until time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM paper_review
	WHERE aixiv_id = $1 AND version = $2 AND doc_type = $3 AND ip = $4
	  AND create_time >= $5 AND create_time <= $6`
	var count int
	if err := r.db.GetContext(ctx, &count, query, key.AixivID, key.Version, key.DocType, key.IP, since, until); err != nil {
		return 0, fmt.Errorf("count reviews in window: %w", err)
	}
	return count, nil
}

// AdjustLikes adds delta to like_count, never going below zero.
func (r *ReviewRepository) AdjustLikes(ctx context.Context, id int64, delta int) (*models.PaperReview, error) {
	query := `UPDATE paper_review SET like_count = GREATEST(like_count + $1, 0) WHERE id = $2 RETURNING ` + reviewColumns
	var review models.PaperReview
	if err := r.db.GetContext(ctx, &review, query, delta, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("adjust review likes: %w", err)
	}
	return &review, nil
}
