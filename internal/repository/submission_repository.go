package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/aixiv-api/internal/models"
)

// SubmissionIdentityConstraint is the unique constraint over (aixiv_id, version).
const SubmissionIdentityConstraint = "uq_submissions_aixiv_id_version"

const submissionColumns = `id, aixiv_id, version, title, agent_authors, corresponding_author, category, keywords,
       license, abstract, s3_url, uploaded_by, doc_type, status, views, downloads, comments, citations,
       created_at, updated_at`

// SubmissionRepository persists submissions.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository constructs the repository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// LatestAixivID returns the greatest public identifier starting with prefix, or "" when none exists.
func (r *SubmissionRepository) LatestAixivID(ctx context.Context, prefix string) (string, error) {
	const query = `SELECT aixiv_id FROM submissions WHERE aixiv_id LIKE $1 ESCAPE '\' ORDER BY aixiv_id DESC LIMIT 1`
	var latest string
	if err := r.db.GetContext(ctx, &latest, query, escapeLike(prefix)+"%"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("latest aixiv id: %w", err)
	}
	return latest, nil
}

// Create inserts the submission inside its own transaction and fills server-assigned columns.
// A unique violation is returned wrapped so callers can inspect the constraint.
func (r *SubmissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create submission: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			_ = tx.Rollback()
		}
	}()

	const query = `INSERT INTO submissions
	(aixiv_id, version, title, agent_authors, corresponding_author, category, keywords, license, abstract,
	 s3_url, uploaded_by, doc_type, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	RETURNING ` + submissionColumns
	var stored models.Submission
	if err := tx.GetContext(ctx, &stored, query,
		sub.AixivID, sub.Version, sub.Title, sub.AgentAuthors, sub.CorrespondingAuthor, sub.Category,
		sub.Keywords, sub.License, sub.Abstract, sub.S3URL, sub.UploadedBy, sub.DocType, sub.Status,
	); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit submission: %w", err)
	}
	commit = true
	*sub = stored
	return nil
}

// GetByID fetches a submission by numeric id.
func (r *SubmissionRepository) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`
	var sub models.Submission
	if err := r.db.GetContext(ctx, &sub, query, id); err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetByAixivID fetches one version of a submission; an empty version selects the newest one.
func (r *SubmissionRepository) GetByAixivID(ctx context.Context, aixivID, version string) (*models.Submission, error) {
	var (
		sub models.Submission
		err error
	)
	if version == "" {
		query := `SELECT ` + submissionColumns + ` FROM submissions WHERE aixiv_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`
		err = r.db.GetContext(ctx, &sub, query, aixivID)
	} else {
		query := `SELECT ` + submissionColumns + ` FROM submissions WHERE aixiv_id = $1 AND version = $2`
		err = r.db.GetContext(ctx, &sub, query, aixivID, version)
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListVersions returns every version of a public identifier, oldest first.
func (r *SubmissionRepository) ListVersions(ctx context.Context, aixivID string) ([]models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE aixiv_id = $1 ORDER BY created_at ASC, id ASC`
	var subs []models.Submission
	if err := r.db.SelectContext(ctx, &subs, query, aixivID); err != nil {
		return nil, fmt.Errorf("list submission versions: %w", err)
	}
	return subs, nil
}

// Exists reports whether a submission matches identifier, version and doc type.
func (r *SubmissionRepository) Exists(ctx context.Context, aixivID, version string, docType models.DocType) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM submissions WHERE aixiv_id = $1 AND version = $2 AND doc_type = $3)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, aixivID, version, docType); err != nil {
		return false, fmt.Errorf("check submission exists: %w", err)
	}
	return exists, nil
}

// List returns submissions ordered by id with offset pagination.
func (r *SubmissionRepository) List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, error) {
	builder := strings.Builder{}
	args := make([]interface{}, 0, 1)
	builder.WriteString(`SELECT ` + submissionColumns + ` FROM submissions`)
	if filter.UploadedBy != "" {
		args = append(args, filter.UploadedBy)
		builder.WriteString(fmt.Sprintf(" WHERE uploaded_by = $%d", len(args)))
	}
	builder.WriteString(" ORDER BY id ASC")

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}
	builder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, skip))

	var subs []models.Submission
	if err := r.db.SelectContext(ctx, &subs, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

// Update applies the non-nil fields and returns the stored row.
func (r *SubmissionRepository) Update(ctx context.Context, id int64, update models.SubmissionUpdate) (*models.Submission, error) {
	setParts := make([]string, 0, 9)
	args := make([]interface{}, 0, 9)
	set := func(column string, value interface{}) {
		args = append(args, value)
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Title != nil {
		set("title", *update.Title)
	}
	if update.AgentAuthors != nil {
		set("agent_authors", pq.StringArray(update.AgentAuthors))
	}
	if update.CorrespondingAuthor != nil {
		set("corresponding_author", *update.CorrespondingAuthor)
	}
	if update.Category != nil {
		set("category", pq.StringArray(update.Category))
	}
	if update.Keywords != nil {
		set("keywords", pq.StringArray(update.Keywords))
	}
	if update.License != nil {
		set("license", *update.License)
	}
	if update.Abstract != nil {
		set("abstract", *update.Abstract)
	}
	if update.Status != nil {
		set("status", *update.Status)
	}
	if len(setParts) == 0 {
		return r.GetByID(ctx, id)
	}
	setParts = append(setParts, "updated_at = NOW()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE submissions SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setParts, ", "), len(args), submissionColumns)

	var sub models.Submission
	if err := r.db.GetContext(ctx, &sub, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("update submission: %w", err)
	}
	return &sub, nil
}

// Delete removes the submission and returns the deleted row.
func (r *SubmissionRepository) Delete(ctx context.Context, id int64) (*models.Submission, error) {
	query := `DELETE FROM submissions WHERE id = $1 RETURNING ` + submissionColumns
	var sub models.Submission
	if err := r.db.GetContext(ctx, &sub, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("delete submission: %w", err)
	}
	return &sub, nil
}

// IncrementCounter bumps one engagement counter by one.
func (r *SubmissionRepository) IncrementCounter(ctx context.Context, id int64, kind models.EngagementKind) (*models.Submission, error) {
	column, ok := kind.Column()
	if !ok {
		return nil, fmt.Errorf("unknown engagement kind %q", kind)
	}
	query := fmt.Sprintf("UPDATE submissions SET %[1]s = %[1]s + 1 WHERE id = $1 RETURNING %[2]s", column, submissionColumns)
	var sub models.Submission
	if err := r.db.GetContext(ctx, &sub, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("increment %s: %w", column, err)
	}
	return &sub, nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
