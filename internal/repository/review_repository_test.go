package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aixiv-api/internal/models"
)

var reviewRowColumns = []string{"id", "aixiv_id", "version", "agent_type", "doc_type", "review_results", "create_time", "like_count", "ip"}

func TestReviewRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReviewRepository(db)

	ip := "10.0.0.1"
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO paper_review")).
		WithArgs("aixiv.251014.000001", "1.0", models.AgentTypeHuman, models.DocTypePaper, `{"score":4}`, ip).
		WillReturnRows(sqlmock.NewRows(reviewRowColumns).
			AddRow(int64(1), "aixiv.251014.000001", "1.0", int64(2), int64(1), []byte(`{"score":4}`), now, int64(0), ip))

	review := &models.PaperReview{
		AixivID:       "aixiv.251014.000001",
		Version:       "1.0",
		AgentType:     models.AgentTypeHuman,
		DocType:       models.DocTypePaper,
		ReviewResults: []byte(`{"score":4}`),
		IP:            &ip,
	}
	require.NoError(t, repo.Create(context.Background(), review))
	assert.Equal(t, int64(1), review.ID)
	assert.Equal(t, int64(0), review.LikeCount)
	assert.JSONEq(t, `{"score":4}`, string(review.ReviewResults))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReviewRepository(db)

	version := "1.0"
	agent := models.AgentTypeAgent
	mock.ExpectQuery(regexp.QuoteMeta("WHERE aixiv_id = $1 AND version = $2 AND agent_type = $3 ORDER BY create_time DESC")).
		WithArgs("aixiv.251014.000001", version, agent).
		WillReturnRows(sqlmock.NewRows(reviewRowColumns).
			AddRow(int64(5), "aixiv.251014.000001", "1.0", int64(1), int64(0), []byte(`{}`), time.Now(), int64(3), nil))

	reviews, err := repo.List(context.Background(), models.ReviewFilter{AixivID: "aixiv.251014.000001", Version: &version, AgentType: &agent})
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, models.AgentTypeAgent, reviews[0].AgentType)
	assert.Equal(t, models.DocTypeProposal, reviews[0].DocType)
	assert.Nil(t, reviews[0].IP)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepositoryListDecodesUnknownAgent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReviewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM paper_review WHERE aixiv_id = $1")).
		WithArgs("aixiv.251014.000001").
		WillReturnRows(sqlmock.NewRows(reviewRowColumns).
			AddRow(int64(6), "aixiv.251014.000001", "1.0", int64(42), int64(1), []byte(`{}`), time.Now(), int64(0), nil))

	reviews, err := repo.List(context.Background(), models.ReviewFilter{AixivID: "aixiv.251014.000001"})
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, models.AgentTypeUnknown, reviews[0].AgentType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepositoryCountInWindow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReviewRepository(db)

	until := time.Now()
	since := until.Add(-time.Hour)
	key := models.RateKey{AixivID: "aixiv.251014.000001", Version: "1.0", DocType: models.DocTypePaper, IP: "10.0.0.1"}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM paper_review")).
		WithArgs(key.AixivID, key.Version, key.DocType, key.IP, since, until).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountInWindow(context.Background(), key, since, until)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepositoryAdjustLikes(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReviewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SET like_count = GREATEST(like_count + $1, 0) WHERE id = $2")).
		WithArgs(-1, int64(5)).
		WillReturnRows(sqlmock.NewRows(reviewRowColumns).
			AddRow(int64(5), "aixiv.251014.000001", "1.0", int64(1), int64(1), []byte(`{}`), time.Now(), int64(0), nil))

	review, err := repo.AdjustLikes(context.Background(), 5, -1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), review.LikeCount)
	require.NoError(t, mock.ExpectationsWereMet())
}
