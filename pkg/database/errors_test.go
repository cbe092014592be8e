package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aixiv-api/pkg/config"
)

func TestAsUniqueViolation(t *testing.T) {
	driverErr := &pq.Error{Code: "23505", Constraint: "uq_submissions_aixiv_id_version", Table: "submissions"}
	uv, ok := AsUniqueViolation(fmt.Errorf("insert submission: %w", driverErr))
	require.True(t, ok)
	assert.Equal(t, "uq_submissions_aixiv_id_version", uv.Constraint)
	assert.Equal(t, "submissions", uv.Table)
	assert.True(t, errors.Is(uv, driverErr))
}

func TestAsUniqueViolationIgnoresOtherErrors(t *testing.T) {
	_, ok := AsUniqueViolation(&pq.Error{Code: "23503", Constraint: "fk_whatever"})
	assert.False(t, ok)

	_, ok = AsUniqueViolation(errors.New("duplicate key value violates unique constraint"))
	assert.False(t, ok)

	_, ok = AsUniqueViolation(nil)
	assert.False(t, ok)
}

func TestDSNDefaultsSSLMode(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "aixiv"})
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=aixiv sslmode=disable", dsn)
}
