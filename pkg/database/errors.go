package database

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// uniqueViolationCode is the SQLSTATE for unique_violation.
const uniqueViolationCode pq.ErrorCode = "23505"

// UniqueViolation reports which unique constraint rejected a write.
type UniqueViolation struct {
	Constraint string
	Table      string
	Err        error
}

// Error implements the error interface.
func (e *UniqueViolation) Error() string {
	return fmt.Sprintf("unique violation on %s.%s", e.Table, e.Constraint)
}

// Unwrap returns the driver error.
func (e *UniqueViolation) Unwrap() error {
	return e.Err
}

// AsUniqueViolation extracts the violated constraint from a driver error.
// It returns false for any error that is not a unique violation.
func AsUniqueViolation(err error) (*UniqueViolation, bool) {
	if err == nil {
		return nil, false
	}
	var uv *UniqueViolation
	if errors.As(err, &uv) {
		return uv, true
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolationCode {
		return nil, false
	}
	return &UniqueViolation{Constraint: pqErr.Constraint, Table: pqErr.Table, Err: err}, true
}
