package dbx

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mdd/internal/common"
)

// MapError converts driver errors into the repository error vocabulary:
// sql.ErrNoRows becomes common.ErrNotFound, unique violations become a
// *common.ConstraintError, anything else is wrapped as a db error.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}
	if constraint, ok := UniqueViolation(err); ok {
		return &common.ConstraintError{Constraint: constraint, Err: err}
	}
	return fmt.Errorf("db error: %w", err)
}
