package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_MatchesKind(t *testing.T) {
	err := fmt.Errorf("get article: %w", NotFound("article %d not found", 7))

	require.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "article 7 not found", ce.Message)
}

func TestConstraintError_IsConflict(t *testing.T) {
	base := errors.New("duplicate key")
	err := fmt.Errorf("db error: %w", &ConstraintError{Constraint: "uk_users_email", Err: base})

	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, base)

	var ce *ConstraintError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "uk_users_email", ce.Constraint)
}

func TestValidationError(t *testing.T) {
	v := NewValidationError()
	require.NoError(t, v.Err())

	v.Add("email", "must be a valid email")
	v.Add("email", "second message is ignored")
	v.Add("username", "is required")

	err := v.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "must be a valid email", v.Fields["email"])
	assert.Equal(t, "validation failed: email: must be a valid email; username: is required", err.Error())
}
