package dbx

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, MapError(nil))
	assert.ErrorIs(t, MapError(sql.ErrNoRows), common.ErrNotFound)

	err := MapError(&pgconn.PgError{Code: "23505", ConstraintName: "uk_users_username"})
	var ce *common.ConstraintError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "uk_users_username", ce.Constraint)
	assert.ErrorIs(t, err, common.ErrConflict)

	boom := errors.New("boom")
	err = MapError(boom)
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "db error: boom")
}
