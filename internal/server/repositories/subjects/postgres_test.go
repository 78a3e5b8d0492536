package subjects

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/dmitrijs2005/mdd/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var subjectCols = []string{"id", "name", "description", "created_at", "exists"}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO subjects \(name, description\)`).
		WithArgs("Go", "gophers").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), now))

	s, err := repo.Create(context.Background(), &models.Subject{Name: "Go", Description: "gophers"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), s.ID)
	assert.Equal(t, now, s.CreatedAt)
}

func TestCreate_DuplicateName(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO subjects`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: ConstraintName})

	_, err := repo.Create(context.Background(), &models.Subject{Name: "go"})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`FROM subjects s WHERE s.id = \$2`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(subjectCols).AddRow(int64(2), "Go", "d", now, true))

	s, err := repo.GetByID(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.True(t, s.IsSubscribed)
	assert.Equal(t, "Go", s.Name)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM subjects s WHERE s.id = \$2`).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 2, 1)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestExistsByName(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`WHERE lower\(name\) = lower\(\$1\)`).
		WithArgs("GO").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.ExistsByName(context.Background(), "GO")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestList_OrderedByNameWithPaging(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`ORDER BY s.name, s.id LIMIT \$2 OFFSET \$3`).
		WithArgs(int64(7), 10, 20).
		WillReturnRows(sqlmock.NewRows(subjectCols).
			AddRow(int64(1), "Angular", "", now, false).
			AddRow(int64(3), "Go", "", now, true))

	items, err := repo.List(context.Background(), 7, models.PageRequest{Page: 2, Size: 10})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Angular", items[0].Name)
	assert.True(t, items[1].IsSubscribed)
}

func TestListSubscribed_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`JOIN subscriptions own`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(subjectCols))

	items, err := repo.ListSubscribed(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT INTO subscriptions`).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM subscriptions`).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM subscriptions`).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	require.NoError(t, repo.Subscribe(ctx, 1, 2))
	require.NoError(t, repo.Unsubscribe(ctx, 1, 2))
	assert.ErrorIs(t, repo.Unsubscribe(ctx, 1, 2), common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsSubscribed_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM subscriptions WHERE user_id = \$1 AND subject_id = \$2`).
		WillReturnError(errors.New("boom"))

	_, err := repo.IsSubscribed(context.Background(), 1, 2)
	assert.EqualError(t, err, "db error: boom")
}
