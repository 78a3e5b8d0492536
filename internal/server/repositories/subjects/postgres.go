package subjects

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/dmitrijs2005/mdd/internal/dbx"
	"github.com/dmitrijs2005/mdd/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// $1 is always the viewing user.
const selectSubject = `SELECT s.id, s.name, s.description, s.created_at,
       EXISTS (SELECT 1 FROM subscriptions sub WHERE sub.subject_id = s.id AND sub.user_id = $1)
  FROM subjects s`

func (r *PostgresRepository) Create(ctx context.Context, s *models.Subject) (*models.Subject, error) {
	query :=
		`INSERT INTO subjects (name, description)
		 VALUES ($1, $2)
		 RETURNING id, created_at`

	if err := r.db.QueryRowContext(ctx, query, s.Name, s.Description).Scan(&s.ID, &s.CreatedAt); err != nil {
		return nil, dbx.MapError(err)
	}
	return s, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID int64) (*models.Subject, error) {
	s := &models.Subject{}
	err := r.db.QueryRowContext(ctx, selectSubject+` WHERE s.id = $2`, userID, id).
		Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.IsSubscribed)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return s, nil
}

func (r *PostgresRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM subjects WHERE lower(name) = lower($1))`, name).Scan(&exists)
	if err != nil {
		return false, dbx.MapError(err)
	}
	return exists, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID int64, req models.PageRequest) ([]*models.Subject, error) {
	return r.list(ctx, selectSubject+` ORDER BY s.name, s.id LIMIT $2 OFFSET $3`, userID, req.Size, req.Offset())
}

func (r *PostgresRepository) ListSubscribed(ctx context.Context, userID int64) ([]*models.Subject, error) {
	query := selectSubject + `
  JOIN subscriptions own ON own.subject_id = s.id AND own.user_id = $1
 ORDER BY s.name, s.id`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Subject, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	items := []*models.Subject{}
	for rows.Next() {
		s := &models.Subject{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.IsSubscribed); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subjects`).Scan(&n); err != nil {
		return 0, dbx.MapError(err)
	}
	return n, nil
}

func (r *PostgresRepository) IsSubscribed(ctx context.Context, userID, subjectID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM subscriptions WHERE user_id = $1 AND subject_id = $2)`,
		userID, subjectID).Scan(&ok)
	if err != nil {
		return false, dbx.MapError(err)
	}
	return ok, nil
}

func (r *PostgresRepository) Subscribe(ctx context.Context, userID, subjectID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subscriptions (user_id, subject_id) VALUES ($1, $2)`, userID, subjectID)
	return dbx.MapError(err)
}

func (r *PostgresRepository) Unsubscribe(ctx context.Context, userID, subjectID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM subscriptions WHERE user_id = $1 AND subject_id = $2`, userID, subjectID)
	if err != nil {
		return dbx.MapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
