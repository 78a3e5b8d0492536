package articles

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mdd/internal/dbx"
	"github.com/dmitrijs2005/mdd/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectArticle = `SELECT a.id, a.title, a.content, a.created_at, a.updated_at,
       a.author_id, u.username, a.subject_id, s.name
  FROM articles a
  JOIN users u ON u.id = a.author_id
  JOIN subjects s ON s.id = a.subject_id`

const (
	newestFirst = ` ORDER BY a.created_at DESC, a.id DESC`
	oldestFirst = ` ORDER BY a.created_at ASC, a.id ASC`
)

func orderBy(req models.PageRequest) string {
	if req.Asc {
		return oldestFirst
	}
	return newestFirst
}

const inFeed = ` WHERE a.subject_id IN (SELECT subject_id FROM subscriptions WHERE user_id = $1)`

func (r *PostgresRepository) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	query :=
		`INSERT INTO articles (title, content, author_id, subject_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, a.Title, a.Content, a.AuthorID, a.SubjectID).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return a, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	a := &models.Article{}
	err := r.db.QueryRowContext(ctx, selectArticle+` WHERE a.id = $1`, id).Scan(scanTargets(a)...)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return a, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM articles WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, dbx.MapError(err)
	}
	return ok, nil
}

func (r *PostgresRepository) List(ctx context.Context, req models.PageRequest) ([]*models.Article, error) {
	return r.list(ctx, selectArticle+orderBy(req)+` LIMIT $1 OFFSET $2`, req.Size, req.Offset())
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM articles`)
}

func (r *PostgresRepository) ListFeed(ctx context.Context, userID int64, req models.PageRequest) ([]*models.Article, error) {
	return r.list(ctx, selectArticle+inFeed+orderBy(req)+` LIMIT $2 OFFSET $3`, userID, req.Size, req.Offset())
}

func (r *PostgresRepository) CountFeed(ctx context.Context, userID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM articles a`+inFeed, userID)
}

func (r *PostgresRepository) ListBySubject(ctx context.Context, subjectID int64, req models.PageRequest) ([]*models.Article, error) {
	return r.list(ctx, selectArticle+` WHERE a.subject_id = $1`+orderBy(req)+` LIMIT $2 OFFSET $3`, subjectID, req.Size, req.Offset())
}

func (r *PostgresRepository) CountBySubject(ctx context.Context, subjectID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM articles WHERE subject_id = $1`, subjectID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	items := []*models.Article{}
	for rows.Next() {
		a := &models.Article{}
		if err := rows.Scan(scanTargets(a)...); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, dbx.MapError(err)
	}
	return n, nil
}

func scanTargets(a *models.Article) []any {
	return []any{&a.ID, &a.Title, &a.Content, &a.CreatedAt, &a.UpdatedAt,
		&a.AuthorID, &a.AuthorUsername, &a.SubjectID, &a.SubjectName}
}
