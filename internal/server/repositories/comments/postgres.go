package comments

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

const selectComment = `SELECT c.id, c.content, c.created_at, c.author_id, u.username, c.article_id, a.title
  FROM comments c
  JOIN users u ON u.id = c.author_id
  JOIN articles a ON a.id = c.article_id`

func (r *PostgresRepository) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	query :=
		`INSERT INTO comments (content, author_id, article_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`

	if err := r.db.QueryRowContext(ctx, query, c.Content, c.AuthorID, c.ArticleID).Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, dbx.MapError(err)
	}
	return c, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	c := &models.Comment{}
	err := r.db.QueryRowContext(ctx, selectComment+` WHERE c.id = $1`, id).
		Scan(&c.ID, &c.Content, &c.CreatedAt, &c.AuthorID, &c.AuthorUsername, &c.ArticleID, &c.ArticleTitle)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return c, nil
}

func (r *PostgresRepository) ListByArticle(ctx context.Context, articleID int64, req models.PageRequest) ([]*models.Comment, error) {
	query := selectComment + ` WHERE c.article_id = $1 ORDER BY c.created_at ASC, c.id ASC LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, articleID, req.Size, req.Offset())
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	items := []*models.Comment{}
	for rows.Next() {
		c := &models.Comment{}
		if err := rows.Scan(&c.ID, &c.Content, &c.CreatedAt, &c.AuthorID, &c.AuthorUsername, &c.ArticleID, &c.ArticleTitle); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) CountByArticle(ctx context.Context, articleID int64) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE article_id = $1`, articleID).Scan(&n); err != nil {
		return 0, dbx.MapError(err)
	}
	return n, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
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
