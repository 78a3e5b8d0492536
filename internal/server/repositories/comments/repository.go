// Package comments stores comments on articles.
package comments

import (
	"context"

	"github.com/dmitrijs2005/mdd/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	// ListByArticle is oldest first.
	ListByArticle(ctx context.Context, articleID int64, req models.PageRequest) ([]*models.Comment, error)
	CountByArticle(ctx context.Context, articleID int64) (int64, error)
	// Delete returns common.ErrNotFound when no row was removed.
	Delete(ctx context.Context, id int64) error
}
