// Package articles stores published articles.
package articles

import (
	"context"

	"github.com/dmitrijs2005/mdd/internal/server/models"
)

type Repository interface {
	// Create inserts a and fills in its id and timestamps. Author and subject
	// names are not resolved; use GetByID for that.
	Create(ctx context.Context, a *models.Article) (*models.Article, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	Exists(ctx context.Context, id int64) (bool, error)

	// List orders by creation time, direction taken from req.Asc.
	List(ctx context.Context, req models.PageRequest) ([]*models.Article, error)
	Count(ctx context.Context) (int64, error)

	// ListFeed returns articles of the subjects userID subscribes to, newest first.
	ListFeed(ctx context.Context, userID int64, req models.PageRequest) ([]*models.Article, error)
	CountFeed(ctx context.Context, userID int64) (int64, error)

	// ListBySubject is newest first.
	ListBySubject(ctx context.Context, subjectID int64, req models.PageRequest) ([]*models.Article, error)
	CountBySubject(ctx context.Context, subjectID int64) (int64, error)
}
