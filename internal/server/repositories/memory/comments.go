package memory

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/dmitrijs2005/mdd/internal/server/models"
)

type CommentRepository struct {
	db *DB
}

func (db *DB) Comments() *CommentRepository { return &CommentRepository{db: db} }

func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	defer r.db.lockWrite(ctx)()

	c.ID = r.db.nextID()
	c.CreatedAt = r.db.timestamp()
	stored := *c
	stored.AuthorUsername, stored.ArticleTitle = "", ""
	r.db.s.comments[c.ID] = stored
	return c, nil
}

func (r *CommentRepository) resolve(c models.Comment) *models.Comment {
	c.AuthorUsername = r.db.s.users[c.AuthorID].Username
	c.ArticleTitle = r.db.s.articles[c.ArticleID].Title
	return &c
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.s.comments[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return r.resolve(c), nil
}

func (r *CommentRepository) ListByArticle(ctx context.Context, articleID int64, req models.PageRequest) ([]*models.Comment, error) {
	return page(r.byArticle(articleID), req), nil
}

func (r *CommentRepository) CountByArticle(ctx context.Context, articleID int64) (int64, error) {
	return int64(len(r.byArticle(articleID))), nil
}

func (r *CommentRepository) byArticle(articleID int64) []*models.Comment {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	items := []*models.Comment{}
	for _, c := range r.db.s.comments {
		if c.ArticleID == articleID {
			items = append(items, r.resolve(c))
		}
	}
	sortByTime(items,
		func(c *models.Comment) time.Time { return c.CreatedAt },
		func(c *models.Comment) int64 { return c.ID },
		true)
	return items
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	defer r.db.lockWrite(ctx)()

	if _, ok := r.db.s.comments[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.db.s.comments, id)
	return nil
}
