package memory

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/dmitrijs2005/mdd/internal/server/models"
)

type ArticleRepository struct {
	db *DB
}

func (db *DB) Articles() *ArticleRepository { return &ArticleRepository{db: db} }

func (r *ArticleRepository) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	defer r.db.lockWrite(ctx)()

	a.ID = r.db.nextID()
	a.CreatedAt = r.db.timestamp()
	a.UpdatedAt = a.CreatedAt
	stored := *a
	stored.AuthorUsername, stored.SubjectName = "", ""
	r.db.s.articles[a.ID] = stored
	return a, nil
}

// resolve fills in the joined names. Callers hold the read lock.
func (r *ArticleRepository) resolve(a models.Article) *models.Article {
	a.AuthorUsername = r.db.s.users[a.AuthorID].Username
	a.SubjectName = r.db.s.subjects[a.SubjectID].Name
	return &a
}

func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	a, ok := r.db.s.articles[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return r.resolve(a), nil
}

func (r *ArticleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	_, ok := r.db.s.articles[id]
	return ok, nil
}

func (r *ArticleRepository) List(ctx context.Context, req models.PageRequest) ([]*models.Article, error) {
	return page(r.filter(func(models.Article) bool { return true }, req.Asc), req), nil
}

func (r *ArticleRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(r.filter(func(models.Article) bool { return true }, false))), nil
}

func (r *ArticleRepository) ListFeed(ctx context.Context, userID int64, req models.PageRequest) ([]*models.Article, error) {
	return page(r.filter(r.inFeed(userID), req.Asc), req), nil
}

func (r *ArticleRepository) CountFeed(ctx context.Context, userID int64) (int64, error) {
	return int64(len(r.filter(r.inFeed(userID), false))), nil
}

func (r *ArticleRepository) ListBySubject(ctx context.Context, subjectID int64, req models.PageRequest) ([]*models.Article, error) {
	return page(r.filter(bySubject(subjectID), req.Asc), req), nil
}

func (r *ArticleRepository) CountBySubject(ctx context.Context, subjectID int64) (int64, error) {
	return int64(len(r.filter(bySubject(subjectID), false))), nil
}

func (r *ArticleRepository) inFeed(userID int64) func(models.Article) bool {
	return func(a models.Article) bool {
		_, ok := r.db.s.subscriptions[subscriptionKey{userID: userID, subjectID: a.SubjectID}]
		return ok
	}
}

func bySubject(subjectID int64) func(models.Article) bool {
	return func(a models.Article) bool { return a.SubjectID == subjectID }
}

func (r *ArticleRepository) filter(keep func(models.Article) bool, asc bool) []*models.Article {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	items := []*models.Article{}
	for _, a := range r.db.s.articles {
		if keep(a) {
			items = append(items, r.resolve(a))
		}
	}
	sortByTime(items,
		func(a *models.Article) time.Time { return a.CreatedAt },
		func(a *models.Article) int64 { return a.ID },
		asc)
	return items
}
