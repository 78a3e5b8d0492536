package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/dmitrijs2005/mdd/internal/server/models"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/subjects"
)

const constraintSubscription = "subscriptions_pkey"

type SubjectRepository struct {
	db *DB
}

func (db *DB) Subjects() *SubjectRepository { return &SubjectRepository{db: db} }

func (r *SubjectRepository) Create(ctx context.Context, s *models.Subject) (*models.Subject, error) {
	defer r.db.lockWrite(ctx)()

	for _, existing := range r.db.s.subjects {
		if strings.EqualFold(existing.Name, s.Name) {
			return nil, conflict(subjects.ConstraintName)
		}
	}
	s.ID = r.db.nextID()
	s.CreatedAt = r.db.timestamp()
	s.IsSubscribed = false
	r.db.s.subjects[s.ID] = *s
	return s, nil
}

func (r *SubjectRepository) GetByID(ctx context.Context, id, userID int64) (*models.Subject, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.s.subjects[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return r.view(s, userID), nil
}

func (r *SubjectRepository) view(s models.Subject, userID int64) *models.Subject {
	_, s.IsSubscribed = r.db.s.subscriptions[subscriptionKey{userID: userID, subjectID: s.ID}]
	return &s
}

func (r *SubjectRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, s := range r.db.s.subjects {
		if strings.EqualFold(s.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *SubjectRepository) List(ctx context.Context, userID int64, req models.PageRequest) ([]*models.Subject, error) {
	return page(r.sorted(userID, func(models.Subject) bool { return true }), req), nil
}

func (r *SubjectRepository) ListSubscribed(ctx context.Context, userID int64) ([]*models.Subject, error) {
	return r.sorted(userID, func(s models.Subject) bool {
		_, ok := r.db.s.subscriptions[subscriptionKey{userID: userID, subjectID: s.ID}]
		return ok
	}), nil
}

func (r *SubjectRepository) sorted(userID int64, keep func(models.Subject) bool) []*models.Subject {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	items := []*models.Subject{}
	for _, s := range r.db.s.subjects {
		if keep(s) {
			items = append(items, r.view(s, userID))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
	return items
}

func (r *SubjectRepository) Count(ctx context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.s.subjects)), nil
}

func (r *SubjectRepository) IsSubscribed(ctx context.Context, userID, subjectID int64) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	_, ok := r.db.s.subscriptions[subscriptionKey{userID: userID, subjectID: subjectID}]
	return ok, nil
}

func (r *SubjectRepository) Subscribe(ctx context.Context, userID, subjectID int64) error {
	defer r.db.lockWrite(ctx)()

	key := subscriptionKey{userID: userID, subjectID: subjectID}
	if _, ok := r.db.s.subscriptions[key]; ok {
		return conflict(constraintSubscription)
	}
	r.db.s.subscriptions[key] = r.db.timestamp()
	return nil
}

func (r *SubjectRepository) Unsubscribe(ctx context.Context, userID, subjectID int64) error {
	defer r.db.lockWrite(ctx)()

	key := subscriptionKey{userID: userID, subjectID: subjectID}
	if _, ok := r.db.s.subscriptions[key]; !ok {
		return common.ErrNotFound
	}
	delete(r.db.s.subscriptions, key)
	return nil
}
