package memory

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/dmitrijs2005/mdd/internal/server/models"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/users"
)

type UserRepository struct {
	db *DB
}

func (db *DB) Users() *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	defer r.db.lockWrite(ctx)()

	if err := r.checkUnique(0, user); err != nil {
		return nil, err
	}
	user.ID = r.db.nextID()
	user.CreatedAt = r.db.timestamp()
	user.UpdatedAt = user.CreatedAt
	r.db.s.users[user.ID] = *user
	return user, nil
}

func (r *UserRepository) checkUnique(self int64, user *models.User) error {
	for id, u := range r.db.s.users {
		if id == self {
			continue
		}
		if u.Email == user.Email {
			return conflict(users.ConstraintEmail)
		}
		if u.Username == user.Username {
			return conflict(users.ConstraintUsername)
		}
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.s.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(email)
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username })
}

func (r *UserRepository) find(match func(models.User) bool) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.s.users)), nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	defer r.db.lockWrite(ctx)()

	current, ok := r.db.s.users[user.ID]
	if !ok {
		return common.ErrNotFound
	}
	if err := r.checkUnique(user.ID, user); err != nil {
		return err
	}
	current.Username = user.Username
	current.Email = user.Email
	current.PasswordHash = user.PasswordHash
	current.UpdatedAt = r.db.timestamp()
	r.db.s.users[user.ID] = current
	user.UpdatedAt = current.UpdatedAt
	return nil
}
