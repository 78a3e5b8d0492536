// Package users stores registered accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/mdd/internal/server/models"
)

// Constraint names enforced by the users table.
const (
	ConstraintEmail    = "uk_users_email"
	ConstraintUsername = "uk_users_username"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *models.User) error
}
