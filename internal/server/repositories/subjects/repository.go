// Package subjects stores subjects (topics) and user subscriptions to them.
package subjects

import (
	"context"

	"github.com/dmitrijs2005/mdd/internal/server/models"
)

// ConstraintName is the case-insensitive unique index on subject names.
const ConstraintName = "uk_subjects_name"

// Repository reads subjects from the point of view of a user, so that
// IsSubscribed can be filled in.
type Repository interface {
	Create(ctx context.Context, s *models.Subject) (*models.Subject, error)
	GetByID(ctx context.Context, id, userID int64) (*models.Subject, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	// List orders subjects by name.
	List(ctx context.Context, userID int64, req models.PageRequest) ([]*models.Subject, error)
	Count(ctx context.Context) (int64, error)

	ListSubscribed(ctx context.Context, userID int64) ([]*models.Subject, error)
	IsSubscribed(ctx context.Context, userID, subjectID int64) (bool, error)
	Subscribe(ctx context.Context, userID, subjectID int64) error
	// Unsubscribe returns common.ErrNotFound when there was no subscription.
	Unsubscribe(ctx context.Context, userID, subjectID int64) error
}
