package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/dmitrijs2005/mdd/internal/server/auth"
	"github.com/dmitrijs2005/mdd/internal/server/models"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/repomanager"
)

// Profile is what a user sees about themselves.
type Profile struct {
	ID            int64             `json:"id"`
	Username      string            `json:"username"`
	Email         string            `json:"email"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	Subscriptions []*models.Subject `json:"subscriptions"`
}

// ProfileUpdate lists the fields to change; empty fields are left as is.
type ProfileUpdate struct {
	Username string
	Email    string
	Password string
}

// ProfileUpdateResult carries a fresh token when the email changed, since
// tokens are bound to the email.
type ProfileUpdateResult struct {
	Profile *Profile    `json:"profile"`
	Auth    *AuthResult `json:"auth,omitempty"`
}

type UserService struct {
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenCodec
	hasher      *auth.PasswordHasher
}

func NewUserService(m repomanager.RepositoryManager, tokens *auth.TokenCodec, hasher *auth.PasswordHasher) *UserService {
	return &UserService{repomanager: m, tokens: tokens, hasher: hasher}
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*Profile, error) {
	return s.profile(ctx, s.repomanager, userID)
}

func (s *UserService) profile(ctx context.Context, r repomanager.Repositories, userID int64) (*Profile, error) {
	user, err := r.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user %d not found", userID)
	}
	subs, err := r.Subjects().ListSubscribed(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return &Profile{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
		Subscriptions: subs,
	}, nil
}

// UpdateProfile trims the username, lower-cases the email and re-hashes
// the password when one is given.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) (*ProfileUpdateResult, error) {
	username := strings.TrimSpace(upd.Username)
	email := normalizeEmail(upd.Email)

	v := common.NewValidationError()
	if username != "" {
		checkUsername(v, username)
	}
	if email != "" {
		checkEmail(v, email)
	}
	if upd.Password != "" {
		checkPassword(v, upd.Password)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	var (
		result       = &ProfileUpdateResult{}
		user         *models.User
		emailChanged bool
	)
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		var err error
		user, err = r.Users().GetByID(ctx, userID)
		if err != nil {
			return notFound(err, "user %d not found", userID)
		}

		if username != "" {
			user.Username = username
		}
		if email != "" && email != user.Email {
			user.Email = email
			emailChanged = true
		}
		if upd.Password != "" {
			hash, err := s.hasher.Hash(upd.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			user.PasswordHash = hash
		}

		if err := r.Users().Update(ctx, user); err != nil {
			return userConflict(err)
		}

		result.Profile, err = s.profile(ctx, r, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if emailChanged {
		if result.Auth, err = issueFor(s.tokens, user); err != nil {
			return nil, err
		}
	}
	return result, nil
}
