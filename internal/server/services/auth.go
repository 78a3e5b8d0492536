// Package services contains server-side business logic: authentication,
// profiles, subjects, articles and comments.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/dmitrijs2005/mdd/internal/server/auth"
	"github.com/dmitrijs2005/mdd/internal/server/config"
	"github.com/dmitrijs2005/mdd/internal/server/models"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/users"
	"github.com/dmitrijs2005/mdd/internal/server/tokenstore"
)

// AuthResult is returned by login, registration and email changes.
type AuthResult struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	ExpiresIn int64  `json:"expiresIn"`
}

// AuthService verifies credentials, registers users and resolves bearer
// tokens into request identities.
type AuthService struct {
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenCodec
	hasher      *auth.PasswordHasher
	revoked     tokenstore.Store
	loginMode   string
}

func NewAuthService(m repomanager.RepositoryManager, tokens *auth.TokenCodec, hasher *auth.PasswordHasher,
	revoked tokenstore.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		repomanager: m,
		tokens:      tokens,
		hasher:      hasher,
		revoked:     revoked,
		loginMode:   cfg.LoginMode,
	}
}

// Login looks the user up by email and then, unless the login mode is
// "email", by username. Unknown users and wrong passwords both yield
// common.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identifier = strings.TrimSpace(identifier)

	v := common.NewValidationError()
	if identifier == "" {
		v.Add("email", "email or username is required")
	}
	if password == "" {
		v.Add("password", "password is required")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	user, err := s.lookup(ctx, identifier)
	if errors.Is(err, common.ErrNotFound) {
		s.hasher.Burn(password)
		return nil, common.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login lookup: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	return issueFor(s.tokens, user)
}

func (s *AuthService) lookup(ctx context.Context, identifier string) (*models.User, error) {
	repo := s.repomanager.Users()

	user, err := repo.GetByEmail(ctx, identifier)
	if err == nil || !errors.Is(err, common.ErrNotFound) || s.loginMode == config.LoginModeEmail {
		return user, err
	}
	return repo.GetByUsername(ctx, identifier)
}

// Register creates the account and logs the user in.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)

	v := common.NewValidationError()
	checkUsername(v, username)
	checkEmail(v, email)
	checkPassword(v, password)
	if err := v.Err(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user, err := s.repomanager.Users().Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, userConflict(err)
	}

	return issueFor(s.tokens, user)
}

// Status reports that the service is up and how many users exist.
func (s *AuthService) Status(ctx context.Context) (string, error) {
	n, err := s.repomanager.Users().Count(ctx)
	if err != nil {
		return "", fmt.Errorf("count users: %w", err)
	}
	return fmt.Sprintf("authentication service is running, %d registered users", n), nil
}

// Authenticate turns a bearer token into an identity. The token must verify
// and must not be revoked. Its subject must still be the email of the account
// it was issued to.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*auth.Identity, error) {
	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, &auth.TokenError{Reason: auth.ReasonRevoked, Err: errors.New("token has been revoked")}
	}

	user, err := s.repomanager.Users().GetByEmail(ctx, claims.Subject)
	if errors.Is(err, common.ErrNotFound) {
		return nil, &auth.TokenError{Reason: auth.ReasonUnknownUser, Err: errors.New("subject is not a registered user")}
	}
	if err != nil {
		return nil, fmt.Errorf("resolve token subject: %w", err)
	}
	// The email may have moved to another account since the token was issued.
	if user.ID != claims.UserID {
		return nil, &auth.TokenError{Reason: auth.ReasonUnknownUser, Err: errors.New("subject belongs to a different account")}
	}

	id := &auth.Identity{UserID: user.ID, Email: user.Email, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

// Logout revokes the caller's token when a deny list is configured.
func (s *AuthService) Logout(ctx context.Context, id *auth.Identity) error {
	if id.TokenID == "" {
		return nil
	}
	if err := s.revoked.Revoke(ctx, id.TokenID, id.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func issueFor(tokens *auth.TokenCodec, user *models.User) (*AuthResult, error) {
	tok, err := tokens.Issue(user.Email, user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{
		Token:     tok.Value,
		Type:      common.TokenType,
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		ExpiresIn: int64(tokens.Lifetime().Seconds()),
	}, nil
}

// userConflict turns a users unique violation into a client message.
func userConflict(err error) error {
	var ce *common.ConstraintError
	if !errors.As(err, &ce) {
		return fmt.Errorf("save user: %w", err)
	}
	switch ce.Constraint {
	case users.ConstraintEmail:
		return common.Conflict("email already in use")
	case users.ConstraintUsername:
		return common.Conflict("username already taken")
	default:
		return common.Conflict("account already exists")
	}
}
