// Package auth holds the credential primitives of the server: password
// hashing, JWT issuing and verification, and the request identity carried
// in context.Context.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidSubject is returned by Issue for an empty or blank subject.
var ErrInvalidSubject = errors.New("token subject must not be blank")

// ErrInvalidUserID is returned by Issue when the account id is not positive.
var ErrInvalidUserID = errors.New("token user id must be positive")

// Reason classifies why a token was rejected. It is meant for logs only;
// clients always see the same message.
type Reason string

const (
	ReasonMalformed Reason = "malformed"
	ReasonSignature Reason = "signature"
	ReasonExpired   Reason = "expired"
	ReasonAlgorithm Reason = "algorithm"
	ReasonClaims    Reason = "claims"
	// Set outside the codec, once the claims are known to be valid.
	ReasonRevoked     Reason = "revoked"
	ReasonUnknownUser Reason = "unknown_user"
)

// TokenError wraps common.ErrInvalidToken with the rejection reason.
type TokenError struct {
	Reason Reason
	Err    error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("invalid token (%s): %v", e.Reason, e.Err)
}

func (e *TokenError) Unwrap() []error { return []error{common.ErrInvalidToken, e.Err} }

// RejectionReason extracts the Reason from err, or "" if err is not a
// TokenError.
func RejectionReason(err error) Reason {
	var te *TokenError
	if errors.As(err, &te) {
		return te.Reason
	}
	return ""
}

// Claims are the claims we issue: sub is the user's email, uid the account
// id the token was issued to and jti a random id used for revocation.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

// Token is an issued, signed access token.
type Token struct {
	Value     string
	ID        string
	Subject   string
	UserID    int64
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec issues and verifies HS256 tokens with a fixed lifetime.
type TokenCodec struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenCodec(secret []byte, lifetime time.Duration) *TokenCodec {
	return &TokenCodec{secret: secret, lifetime: lifetime, now: time.Now}
}

// Lifetime reports how long issued tokens stay valid.
func (c *TokenCodec) Lifetime() time.Duration { return c.lifetime }

// Issue signs a token for subject owned by account userID, valid from now
// until now+lifetime.
func (c *TokenCodec) Issue(subject string, userID int64) (Token, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return Token{}, ErrInvalidSubject
	}
	if userID <= 0 {
		return Token{}, ErrInvalidUserID
	}

	iat := c.now().Truncate(time.Second)
	exp := iat.Add(c.lifetime)
	id := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}

	return Token{Value: signed, ID: id, Subject: subject, UserID: userID, IssuedAt: iat, ExpiresAt: exp}, nil
}

// Verify parses raw (optionally prefixed with "Bearer ") and returns its
// claims. Any failure yields a *TokenError wrapping common.ErrInvalidToken.
func (c *TokenCodec) Verify(raw string) (*Claims, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(raw, common.BearerPrefix))
	if raw == "" {
		return nil, &TokenError{Reason: ReasonMalformed, Err: errors.New("empty token")}
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return c.secret, nil
	},
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, &TokenError{Reason: classify(err), Err: err}
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return nil, &TokenError{Reason: ReasonClaims, Err: errors.New("missing subject")}
	}
	if claims.UserID <= 0 {
		return nil, &TokenError{Reason: ReasonClaims, Err: errors.New("missing user id")}
	}

	return claims, nil
}

func classify(err error) Reason {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ReasonMalformed
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ReasonAlgorithm
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ReasonSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ReasonExpired
	default:
		return ReasonClaims
	}
}
