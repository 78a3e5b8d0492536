// Package tokenstore keeps the ids of revoked access tokens until those
// tokens would have expired anyway.
package tokenstore

import (
	"context"
	"time"
)

type Store interface {
	// Revoke denies tokenID until expiresAt. Already expired tokens are
	// ignored.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Noop is used when no deny list is configured: nothing is ever revoked.
type Noop struct{}

func (Noop) Revoke(context.Context, string, time.Time) error { return nil }

func (Noop) IsRevoked(context.Context, string) (bool, error) { return false, nil }
