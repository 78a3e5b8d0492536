// Package repomanager vends repositories bound either to the connection
// pool or to a transaction, and owns schema migrations.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/mdd/internal/server/repositories/articles"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/comments"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/subjects"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/users"
)

// Repositories is a set of repositories sharing one database handle.
type Repositories interface {
	Users() users.Repository
	Subjects() subjects.Repository
	Articles() articles.Repository
	Comments() comments.Repository
}

type RepositoryManager interface {
	Repositories

	// WithTx runs fn with repositories bound to a single transaction,
	// committing when fn returns nil.
	WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error

	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
}
