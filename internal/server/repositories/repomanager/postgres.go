package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/mdd/internal/dbx"
	"github.com/dmitrijs2005/mdd/internal/server/migrations"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/articles"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/comments"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/subjects"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// postgresRepositories binds PostgreSQL repositories to a DBTX, either the
// pool or a transaction.
type postgresRepositories struct {
	db dbx.DBTX
}

func (r postgresRepositories) Users() users.Repository {
	return users.NewPostgresRepository(r.db)
}

func (r postgresRepositories) Subjects() subjects.Repository {
	return subjects.NewPostgresRepository(r.db)
}

func (r postgresRepositories) Articles() articles.Repository {
	return articles.NewPostgresRepository(r.db)
}

func (r postgresRepositories) Comments() comments.Repository {
	return comments.NewPostgresRepository(r.db)
}

// PostgresRepositoryManager vends PostgreSQL-backed repositories.
type PostgresRepositoryManager struct {
	postgresRepositories
	db *sql.DB
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{postgresRepositories: postgresRepositories{db: db}, db: db}
}

func (m *PostgresRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, postgresRepositories{db: tx})
	})
}

func (m *PostgresRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded goose migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.db, ".")
}
