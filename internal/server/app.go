// Package server wires the MDD API together: storage, the optional token
// deny list, services, metrics, health checks and the REST server, and runs
// it until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/mdd/internal/logging"
	"github.com/dmitrijs2005/mdd/internal/server/auth"
	"github.com/dmitrijs2005/mdd/internal/server/config"
	"github.com/dmitrijs2005/mdd/internal/server/health"
	"github.com/dmitrijs2005/mdd/internal/server/metrics"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mdd/internal/server/rest"
	"github.com/dmitrijs2005/mdd/internal/server/services"
	"github.com/dmitrijs2005/mdd/internal/server/tokenstore"
)

type App struct {
	config *config.Config
	logger logging.Logger

	db      *sql.DB
	repos   repomanager.RepositoryManager
	revoked tokenstore.Store
	closers []func() error

	server *rest.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stdout, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	app := &App{config: c, logger: logger}
	if err := app.init(ctx); err != nil {
		app.close()
		return nil, err
	}
	return app, nil
}

func (app *App) init(ctx context.Context) error {
	c := app.config
	checker := health.NewChecker()

	if c.DatabaseDSN == config.MemoryDSN {
		app.logger.Warn(ctx, "Using in-memory storage, data is lost on exit")
		app.repos = repomanager.NewInMemoryRepositoryManager()
	} else {
		db, err := sql.Open("pgx", c.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("db init error: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
		app.db = db
		app.closers = append(app.closers, db.Close)
		app.repos = repomanager.NewPostgresRepositoryManager(db)

		if err := app.repos.Ping(ctx); err != nil {
			return fmt.Errorf("db ping error: %w", err)
		}
	}
	checker.Add("database", app.repos, true)

	if err := app.repos.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}

	app.revoked = tokenstore.Noop{}
	if c.RedisURL != "" {
		rs, err := tokenstore.NewRedisStore(ctx, c.RedisURL)
		if err != nil {
			return fmt.Errorf("redis init error: %w", err)
		}
		app.revoked = rs
		app.closers = append(app.closers, rs.Close)
		checker.Add("redis", rs, false)
		app.logger.Info(ctx, "Token deny list enabled")
	}

	tokens := auth.NewTokenCodec([]byte(c.SecretKey), c.TokenLifetime)
	hasher := auth.NewPasswordHasher(c.BcryptCost)

	svc := rest.Services{
		Auth:     services.NewAuthService(app.repos, tokens, hasher, app.revoked, c),
		Users:    services.NewUserService(app.repos, tokens, hasher),
		Subjects: services.NewSubjectService(app.repos),
		Articles: services.NewArticleService(app.repos),
		Comments: services.NewCommentService(app.repos),
	}

	app.server = rest.NewServer(c, app.logger, svc, metrics.NewMetrics(), checker)
	return nil
}

func (app *App) close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Error(context.Background(), "close error", "error", err)
		}
	}
	app.closers = nil
}

// Run serves until SIGINT, SIGTERM or SIGQUIT, or until ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	defer app.close()

	app.logger.Info(ctx, "Starting app...", "login_mode", app.config.LoginMode, "token_lifetime", app.config.TokenLifetime.String())

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "server error", "error", err)
		return err
	}

	app.logger.Info(context.Background(), "App stopped")
	return nil
}
