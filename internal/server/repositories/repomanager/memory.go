package repomanager

import (
	"context"

	"github.com/dmitrijs2005/mdd/internal/server/models"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/articles"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/comments"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/memory"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/subjects"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory.
type InMemoryRepositoryManager struct {
	db *memory.DB
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{db: memory.New()}
}

func (m *InMemoryRepositoryManager) Users() users.Repository       { return m.db.Users() }
func (m *InMemoryRepositoryManager) Subjects() subjects.Repository { return m.db.Subjects() }
func (m *InMemoryRepositoryManager) Articles() articles.Repository { return m.db.Articles() }
func (m *InMemoryRepositoryManager) Comments() comments.Repository { return m.db.Comments() }

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	return m.db.Transaction(ctx, func(ctx context.Context) error { return fn(ctx, m) })
}

// defaultSubjects mirrors the seed migration of the PostgreSQL schema.
var defaultSubjects = []models.Subject{
	{Name: "Angular", Description: "Front-end framework"},
	{Name: "Spring", Description: "Java back-end"},
	{Name: "Go", Description: "Services and tooling in Go"},
	{Name: "DevOps", Description: "Build, deploy and operate"},
}

// RunMigrations seeds the default subjects into an empty store. The tables
// themselves need no schema.
func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return m.WithTx(ctx, func(ctx context.Context, r Repositories) error {
		n, err := r.Subjects().Count(ctx)
		if err != nil || n > 0 {
			return err
		}
		for _, s := range defaultSubjects {
			if _, err := r.Subjects().Create(ctx, &s); err != nil {
				return err
			}
		}
		return nil
	})
}

func (m *InMemoryRepositoryManager) Ping(ctx context.Context) error { return nil }
