package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/mdd/internal/server/auth"
	"github.com/dmitrijs2005/mdd/internal/server/config"
	"github.com/dmitrijs2005/mdd/internal/server/models"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mdd/internal/server/tokenstore"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "services-test-secret-0123456789abcdef"

type fixture struct {
	repos    *repomanager.InMemoryRepositoryManager
	tokens   *auth.TokenCodec
	hasher   *auth.PasswordHasher
	auth     *AuthService
	users    *UserService
	subjects *SubjectService
	articles *ArticleService
	comments *CommentService
}

func newFixture(t *testing.T, revoked tokenstore.Store) *fixture {
	t.Helper()

	if revoked == nil {
		revoked = tokenstore.Noop{}
	}
	cfg := &config.Config{}
	cfg.LoadDefaults()

	f := &fixture{
		repos:  repomanager.NewInMemoryRepositoryManager(),
		tokens: auth.NewTokenCodec([]byte(testSecret), time.Hour),
		hasher: auth.NewPasswordHasher(bcrypt.MinCost),
	}
	f.auth = NewAuthService(f.repos, f.tokens, f.hasher, revoked, cfg)
	f.users = NewUserService(f.repos, f.tokens, f.hasher)
	f.subjects = NewSubjectService(f.repos)
	f.articles = NewArticleService(f.repos)
	f.comments = NewCommentService(f.repos)
	return f
}

func (f *fixture) register(t *testing.T, username, email string) *AuthResult {
	t.Helper()
	res, err := f.auth.Register(context.Background(), username, email, "Secret123")
	require.NoError(t, err)
	return res
}

var firstPage = models.PageRequest{Page: 0, Size: DefaultPageSize}
