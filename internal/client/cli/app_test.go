package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/mdd/internal/client/api"
	"github.com/dmitrijs2005/mdd/internal/logging"
	"github.com/dmitrijs2005/mdd/internal/server/auth"
	"github.com/dmitrijs2005/mdd/internal/server/config"
	"github.com/dmitrijs2005/mdd/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mdd/internal/server/rest"
	"github.com/dmitrijs2005/mdd/internal/server/services"
	"github.com/dmitrijs2005/mdd/internal/server/tokenstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// startServer runs the real REST API over the in-memory store.
func startServer(t *testing.T) string {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()

	repos := repomanager.NewInMemoryRepositoryManager()
	require.NoError(t, repos.RunMigrations(context.Background()))
	tokens := auth.NewTokenCodec([]byte(cfg.SecretKey), time.Hour)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)

	srv := rest.NewServer(cfg, logging.Discard(), rest.Services{
		Auth:     services.NewAuthService(repos, tokens, hasher, tokenstore.Noop{}, cfg),
		Users:    services.NewUserService(repos, tokens, hasher),
		Subjects: services.NewSubjectService(repos),
		Articles: services.NewArticleService(repos),
		Comments: services.NewCommentService(repos),
	}, nil, nil)

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts.URL
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = old })
}

func run(t *testing.T, url string, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := newApp(api.NewClient(url, time.Second), strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	app.runREPL(context.Background())
	return out.String()
}

// Ids come from one sequence shared by all tables: the seeded subjects
// take 1-4, so alice is 5, her article 6 and her comment 7.
func TestSession_EndToEnd(t *testing.T) {
	url := startServer(t)
	stubPassword(t, "Secret123")

	out := run(t, url,
		"feed",
		"register", "alice", "alice@example.com",
		"subjects",
		"subscribe 3",
		"subscribe 3",
		"publish 3", "Hello", "first line", "second line", "",
		"feed",
		"read 6",
		"comment 6", "nice one",
		"comments 6",
		"uncomment 7",
		"me",
		"logout",
		"me",
		"exit",
	)

	assert.Contains(t, out, "Please log in first")
	assert.Contains(t, out, "Welcome, alice!")
	assert.Contains(t, out, "[1] Angular")
	assert.Contains(t, out, "Subscribed to Go")
	assert.Contains(t, out, "Error: already subscribed to Go (409)")
	assert.Contains(t, out, "Published article 6")
	assert.Contains(t, out, "[6] Hello  (Go, by alice")
	assert.Contains(t, out, "first line\nsecond line")
	assert.Contains(t, out, "Comment 7 added")
	assert.Contains(t, out, "[7] alice: nice one")
	assert.Contains(t, out, "Comment deleted")
	assert.Contains(t, out, "alice <alice@example.com>")
	assert.Contains(t, out, "[3] Go")
	assert.Contains(t, out, "Logged out")
	assert.Contains(t, out, "Bye!")
}

func TestSession_LoginFailures(t *testing.T) {
	url := startServer(t)
	stubPassword(t, "Wrong1234")

	out := run(t, url, "login", "nobody", "status", "bogus")

	assert.Contains(t, out, "Error: invalid email/username or password (401)")
	assert.Contains(t, out, "authentication service is running, 0 registered users")
	assert.Contains(t, out, "Unknown command: bogus")
}

func TestSession_ServerDown(t *testing.T) {
	ts := httptest.NewServer(nil)
	url := ts.URL
	ts.Close()

	out := run(t, url, "status")
	assert.Contains(t, out, "Server unavailable")
}

func TestHelp(t *testing.T) {
	var out bytes.Buffer
	app := newApp(api.NewClient("http://localhost:1", time.Second), strings.NewReader("help\n"), &out)
	app.runREPL(context.Background())

	assert.Contains(t, out.String(), "register")
	assert.Contains(t, out.String(), "status")
	assert.NotContains(t, out.String(), "publish")

	out.Reset()
	app = newApp(api.NewClient("http://localhost:1", time.Second), strings.NewReader("help\n"), &out)
	app.userName = "alice"
	app.runREPL(context.Background())
	assert.Contains(t, out.String(), "publish")
	assert.NotContains(t, out.String(), "register")
}

func TestArgs(t *testing.T) {
	page, err := pageArg([]string{"3"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, page)

	_, err = pageArg([]string{"0"}, 0)
	assert.Error(t, err)

	a := newApp(nil, strings.NewReader("7\n"), &bytes.Buffer{})
	id, err := a.idArg(nil, "Id?")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = a.idArg([]string{"x"}, "Id?")
	assert.Error(t, err)
}
