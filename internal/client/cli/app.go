package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/mdd/internal/client/api"
	"github.com/dmitrijs2005/mdd/internal/client/config"
)

// API is the part of *api.Client the commands use.
type API interface {
	Register(ctx context.Context, username, email, password string) (*api.AuthResult, error)
	Login(ctx context.Context, identifier, password string) (*api.AuthResult, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (string, error)
	Me(ctx context.Context) (*api.Profile, error)
	Feed(ctx context.Context, page, size int) (*api.Page[api.Article], error)
	Article(ctx context.Context, id int64) (*api.Article, error)
	Publish(ctx context.Context, subjectID int64, title, content string) (*api.Article, error)
	Subjects(ctx context.Context, page, size int) (*api.Page[api.Subject], error)
	Subscribe(ctx context.Context, subjectID int64) (*api.Subject, error)
	Unsubscribe(ctx context.Context, subjectID int64) (*api.Subject, error)
	Comments(ctx context.Context, articleID int64, page, size int) (*api.Page[api.Comment], error)
	Comment(ctx context.Context, articleID int64, content string) (*api.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}

const pageSize = 20

type App struct {
	api    API
	reader *bufio.Reader
	out    io.Writer

	userName string
}

func NewApp(c *config.Config) *App {
	return newApp(api.NewClient(c.ServerURL, c.Timeout), os.Stdin, os.Stdout)
}

func newApp(client API, in io.Reader, out io.Writer) *App {
	return &App{api: client, reader: bufio.NewReader(in), out: out}
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) status() string {
	if a.userName == "" {
		return ""
	}
	return "(" + a.userName + ")"
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "MDD CLI (type 'help' for commands)")
	a.runREPL(ctx)
}

// report prints err in a user friendly way.
func (a *App) report(err error) {
	switch {
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	case errors.Is(err, api.ErrUnauthorized) && a.isLoggedIn():
		fmt.Fprintln(a.out, "Session expired, please log in again")
		a.userName = ""
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
}
