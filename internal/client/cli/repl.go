package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

type command struct {
	help      string
	needLogin bool
	run       func(ctx context.Context, args []string) error
}

func (a *App) commands() map[string]command {
	return map[string]command{
		"register":    {"create an account", false, a.Register},
		"login":       {"log in with email or username", false, a.Login},
		"status":      {"show server status", false, a.Status},
		"me":          {"show your profile", true, a.Me},
		"subjects":    {"list subjects [page]", true, a.Subjects},
		"subscribe":   {"subscribe to a subject <id>", true, a.Subscribe},
		"unsubscribe": {"unsubscribe from a subject <id>", true, a.Unsubscribe},
		"feed":        {"articles of your subjects [page]", true, a.Feed},
		"read":        {"read an article <id>", true, a.Read},
		"publish":     {"publish an article", true, a.Publish},
		"comments":    {"list comments of an article <id> [page]", true, a.Comments},
		"comment":     {"comment on an article <id>", true, a.Comment},
		"uncomment":   {"delete one of your comments <id>", true, a.DeleteComment},
		"logout":      {"log out", true, a.Logout},
	}
}

func (a *App) help() {
	cmds := a.commands()
	names := make([]string, 0, len(cmds))
	for name, c := range cmds {
		if c.needLogin == a.isLoggedIn() || !c.needLogin && name == "status" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	fmt.Fprintln(a.out, "Available commands:")
	for _, name := range names {
		fmt.Fprintf(a.out, "  %-12s %s\n", name, cmds[name].help)
	}
	fmt.Fprintf(a.out, "  %-12s %s\n", "exit", "leave the program")
}

// runREPL reads commands until EOF, "exit" or "quit". Command errors are
// reported and the loop goes on.
func (a *App) runREPL(ctx context.Context) {
	cmds := a.commands()
	for {
		fmt.Fprintf(a.out, "mdd%s> ", a.status())
		line, err := a.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			a.help()
			continue
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		}

		c, ok := cmds[name]
		switch {
		case !ok:
			fmt.Fprintln(a.out, "Unknown command:", name)
		case c.needLogin && !a.isLoggedIn():
			fmt.Fprintln(a.out, "Please log in first")
		default:
			if err := c.run(ctx, args); err != nil {
				a.report(err)
			}
		}
	}
}
