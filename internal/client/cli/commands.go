package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Register prompts for the account fields and logs the new user in.
func (a *App) Register(ctx context.Context, _ []string) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	res, err := a.api.Register(ctx, username, email, password)
	if err != nil {
		return err
	}
	a.userName = res.Username
	fmt.Fprintf(a.out, "Welcome, %s!\n", res.Username)
	return nil
}

func (a *App) Login(ctx context.Context, _ []string) error {
	identifier, err := GetSimpleText(a.reader, "Enter email or username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	res, err := a.api.Login(ctx, identifier, password)
	if err != nil {
		return err
	}
	a.userName = res.Username
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	err := a.api.Logout(ctx)
	a.userName = ""
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Status(ctx context.Context, _ []string) error {
	msg, err := a.api.Status(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Me(ctx context.Context, _ []string) error {
	p, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>, member since %s\n", p.Username, p.Email, p.CreatedAt.Format("2006-01-02"))
	if len(p.Subscriptions) == 0 {
		fmt.Fprintln(a.out, "No subscriptions")
		return nil
	}
	fmt.Fprintln(a.out, "Subscriptions:")
	for _, s := range p.Subscriptions {
		fmt.Fprintf(a.out, "  [%d] %s\n", s.ID, s.Name)
	}
	return nil
}

func (a *App) Subjects(ctx context.Context, args []string) error {
	page, err := pageArg(args, 0)
	if err != nil {
		return err
	}
	p, err := a.api.Subjects(ctx, page, pageSize)
	if err != nil {
		return err
	}
	for _, s := range p.Content {
		mark := " "
		if s.IsSubscribed {
			mark = "*"
		}
		fmt.Fprintf(a.out, "%s [%d] %s  %s\n", mark, s.ID, s.Name, s.Description)
	}
	a.pageFooter(p.Page, p.TotalPages, p.TotalElements)
	return nil
}

func (a *App) Subscribe(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter subject id")
	if err != nil {
		return err
	}
	s, err := a.api.Subscribe(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Subscribed to %s\n", s.Name)
	return nil
}

func (a *App) Unsubscribe(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter subject id")
	if err != nil {
		return err
	}
	s, err := a.api.Unsubscribe(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Unsubscribed from %s\n", s.Name)
	return nil
}

func (a *App) Feed(ctx context.Context, args []string) error {
	page, err := pageArg(args, 0)
	if err != nil {
		return err
	}
	p, err := a.api.Feed(ctx, page, pageSize)
	if err != nil {
		return err
	}
	if p.TotalElements == 0 {
		fmt.Fprintln(a.out, "Your feed is empty, subscribe to a subject first")
		return nil
	}
	for _, art := range p.Content {
		fmt.Fprintf(a.out, "[%d] %s  (%s, by %s, %s)\n", art.ID, art.Title, art.SubjectName, art.AuthorUsername,
			art.CreatedAt.Format("2006-01-02 15:04"))
	}
	a.pageFooter(p.Page, p.TotalPages, p.TotalElements)
	return nil
}

func (a *App) Read(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter article id")
	if err != nil {
		return err
	}
	art, err := a.api.Article(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\n%s, by %s\n\n%s\n", art.Title, art.SubjectName, art.AuthorUsername, art.Content)
	return nil
}

func (a *App) Publish(ctx context.Context, args []string) error {
	subjectID, err := a.idArg(args, "Enter subject id")
	if err != nil {
		return err
	}
	title, err := GetSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Enter content", a.out)
	if err != nil {
		return err
	}

	art, err := a.api.Publish(ctx, subjectID, title, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Published article %d\n", art.ID)
	return nil
}

func (a *App) Comments(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter article id")
	if err != nil {
		return err
	}
	page, err := pageArg(args, 1)
	if err != nil {
		return err
	}
	p, err := a.api.Comments(ctx, id, page, pageSize)
	if err != nil {
		return err
	}
	for _, c := range p.Content {
		fmt.Fprintf(a.out, "[%d] %s: %s\n", c.ID, c.AuthorUsername, c.Content)
	}
	a.pageFooter(p.Page, p.TotalPages, p.TotalElements)
	return nil
}

func (a *App) Comment(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter article id")
	if err != nil {
		return err
	}
	content, err := GetSimpleText(a.reader, "Enter comment", a.out)
	if err != nil {
		return err
	}
	c, err := a.api.Comment(ctx, id, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Comment %d added\n", c.ID)
	return nil
}

func (a *App) DeleteComment(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter comment id")
	if err != nil {
		return err
	}
	if err := a.api.DeleteComment(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Comment deleted")
	return nil
}

func (a *App) pageFooter(page, pages int, total int64) {
	if pages > 1 {
		fmt.Fprintf(a.out, "page %d of %d, %d in total\n", page+1, pages, total)
	}
}

// idArg takes the id from the first argument or prompts for it.
func (a *App) idArg(args []string, prompt string) (int64, error) {
	if len(args) > 0 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return 0, fmt.Errorf("%q is not a valid id", args[0])
		}
		return id, nil
	}
	return GetID(a.reader, prompt, a.out)
}

// pageArg reads a one-based page number from args[i], if present, and
// returns it zero-based.
func pageArg(args []string, i int) (int, error) {
	if len(args) <= i {
		return 0, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%q is not a valid page number", args[i])
	}
	return n - 1, nil
}
