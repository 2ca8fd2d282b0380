package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/client/api"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
)

var errUsage = errors.New("usage")

func (a *App) List(ctx context.Context, args []string) error {
	filter, err := parseFilter(args)
	if err != nil {
		a.printf("%s", err.Error())
		return err
	}

	books, err := a.api.ListBooks(ctx, a.token, filter)
	if err != nil {
		return a.failed("List", err)
	}

	if len(books) == 0 {
		a.printf("No books found")
		return nil
	}
	for _, b := range books {
		a.printf("%s", b)
	}
	return nil
}

func (a *App) Add(ctx context.Context) error {
	in, err := a.readBook(false)
	if err != nil {
		a.printf("error: %v", err)
		return err
	}

	b, err := a.api.CreateBook(ctx, a.token, in)
	if err != nil {
		return a.failed("Add", err)
	}

	a.printf("Added %s", b)
	return nil
}

func (a *App) Update(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.printf("Usage: update <id>")
		return errUsage
	}

	in, err := a.readBook(true)
	if err != nil {
		a.printf("error: %v", err)
		return err
	}

	b, err := a.api.UpdateBook(ctx, a.token, args[0], in)
	if err != nil {
		return a.failed("Update", err)
	}

	a.printf("Updated %s", b)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.printf("Usage: delete <id>")
		return errUsage
	}

	b, err := a.api.DeleteBook(ctx, a.token, args[0])
	if err != nil {
		return a.failed("Delete", err)
	}

	a.printf("Deleted %s", b)
	return nil
}

// failed reports a book command error. A rejected token ends the session.
func (a *App) failed(op string, err error) error {
	if api.IsUnauthorized(err) {
		a.token = ""
		a.email = ""
		a.printf("Session expired, please login again (%s)", err.Error())
		return err
	}
	a.printf("%s unsuccessful: %s", op, err.Error())
	return err
}

// readBook prompts for every book field. With optional set, an empty
// answer leaves the field out of the request.
func (a *App) readBook(optional bool) (models.BookInput, error) {
	var in models.BookInput

	suffix := ""
	if optional {
		suffix = " (empty to keep)"
	}

	ask := func(prompt string) (*string, error) {
		v, err := GetSimpleText(a.reader, prompt+suffix, a.out)
		if err != nil {
			return nil, err
		}
		if v == "" && optional {
			return nil, nil
		}
		return &v, nil
	}

	var err error
	if in.Title, err = ask("Enter title"); err != nil {
		return in, err
	}
	if in.Author, err = ask("Enter author"); err != nil {
		return in, err
	}

	genres, err := ask("Enter genres, comma separated")
	if err != nil {
		return in, err
	}
	if genres != nil {
		g := splitGenres(*genres)
		in.Genre = &g
	}

	if in.Date, err = ask("Enter publication date (YYYY-MM-DD)"); err != nil {
		return in, err
	}

	// pages and editorial may always be skipped
	pages, err := GetSimpleText(a.reader, "Enter number of pages (empty to skip)", a.out)
	if err != nil {
		return in, err
	}
	if pages != "" {
		n, err := strconv.Atoi(pages)
		if err != nil {
			return in, fmt.Errorf("pages must be a number: %q", pages)
		}
		in.Pages = &n
	}

	editorial, err := GetSimpleText(a.reader, "Enter editorial (empty to skip)", a.out)
	if err != nil {
		return in, err
	}
	if editorial != "" {
		in.Editorial = &editorial
	}

	return in, nil
}

func splitGenres(s string) []string {
	out := make([]string, 0)
	for _, g := range strings.Split(s, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// parseFilter reads list arguments of the form key=value.
func parseFilter(args []string) (models.BookFilter, error) {
	var f models.BookFilter
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return f, fmt.Errorf("expected key=value, got %q", arg)
		}
		switch key {
		case "author":
			f.Author = value
		case "genre":
			f.Genre = value
		case "minPages":
			f.MinPages = value
		default:
			return f, fmt.Errorf("unknown filter %q (author, genre, minPages)", key)
		}
	}
	return f, nil
}
