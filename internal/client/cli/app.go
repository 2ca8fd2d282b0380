package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/bookshelf/internal/client/api"
	"github.com/dmitrijs2005/bookshelf/internal/client/config"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
)

// bookAPI is the part of api.Client the commands use.
type bookAPI interface {
	Register(ctx context.Context, r models.Registration) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ListBooks(ctx context.Context, token string, f models.BookFilter) ([]models.Book, error)
	CreateBook(ctx context.Context, token string, in models.BookInput) (*models.Book, error)
	UpdateBook(ctx context.Context, token, id string, in models.BookInput) (*models.Book, error)
	DeleteBook(ctx context.Context, token, id string) (*models.Book, error)
}

type App struct {
	config *config.Config
	api    bookAPI
	token  string
	email  string
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "Welcome to bookshelf CLI, server %s (type 'help' for commands)\n", a.config.ServerURL)
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) getStatus() string {
	if a.email == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.email)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}
