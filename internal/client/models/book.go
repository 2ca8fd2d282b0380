// Package models holds the client-side view of the bookshelf API payloads.
package models

import (
	"fmt"
	"strings"
	"time"
)

type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Date      time.Time `json:"date"`
	Genre     []string  `json:"genre"`
	Pages     *int      `json:"pages,omitempty"`
	Editorial *string   `json:"editorial,omitempty"`
	UserID    string    `json:"user"`
	Owner     *Owner    `json:"owner,omitempty"`
}

type Owner struct {
	ID       string `json:"id"`
	UserName string `json:"username"`
	Email    string `json:"email"`
}

// String renders a book on a single line for the REPL.
func (b Book) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %q by %s (%s)", b.ID, b.Title, b.Author, b.Date.Format(time.DateOnly))
	if len(b.Genre) > 0 {
		fmt.Fprintf(&sb, " [%s]", strings.Join(b.Genre, ", "))
	}
	if b.Pages != nil {
		fmt.Fprintf(&sb, " %dp", *b.Pages)
	}
	if b.Editorial != nil {
		fmt.Fprintf(&sb, " %s", *b.Editorial)
	}
	if b.Owner != nil {
		fmt.Fprintf(&sb, " <%s>", b.Owner.Email)
	}
	return sb.String()
}

// BookInput is the body of create and update requests. Nil fields are not
// sent.
type BookInput struct {
	Title     *string   `json:"title,omitempty"`
	Author    *string   `json:"author,omitempty"`
	Genre     *[]string `json:"genre,omitempty"`
	Date      *string   `json:"date,omitempty"`
	Pages     *int      `json:"pages,omitempty"`
	Editorial *string   `json:"editorial,omitempty"`
}

func (in BookInput) IsEmpty() bool {
	return in.Title == nil && in.Author == nil && in.Genre == nil &&
		in.Date == nil && in.Pages == nil && in.Editorial == nil
}

type BookFilter struct {
	Author   string
	Genre    string
	MinPages string
}

type Registration struct {
	UserName string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}
