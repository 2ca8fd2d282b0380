package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Book is a record in a user's collection. UserID is set from the
// authenticated caller at creation and never reassigned.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Date      time.Time `json:"date"`
	Genre     Genres    `json:"genre"`
	Pages     *int      `json:"pages,omitempty"`
	Editorial *string   `json:"editorial,omitempty"`
	UserID    string    `json:"user"`

	// Owner is resolved only by list queries.
	Owner *Owner `json:"owner,omitempty"`
}

// Owner is the public part of the user a book belongs to.
type Owner struct {
	ID       string `json:"id"`
	UserName string `json:"username"`
	Email    string `json:"email"`
}

// BookFilter narrows a list query. An empty OwnerID means no ownership
// restriction.
type BookFilter struct {
	OwnerID  string
	Author   string
	Genre    string
	MinPages *int
}

// BookPatch carries the fields of a partial update; nil fields are left
// untouched.
type BookPatch struct {
	Title     *string
	Author    *string
	Date      *time.Time
	Genre     *Genres
	Pages     *int
	Editorial *string
}

func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.Date == nil &&
		p.Genre == nil && p.Pages == nil && p.Editorial == nil
}

// Genres is stored as a JSON array.
type Genres []string

func (g Genres) Value() (driver.Value, error) {
	if g == nil {
		g = Genres{}
	}
	b, err := json.Marshal([]string(g))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (g *Genres) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*g = Genres{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Genres", src)
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("decode genres: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*g = out
	return nil
}
