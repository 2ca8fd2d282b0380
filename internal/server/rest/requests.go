package rest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dmitrijs2005/bookshelf/internal/server/models"
)

type registerRequest struct {
	UserName string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate will validate the payload
func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserName, validation.Length(2, 0)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 0), validation.By(passwordBytes)),
		validation.Field(&r.Role, validation.In(string(models.RoleUser), string(models.RoleAdmin))),
	)
}

// bcrypt only accepts the first 72 bytes of a password.
const maxPasswordBytes = 72

func passwordBytes(value any) error {
	s, _ := value.(string)
	if len(s) > maxPasswordBytes {
		return fmt.Errorf("the length must be no more than %d bytes", maxPasswordBytes)
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will validate the payload
func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// bookRequest is the body of both create and patch. Absent fields stay nil.
type bookRequest struct {
	Title     *string   `json:"title"`
	Author    *string   `json:"author"`
	Genre     *[]string `json:"genre"`
	Date      *string   `json:"date"`
	Pages     *int      `json:"pages"`
	Editorial *string   `json:"editorial"`
}

func (r *bookRequest) normalize() {
	trim := func(p *string) {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	trim(r.Title)
	trim(r.Author)
	trim(r.Date)
	trim(r.Editorial)
}

// validateCreate requires every mandatory field.
func (r bookRequest) validateCreate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(2, 0)),
		validation.Field(&r.Author, validation.Required, validation.Length(2, 0)),
		validation.Field(&r.Genre, validation.Required, validation.Length(1, 5), validation.By(genreItems)),
		validation.Field(&r.Date, validation.Required, validation.By(dateString)),
		validation.Field(&r.Pages, validation.NilOrNotEmpty, validation.Min(1)),
	)
}

// validatePatch applies the same rules to whichever fields are present.
func (r bookRequest) validatePatch() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(2, 0)),
		validation.Field(&r.Author, validation.NilOrNotEmpty, validation.Length(2, 0)),
		validation.Field(&r.Genre, validation.NilOrNotEmpty, validation.Length(1, 5), validation.By(genreItems)),
		validation.Field(&r.Date, validation.NilOrNotEmpty, validation.By(dateString)),
		validation.Field(&r.Pages, validation.NilOrNotEmpty, validation.Min(1)),
	)
}

// book converts a validated create request.
func (r bookRequest) book() *models.Book {
	b := &models.Book{
		Title:     deref(r.Title),
		Author:    deref(r.Author),
		Pages:     r.Pages,
		Editorial: r.Editorial,
		Genre:     models.Genres{},
	}
	if r.Genre != nil {
		b.Genre = append(b.Genre, *r.Genre...)
	}
	if r.Date != nil {
		b.Date, _ = parseDate(*r.Date)
	}
	return b
}

// patch converts a validated patch request.
func (r bookRequest) patch() models.BookPatch {
	p := models.BookPatch{
		Title:     r.Title,
		Author:    r.Author,
		Pages:     r.Pages,
		Editorial: r.Editorial,
	}
	if r.Genre != nil {
		g := models.Genres(append([]string{}, *r.Genre...))
		p.Genre = &g
	}
	if r.Date != nil {
		if d, err := parseDate(*r.Date); err == nil {
			p.Date = &d
		}
	}
	return p
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			// the column holds a calendar day
			y, m, d := t.UTC().Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.New("must be a valid date")
}

func dateString(value any) error {
	s, ok := value.(*string)
	if !ok || s == nil {
		return nil
	}
	_, err := parseDate(*s)
	return err
}

func genreItems(value any) error {
	g, ok := value.(*[]string)
	if !ok || g == nil {
		return nil
	}
	for _, item := range *g {
		if strings.TrimSpace(item) == "" {
			return errors.New("genres cannot be blank")
		}
	}
	return nil
}

// parseBookFilter reads the list query string. minPages must be a positive
// integer when present.
func parseBookFilter(author, genre, minPages string) (models.BookFilter, error) {
	f := models.BookFilter{
		Author: strings.TrimSpace(author),
		Genre:  strings.TrimSpace(genre),
	}
	if minPages = strings.TrimSpace(minPages); minPages != "" {
		n, err := strconv.Atoi(minPages)
		if err != nil || n < 1 {
			return f, validation.Errors{"minPages": errors.New("must be a positive integer")}
		}
		f.MinPages = &n
	}
	return f, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
