// Package books provides the PostgreSQL-backed book repository. Ownership
// is part of every mutating query so that a non-matching owner looks
// exactly like a missing row.
package books

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/dbx"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
)

var bookColumns = []string{"id", "title", "author", "date", "genre", "pages", "editorial", "user_id"}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the books matching filter with their owners joined in.
func (r *PostgresRepository) List(ctx context.Context, filter models.BookFilter) ([]*models.Book, error) {
	cols := make([]string, 0, len(bookColumns)+3)
	for _, c := range bookColumns {
		cols = append(cols, "b."+c)
	}
	cols = append(cols, "u.id", "u.username", "u.email")

	qb := psql.Select(cols...).
		From("books b").
		Join("users u ON u.id = b.user_id").
		OrderBy("b.title", "b.id")

	if filter.OwnerID != "" {
		qb = qb.Where(sq.Eq{"b.user_id": filter.OwnerID})
	}
	if filter.Author != "" {
		qb = qb.Where(sq.ILike{"b.author": "%" + escapeLike(filter.Author) + "%"})
	}
	if filter.Genre != "" {
		g, err := json.Marshal([]string{filter.Genre})
		if err != nil {
			return nil, fmt.Errorf("encode genre filter: %w", err)
		}
		qb = qb.Where("b.genre @> ?::jsonb", string(g))
	}
	if filter.MinPages != nil {
		qb = qb.Where(sq.GtOrEq{"b.pages": *filter.MinPages})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Book, 0)
	for rows.Next() {
		var owner models.Owner
		book, err := scanBook(rows, &owner.ID, &owner.UserName, &owner.Email)
		if err != nil {
			return nil, err
		}
		book.Owner = &owner
		result = append(result, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	query, args, err := psql.Insert("books").
		Columns("title", "author", "date", "genre", "pages", "editorial", "user_id").
		Values(book.Title, book.Author, book.Date, book.Genre, nullableInt(book.Pages), nullableString(book.Editorial), book.UserID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building insert query: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&book.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return book, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, ownerID string) (*models.Book, error) {
	query, args, err := psql.Select(bookColumns...).
		From("books").
		Where(sq.Eq{"id": id, "user_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	return r.queryOne(ctx, query, args)
}

// Update applies the non-nil fields of patch. An empty patch is an error;
// callers use Get for that case.
func (r *PostgresRepository) Update(ctx context.Context, id, ownerID string, patch models.BookPatch) (*models.Book, error) {
	if patch.IsEmpty() {
		return nil, errors.New("empty patch")
	}

	ub := psql.Update("books")
	if patch.Title != nil {
		ub = ub.Set("title", *patch.Title)
	}
	if patch.Author != nil {
		ub = ub.Set("author", *patch.Author)
	}
	if patch.Date != nil {
		ub = ub.Set("date", *patch.Date)
	}
	if patch.Genre != nil {
		ub = ub.Set("genre", *patch.Genre)
	}
	if patch.Pages != nil {
		ub = ub.Set("pages", *patch.Pages)
	}
	if patch.Editorial != nil {
		ub = ub.Set("editorial", *patch.Editorial)
	}

	query, args, err := ub.
		Where(sq.Eq{"id": id, "user_id": ownerID}).
		Suffix("RETURNING " + strings.Join(bookColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building update query: %w", err)
	}
	return r.queryOne(ctx, query, args)
}

// Delete removes the book and returns its last state.
func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) (*models.Book, error) {
	query, args, err := psql.Delete("books").
		Where(sq.Eq{"id": id, "user_id": ownerID}).
		Suffix("RETURNING " + strings.Join(bookColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building delete query: %w", err)
	}
	return r.queryOne(ctx, query, args)
}

func (r *PostgresRepository) queryOne(ctx context.Context, query string, args []any) (*models.Book, error) {
	book, err := scanBook(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return book, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanBook reads bookColumns in order, followed by any extra destinations.
func scanBook(s scanner, extra ...any) (*models.Book, error) {
	var (
		book      models.Book
		pages     sql.NullInt64
		editorial sql.NullString
	)
	dest := []any{&book.ID, &book.Title, &book.Author, &book.Date, &book.Genre, &pages, &editorial, &book.UserID}
	dest = append(dest, extra...)

	if err := s.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if pages.Valid {
		p := int(pages.Int64)
		book.Pages = &p
	}
	if editorial.Valid {
		e := editorial.String
		book.Editorial = &e
	}
	return &book, nil
}

func nullableInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullableString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
