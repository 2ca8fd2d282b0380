package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/google/uuid"
)

type BookRepository struct {
	s *Store
}

func NewBookRepository(s *Store) *BookRepository {
	return &BookRepository{s: s}
}

func (r *BookRepository) List(_ context.Context, filter models.BookFilter) ([]*models.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	author := strings.ToLower(filter.Author)
	result := make([]*models.Book, 0)
	for _, b := range r.s.books {
		if filter.OwnerID != "" && b.UserID != filter.OwnerID {
			continue
		}
		if author != "" && !strings.Contains(strings.ToLower(b.Author), author) {
			continue
		}
		if filter.Genre != "" && !hasGenre(b.Genre, filter.Genre) {
			continue
		}
		if filter.MinPages != nil && (b.Pages == nil || *b.Pages < *filter.MinPages) {
			continue
		}

		book := cloneBook(b)
		if u, ok := r.s.users[b.UserID]; ok {
			book.Owner = &models.Owner{ID: u.ID, UserName: u.UserName, Email: u.Email}
		}
		result = append(result, book)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Title != result[j].Title {
			return result[i].Title < result[j].Title
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *BookRepository) Create(_ context.Context, book *models.Book) (*models.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[book.UserID]; !ok {
		return nil, errors.New("unknown owner")
	}

	book.ID = uuid.NewString()
	stored := cloneBook(*book)
	stored.Owner = nil
	r.s.books[book.ID] = *stored
	return book, nil
}

func (r *BookRepository) Get(_ context.Context, id, ownerID string) (*models.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.books[id]
	if !ok || b.UserID != ownerID {
		return nil, common.ErrorNotFound
	}
	return cloneBook(b), nil
}

func (r *BookRepository) Update(_ context.Context, id, ownerID string, patch models.BookPatch) (*models.Book, error) {
	if patch.IsEmpty() {
		return nil, errors.New("empty patch")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.books[id]
	if !ok || b.UserID != ownerID {
		return nil, common.ErrorNotFound
	}

	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Author != nil {
		b.Author = *patch.Author
	}
	if patch.Date != nil {
		b.Date = *patch.Date
	}
	if patch.Genre != nil {
		b.Genre = append(models.Genres{}, (*patch.Genre)...)
	}
	if patch.Pages != nil {
		p := *patch.Pages
		b.Pages = &p
	}
	if patch.Editorial != nil {
		e := *patch.Editorial
		b.Editorial = &e
	}

	r.s.books[id] = b
	return cloneBook(b), nil
}

func (r *BookRepository) Delete(_ context.Context, id, ownerID string) (*models.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.books[id]
	if !ok || b.UserID != ownerID {
		return nil, common.ErrorNotFound
	}
	delete(r.s.books, id)
	return cloneBook(b), nil
}

func hasGenre(genres models.Genres, g string) bool {
	for _, x := range genres {
		if x == g {
			return true
		}
	}
	return false
}

// cloneBook copies b so callers never share pointers with the store.
func cloneBook(b models.Book) *models.Book {
	c := b
	c.Genre = append(models.Genres{}, b.Genre...)
	if b.Pages != nil {
		p := *b.Pages
		c.Pages = &p
	}
	if b.Editorial != nil {
		e := *b.Editorial
		c.Editorial = &e
	}
	c.Owner = nil
	return &c
}
