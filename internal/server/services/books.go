package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bookshelf/internal/dbx"
	"github.com/dmitrijs2005/bookshelf/internal/server/auth"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/repomanager"
)

var errNoCaller = errors.New("no authenticated caller")

// BookService scopes every book operation to the calling user. Admins may
// list all books but, like everyone else, change only their own.
type BookService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
}

func NewBookService(db dbx.DBTX, m repomanager.RepositoryManager) *BookService {
	return &BookService{db: db, repomanager: m}
}

func (s *BookService) List(ctx context.Context, caller *auth.Claims, filter models.BookFilter) ([]*models.Book, error) {
	if caller == nil {
		return nil, errNoCaller
	}
	filter.OwnerID = ""
	if !caller.IsAdmin() {
		filter.OwnerID = caller.UserID
	}
	return s.repomanager.Books(s.db).List(ctx, filter)
}

// Create stores book as owned by caller, whatever owner it carried.
func (s *BookService) Create(ctx context.Context, caller *auth.Claims, book *models.Book) (*models.Book, error) {
	if caller == nil {
		return nil, errNoCaller
	}
	book.ID = ""
	book.UserID = caller.UserID
	book.Owner = nil
	if book.Genre == nil {
		book.Genre = models.Genres{}
	}
	return s.repomanager.Books(s.db).Create(ctx, book)
}

// Update applies patch to the caller's book. A book that is missing or
// owned by someone else yields common.ErrorNotFound.
func (s *BookService) Update(ctx context.Context, caller *auth.Claims, id string, patch models.BookPatch) (*models.Book, error) {
	if caller == nil {
		return nil, errNoCaller
	}
	repo := s.repomanager.Books(s.db)
	if patch.IsEmpty() {
		return repo.Get(ctx, id, caller.UserID)
	}
	return repo.Update(ctx, id, caller.UserID, patch)
}

// Delete removes the caller's book and returns its last state.
func (s *BookService) Delete(ctx context.Context, caller *auth.Claims, id string) (*models.Book, error) {
	if caller == nil {
		return nil, errNoCaller
	}
	return s.repomanager.Books(s.db).Delete(ctx, id, caller.UserID)
}
