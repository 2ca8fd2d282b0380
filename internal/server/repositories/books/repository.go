package books

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/server/models"
)

// Repository persists books. Get, Update and Delete match on both the book
// id and its owner; a miss on either yields common.ErrorNotFound.
type Repository interface {
	List(ctx context.Context, filter models.BookFilter) ([]*models.Book, error)
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	Get(ctx context.Context, id, ownerID string) (*models.Book, error)
	Update(ctx context.Context, id, ownerID string, patch models.BookPatch) (*models.Book, error)
	Delete(ctx context.Context, id, ownerID string) (*models.Book, error)
}
