// Package memory keeps users and books in process memory. It backs the
// server when no database is configured and doubles as a fake in tests.
package memory

import (
	"sync"

	"github.com/dmitrijs2005/bookshelf/internal/server/models"
)

// Store is the shared state behind UserRepository and BookRepository.
// Both repositories must be built from the same Store for list queries to
// resolve owners.
type Store struct {
	mu      sync.RWMutex
	users   map[string]models.User
	byEmail map[string]string
	books   map[string]models.Book
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
		books:   make(map[string]models.Book),
	}
}
