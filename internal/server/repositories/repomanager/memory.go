package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bookshelf/internal/dbx"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/books"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/memory"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/users"
)

// MemoryRepositoryManager serves every repository from one in-process
// store. The db argument of the factories is ignored and may be nil.
type MemoryRepositoryManager struct {
	store *memory.Store
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: memory.NewStore()}
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return memory.NewUserRepository(m.store)
}

func (m *MemoryRepositoryManager) Books(dbx.DBTX) books.Repository {
	return memory.NewBookRepository(m.store)
}

// RunMigrations is a no-op; the store has no schema.
func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}
