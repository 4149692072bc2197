package repository

import (
	"context"

	"github.com/google/uuid"

	"bookshop-backend/internal/domains/book/model"
)

// Repository is the data-access contract for books. Writes that touch the
// genre set run inside a single transaction.
type Repository interface {
	ListAll(ctx context.Context, q model.ListQuery) ([]model.Book, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// Insert creates the book and its genre links atomically.
	Insert(ctx context.Context, b *model.Book, genreIDs []uuid.UUID) (*model.Book, error)

	// Update overwrites the book row and replaces the genre set wholesale
	// with genreIDs, atomically.
	Update(ctx context.Context, b *model.Book, genreIDs []uuid.UUID) (*model.Book, error)

	// Delete removes the book row; cart items and genre links go with it
	// via FK cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}
