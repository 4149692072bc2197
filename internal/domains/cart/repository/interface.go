package repository

import (
	"context"

	"github.com/google/uuid"

	"bookshop-backend/internal/domains/cart/model"
)

// Repository is the data-access contract for cart lines.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.CartItem, error)
	FindByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*model.CartItem, error)

	// ListByUser returns the user's cart joined with the book fields the
	// cart page needs, oldest line first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.CartItemDetail, error)

	Insert(ctx context.Context, item *model.CartItem) (*model.CartItem, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) (*model.CartItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
