package repository

import (
	"context"

	"github.com/google/uuid"

	"bookshop-backend/internal/domains/author/model"
)

// Repository is the data-access contract for authors.
type Repository interface {
	ListAll(ctx context.Context) ([]model.Author, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
}
