package repository

import (
	"context"

	"github.com/google/uuid"

	"bookshop-backend/internal/domains/genre/model"
)

// Repository is the data-access contract for genres.
type Repository interface {
	Insert(ctx context.Context, g *model.Genre) (*model.Genre, error)
	ListAll(ctx context.Context) ([]model.Genre, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Genre, error)
}
