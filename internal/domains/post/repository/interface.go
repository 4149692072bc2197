package repository

import (
	"context"

	"github.com/google/uuid"

	"bookshop-backend/internal/domains/post/model"
)

// Repository is the data-access contract for forum posts.
type Repository interface {
	Insert(ctx context.Context, p *model.Post) (*model.Post, error)
	ListAll(ctx context.Context) ([]model.PostWithAuthor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.PostWithAuthor, error)
}
