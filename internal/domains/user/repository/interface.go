package repository

import (
	"context"

	"github.com/google/uuid"

	"bookshop-backend/internal/domains/user/model"
)

// Repository is the data-access contract for users.
type Repository interface {
	Insert(ctx context.Context, u *model.User) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListAll(ctx context.Context) ([]model.User, error)
}
