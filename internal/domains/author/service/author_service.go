package service

import (
	"context"

	"github.com/google/uuid"

	"bookshop-backend/internal/domains/author/model"
	"bookshop-backend/internal/domains/author/repository"
)

// Service exposes read-only author operations for the catalog.
type Service interface {
	List(ctx context.Context) ([]model.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
}

type authorService struct {
	repo repository.Repository
}

func NewAuthorService(repo repository.Repository) Service {
	return &authorService{repo: repo}
}

func (s *authorService) List(ctx context.Context) ([]model.Author, error) {
	return s.repo.ListAll(ctx)
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	return s.repo.FindByID(ctx, id)
}
