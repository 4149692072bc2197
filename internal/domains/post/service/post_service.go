package service

import (
	"context"

	"github.com/google/uuid"

	"bookshop-backend/internal/domains/post/model"
	"bookshop-backend/internal/domains/post/repository"
)

// Service exposes forum post operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req model.CreatePostRequest) (*model.Post, error)
	List(ctx context.Context) ([]model.PostWithAuthor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.PostWithAuthor, error)
}

type postService struct {
	repo repository.Repository
}

func NewPostService(repo repository.Repository) Service {
	return &postService{repo: repo}
}

func (s *postService) Create(ctx context.Context, userID uuid.UUID, req model.CreatePostRequest) (*model.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Insert(ctx, &model.Post{
		Title:  req.Title,
		Body:   req.Body,
		UserID: userID,
	})
}

func (s *postService) List(ctx context.Context) ([]model.PostWithAuthor, error) {
	return s.repo.ListAll(ctx)
}

func (s *postService) GetByID(ctx context.Context, id uuid.UUID) (*model.PostWithAuthor, error) {
	return s.repo.FindByID(ctx, id)
}
