package service

import (
	"context"

	"github.com/google/uuid"

	"bookshop-backend/internal/domains/genre/model"
	"bookshop-backend/internal/domains/genre/repository"
)

// Service exposes genre operations.
type Service interface {
	Create(ctx context.Context, req model.CreateGenreRequest) (*model.Genre, error)
	List(ctx context.Context) ([]model.Genre, error)
	Resolve(ctx context.Context, ids []uuid.UUID) ([]model.Genre, error)
}

type genreService struct {
	repo repository.Repository
}

func NewGenreService(repo repository.Repository) Service {
	return &genreService{repo: repo}
}

func (s *genreService) Create(ctx context.Context, req model.CreateGenreRequest) (*model.Genre, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Insert(ctx, &model.Genre{Name: req.Name})
}

func (s *genreService) List(ctx context.Context) ([]model.Genre, error) {
	return s.repo.ListAll(ctx)
}

// Resolve looks up the submitted genre ids. Unknown ids fail the whole set
// so a book never ends up with a partially applied genre selection.
func (s *genreService) Resolve(ctx context.Context, ids []uuid.UUID) ([]model.Genre, error) {
	genres, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(dedupe(ids)) {
		return nil, model.ErrGenreNotFound
	}
	return genres, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
