package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshop-backend/internal/domains/genre/model"
	"bookshop-backend/pkg/cache"
)

const (
	genreListCacheKey = "genres:list"
	genreCacheTTL     = 15 * time.Minute
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func (r *postgresRepository) Insert(ctx context.Context, g *model.Genre) (*model.Genre, error) {
	query := `
        INSERT INTO genres (id, name)
        VALUES ($1, $2)
        RETURNING id, name
    `

	var created model.Genre
	err := r.pool.QueryRow(ctx, query, uuid.New(), g.Name).Scan(&created.ID, &created.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, model.ErrDuplicateGenre
		}
		return nil, fmt.Errorf("failed to insert genre: %w", err)
	}

	// List cache is stale after a write.
	_ = r.cache.Delete(ctx, genreListCacheKey)

	return &created, nil
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]model.Genre, error) {
	var cached []model.Genre
	if found, err := r.cache.Get(ctx, genreListCacheKey, &cached); err == nil && found {
		return cached, nil
	}

	query := `SELECT id, name FROM genres ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	var genres []model.Genre
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate genres: %w", err)
	}

	_ = r.cache.Set(ctx, genreListCacheKey, genres, genreCacheTTL)

	return genres, nil
}

func (r *postgresRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, name FROM genres WHERE id = ANY($1) ORDER BY name`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find genres by ids: %w", err)
	}
	defer rows.Close()

	var genres []model.Genre
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate genres: %w", err)
	}

	return genres, nil
}
