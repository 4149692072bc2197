package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshop-backend/internal/domains/post/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Insert(ctx context.Context, p *model.Post) (*model.Post, error) {
	query := `
        INSERT INTO posts (id, title, body, user_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, title, body, user_id, created_at
    `

	var created model.Post
	err := r.pool.QueryRow(ctx, query, uuid.New(), p.Title, p.Body, p.UserID).Scan(
		&created.ID,
		&created.Title,
		&created.Body,
		&created.UserID,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]model.PostWithAuthor, error) {
	query := `
        SELECT p.id, p.title, p.body, p.user_id, p.created_at, u.name AS author_name
        FROM posts p
        JOIN users u ON u.id = p.user_id
        ORDER BY p.created_at DESC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []model.PostWithAuthor
	for rows.Next() {
		var p model.PostWithAuthor
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.UserID, &p.CreatedAt, &p.AuthorName); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PostWithAuthor, error) {
	query := `
        SELECT p.id, p.title, p.body, p.user_id, p.created_at, u.name AS author_name
        FROM posts p
        JOIN users u ON u.id = p.user_id
        WHERE p.id = $1
    `

	var p model.PostWithAuthor
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Title, &p.Body, &p.UserID, &p.CreatedAt, &p.AuthorName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return &p, nil
}
