package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshop-backend/internal/domains/user/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// credentialToColumn maps the tagged credential to the nullable
// password_hash column: NULL means federated-only.
func credentialToColumn(c model.Credential) *string {
	if c.IsFederatedOnly() {
		return nil
	}
	hash := c.Hash
	return &hash
}

func columnToCredential(hash *string) model.Credential {
	if hash == nil {
		return model.FederatedOnly()
	}
	return model.LocalPassword(*hash)
}

func (r *postgresRepository) Insert(ctx context.Context, u *model.User) (*model.User, error) {
	query := `
        INSERT INTO users (id, name, email, password_hash, is_admin, email_verified_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, name, email, password_hash, is_admin, email_verified_at, created_at, updated_at
    `

	id := u.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := r.pool.QueryRow(ctx, query,
		id,
		u.Name,
		u.Email,
		credentialToColumn(u.Credential),
		u.IsAdmin,
		u.EmailVerifiedAt,
	)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, model.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
        SELECT id, name, email, password_hash, is_admin, email_verified_at, created_at, updated_at
        FROM users
        WHERE email = $1
    `

	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `
        SELECT id, name, email, password_hash, is_admin, email_verified_at, created_at, updated_at
        FROM users
        WHERE id = $1
    `

	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return u, nil
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email exists: %w", err)
	}

	return exists, nil
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]model.User, error) {
	query := `
        SELECT id, name, email, password_hash, is_admin, email_verified_at, created_at, updated_at
        FROM users
        ORDER BY created_at DESC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var hash *string

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&hash,
		&u.IsAdmin,
		&u.EmailVerifiedAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Credential = columnToCredential(hash)
	return &u, nil
}
