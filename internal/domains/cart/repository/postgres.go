package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshop-backend/internal/domains/cart/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const cartColumns = `id, user_id, book_id, quantity, created_at, updated_at`

func scanCartItem(row pgx.Row) (*model.CartItem, error) {
	var item model.CartItem
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.BookID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CartItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM cart_items WHERE id = $1`, cartColumns)

	item, err := scanCartItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}
	return item, nil
}

func (r *postgresRepository) FindByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*model.CartItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM cart_items WHERE user_id = $1 AND book_id = $2`, cartColumns)

	item, err := scanCartItem(r.pool.QueryRow(ctx, query, userID, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}
	return item, nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.CartItemDetail, error) {
	query := `
		SELECT ci.id, ci.user_id, ci.book_id, ci.quantity, ci.created_at, ci.updated_at,
		       b.title, b.price, b.quantity, b.image, b.author_name
		FROM cart_items ci
		JOIN books b ON b.id = ci.book_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	items := make([]model.CartItemDetail, 0)
	for rows.Next() {
		var d model.CartItemDetail
		err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.BookID,
			&d.Quantity,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.BookTitle,
			&d.BookPrice,
			&d.BookStock,
			&d.ImageRef,
			&d.AuthorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	return items, nil
}

func (r *postgresRepository) Insert(ctx context.Context, item *model.CartItem) (*model.CartItem, error) {
	query := fmt.Sprintf(`
		INSERT INTO cart_items (id, user_id, book_id, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, cartColumns)

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	created, err := scanCartItem(r.pool.QueryRow(ctx, query, item.ID, item.UserID, item.BookID, item.Quantity))
	if err != nil {
		return nil, fmt.Errorf("failed to insert cart item: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) (*model.CartItem, error) {
	query := fmt.Sprintf(`
		UPDATE cart_items
		SET quantity = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, cartColumns)

	item, err := scanCartItem(r.pool.QueryRow(ctx, query, id, quantity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return item, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
