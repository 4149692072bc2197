package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshop-backend/internal/domains/book/model"
	genreModel "bookshop-backend/internal/domains/genre/model"
	"bookshop-backend/pkg/cache"
	"bookshop-backend/pkg/database"
)

const (
	bookCacheKeyPrefix = "book:"
	bookCacheTTL       = 10 * time.Minute
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

const bookColumns = `id, title, price, quantity, release_date, format, editorial, synopsis, image, author_id, author_name, created_at, updated_at`

// cachedBook is the cache representation of a Book. Book.ImageRef is
// excluded from JSON by its tag so it never leaks into API responses, which
// means a plain marshal of Book would drop the stored reference; the cache
// carries it in its own field.
type cachedBook struct {
	model.Book
	ImageRef string `json:"image_ref"`
}

func encodeCachedBook(b *model.Book) ([]byte, error) {
	return json.Marshal(&cachedBook{Book: *b, ImageRef: b.ImageRef})
}

func (c *cachedBook) book() *model.Book {
	b := c.Book
	b.ImageRef = c.ImageRef
	return &b
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Price,
		&b.Quantity,
		&b.ReleaseDate,
		&b.Format,
		&b.Editorial,
		&b.Synopsis,
		&b.ImageRef,
		&b.AuthorID,
		&b.AuthorName,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func orderClause(sort string) string {
	switch sort {
	case "title":
		return "ORDER BY title"
	case "price":
		return "ORDER BY price"
	default:
		return "ORDER BY release_date DESC"
	}
}

func (r *postgresRepository) ListAll(ctx context.Context, q model.ListQuery) ([]model.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books %s`, bookColumns, orderClause(q.Sort))

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}

	if err := r.attachGenres(ctx, books); err != nil {
		return nil, err
	}

	return books, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var cached cachedBook
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached.book(), nil
	}

	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = $1`, bookColumns)

	b, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	books := []model.Book{*b}
	if err := r.attachGenres(ctx, books); err != nil {
		return nil, err
	}
	b = &books[0]

	if data, err := encodeCachedBook(b); err == nil {
		_ = r.cache.Set(ctx, cacheKey, string(data), bookCacheTTL)
	}

	return b, nil
}

func (r *postgresRepository) Insert(ctx context.Context, b *model.Book, genreIDs []uuid.UUID) (*model.Book, error) {
	id := b.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	created, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Book, error) {
		query := fmt.Sprintf(`
            INSERT INTO books (id, title, price, quantity, release_date, format, editorial, synopsis, image, author_id, author_name)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
            RETURNING %s
        `, bookColumns)

		row := tx.QueryRow(ctx, query,
			id, b.Title, b.Price, b.Quantity, b.ReleaseDate,
			b.Format, b.Editorial, b.Synopsis, b.ImageRef, b.AuthorID, b.AuthorName,
		)

		inserted, err := scanBook(row)
		if err != nil {
			return nil, fmt.Errorf("failed to insert book: %w", err)
		}

		if err := replaceGenres(ctx, tx, inserted.ID, genreIDs); err != nil {
			return nil, err
		}

		return inserted, nil
	})
	if err != nil {
		return nil, err
	}

	books := []model.Book{*created}
	if err := r.attachGenres(ctx, books); err != nil {
		return nil, err
	}

	return &books[0], nil
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Book, genreIDs []uuid.UUID) (*model.Book, error) {
	updated, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Book, error) {
		query := fmt.Sprintf(`
            UPDATE books
            SET title = $2, price = $3, quantity = $4, release_date = $5, format = $6,
                editorial = $7, synopsis = $8, image = $9, author_id = $10, author_name = $11,
                updated_at = now()
            WHERE id = $1
            RETURNING %s
        `, bookColumns)

		row := tx.QueryRow(ctx, query,
			b.ID, b.Title, b.Price, b.Quantity, b.ReleaseDate,
			b.Format, b.Editorial, b.Synopsis, b.ImageRef, b.AuthorID, b.AuthorName,
		)

		persisted, err := scanBook(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrBookNotFound
			}
			return nil, fmt.Errorf("failed to update book: %w", err)
		}

		if err := replaceGenres(ctx, tx, persisted.ID, genreIDs); err != nil {
			return nil, err
		}

		return persisted, nil
	})
	if err != nil {
		return nil, err
	}

	_ = r.cache.Delete(ctx, bookCacheKeyPrefix+b.ID.String())

	books := []model.Book{*updated}
	if err := r.attachGenres(ctx, books); err != nil {
		return nil, err
	}

	return &books[0], nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	_ = r.cache.Delete(ctx, bookCacheKeyPrefix+id.String())

	return nil
}

// replaceGenres swaps the genre set wholesale inside the caller's
// transaction. No partial merge.
func replaceGenres(ctx context.Context, tx pgx.Tx, bookID uuid.UUID, genreIDs []uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM books_genres WHERE book_id = $1`, bookID); err != nil {
		return fmt.Errorf("failed to clear genre links: %w", err)
	}

	for _, genreID := range genreIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO books_genres (book_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			bookID, genreID,
		)
		if err != nil {
			return fmt.Errorf("failed to link genre %s: %w", genreID, err)
		}
	}

	return nil
}

// attachGenres loads the genre sets for the given books with one query.
func (r *postgresRepository) attachGenres(ctx context.Context, books []model.Book) error {
	if len(books) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(books))
	index := make(map[uuid.UUID]int, len(books))
	for i := range books {
		ids = append(ids, books[i].ID)
		index[books[i].ID] = i
		books[i].Genres = []genreModel.Genre{}
	}

	query := `
        SELECT bg.book_id, g.id, g.name
        FROM books_genres bg
        JOIN genres g ON g.id = bg.genre_id
        WHERE bg.book_id = ANY($1)
        ORDER BY g.name
    `

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load book genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID uuid.UUID
		var g genreModel.Genre
		if err := rows.Scan(&bookID, &g.ID, &g.Name); err != nil {
			return fmt.Errorf("failed to scan book genre: %w", err)
		}
		if i, ok := index[bookID]; ok {
			books[i].Genres = append(books[i].Genres, g)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate book genres: %w", err)
	}

	return nil
}
