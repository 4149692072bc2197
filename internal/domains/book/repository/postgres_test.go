package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshop-backend/internal/domains/book/model"
	genreModel "bookshop-backend/internal/domains/genre/model"
)

// Query paths need a live database and are not exercised here. In
// particular, cleanup of books_genres and cart_items rows when a book is
// deleted happens through the ON DELETE CASCADE constraints in
// migrations/001_init.sql, not in Go code. The tests below cover the cache
// layer; memoryCache mirrors the JSON semantics of the Redis
// implementation.

type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	switch v := value.(type) {
	case string:
		m.entries[key] = []byte(v)
	case []byte:
		m.entries[key] = v
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return err
		}
		m.entries[key] = data
	}
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

func (m *memoryCache) DeletePattern(ctx context.Context, pattern string) error { return nil }

func (m *memoryCache) Ping(ctx context.Context) error { return nil }

func sampleBook() *model.Book {
	return &model.Book{
		ID:          uuid.New(),
		Title:       "Cien años de soledad",
		Price:       decimal.NewFromFloat(19.90),
		Quantity:    7,
		ReleaseDate: time.Date(1967, 5, 30, 0, 0, 0, 0, time.UTC),
		Format:      "Tapa blanda",
		Editorial:   "Sudamericana",
		Synopsis:    "Macondo.",
		ImageRef:    "books/cover_123.jpg",
		AuthorName:  "Gabriel García Márquez",
		Genres: []genreModel.Genre{
			{ID: uuid.New(), Name: "Novela"},
		},
	}
}

// A cache hit must return the book with its stored image reference intact.
// The reference feeds URL resolution on reads and is carried over on edits
// without a replacement image, so losing it here would wipe covers.
func TestFindByIDCacheHitKeepsImageRef(t *testing.T) {
	mc := newMemoryCache()
	book := sampleBook()

	data, err := encodeCachedBook(book)
	require.NoError(t, err)
	require.NoError(t, mc.Set(context.Background(), bookCacheKeyPrefix+book.ID.String(), string(data), bookCacheTTL))

	// Nil pool: a hit must be served without touching the database.
	repo := NewPostgresRepository(nil, mc)

	got, err := repo.FindByID(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, "books/cover_123.jpg", got.ImageRef)
	assert.Equal(t, book.Title, got.Title)
	assert.Equal(t, book.Quantity, got.Quantity)
	require.Len(t, got.Genres, 1)
	assert.Equal(t, "Novela", got.Genres[0].Name)
}

// The reference still must not appear in API payloads; only the cache
// representation carries it.
func TestCachedBookKeepsImageRefOutOfResponses(t *testing.T) {
	book := sampleBook()

	data, err := json.Marshal(book)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "cover_123")

	cached, err := encodeCachedBook(book)
	require.NoError(t, err)
	assert.Contains(t, string(cached), "books/cover_123.jpg")
}
