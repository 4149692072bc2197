package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	genreModel "bookshop-backend/internal/domains/genre/model"
)

// Book is a catalog entry. ImageRef holds either a bare storage key
// (resolved to a presigned URL at read time) or a full public URL.
//
// AuthorName is the denormalized display name and is required even when
// AuthorID links a structured Author; the two are allowed to diverge.
type Book struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Quantity    int             `json:"quantity" db:"quantity"`
	ReleaseDate time.Time       `json:"release_date" db:"release_date"`
	Format      string          `json:"format" db:"format"`
	Editorial   string          `json:"editorial" db:"editorial"`
	Synopsis    string          `json:"synopsis" db:"synopsis"`
	ImageRef    string          `json:"-" db:"image"`
	AuthorID    *uuid.UUID      `json:"author_id" db:"author_id"`
	AuthorName  string          `json:"author_name" db:"author_name"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`

	Genres []genreModel.Genre `json:"genres"`
}

// InStock reports whether at least one unit is available.
func (b *Book) InStock() bool {
	return b.Quantity > 0
}

// BookResponse is a Book with the image reference resolved to a URL the
// client can actually fetch.
type BookResponse struct {
	Book
	ImageURL string `json:"image_url"`
}
