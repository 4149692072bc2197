package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one line of a user's cart. A user holds at most one line per
// book; adding the same book again raises the quantity instead.
type CartItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	BookID    uuid.UUID `json:"book_id" db:"book_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CartItemDetail is a cart line joined with the book fields the cart page
// renders. LineTotal is price times quantity.
type CartItemDetail struct {
	CartItem
	BookTitle  string          `json:"book_title"`
	BookPrice  decimal.Decimal `json:"book_price"`
	BookStock  int             `json:"book_stock"`
	ImageRef   string          `json:"-"`
	ImageURL   string          `json:"image_url"`
	AuthorName string          `json:"author_name"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

// CartView is the whole cart with its grand total.
type CartView struct {
	Items []CartItemDetail `json:"items"`
	Count int              `json:"count"`
	Total decimal.Decimal  `json:"total"`
}
