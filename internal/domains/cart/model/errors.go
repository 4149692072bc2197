package model

import "errors"

var (
	// ErrOutOfStock is returned when a book with zero stock is added.
	ErrOutOfStock = errors.New("book is out of stock")

	// ErrStockLimit is returned when an explicit quantity update asks for
	// more units than are in stock. Adds clamp instead of failing.
	ErrStockLimit = errors.New("requested quantity exceeds available stock")

	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	ErrItemNotFound = errors.New("cart item not found")

	// ErrNotOwner is returned when a user touches a cart line that belongs
	// to somebody else. Surfaces as an authorization failure, not a 404.
	ErrNotOwner = errors.New("cart item belongs to another user")
)
