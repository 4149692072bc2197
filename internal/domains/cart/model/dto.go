package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// AddItemRequest adds a book to the cart. Quantity defaults to 1.
type AddItemRequest struct {
	BookID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID,
			validation.Required.Error("book id is required"),
			is.UUIDv4.Error("book id is not a valid uuid"),
		),
		validation.Field(&r.Quantity,
			validation.Min(0).Error("quantity must not be negative"),
		),
	)
}

// UpdateItemRequest sets a cart line to an exact quantity.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (r UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity,
			validation.Required.Error("quantity is required"),
			validation.Min(1).Error("quantity must be at least 1"),
		),
	)
}

// AddItemResult reports the line after an add, with a flag telling the
// client the quantity was clamped to the available stock.
type AddItemResult struct {
	Item    *CartItem `json:"item"`
	Clamped bool      `json:"clamped"`
}
