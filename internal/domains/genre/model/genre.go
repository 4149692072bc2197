package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Genre is a browsing category. Books relate to genres many-to-many.
type Genre struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

var (
	ErrGenreNotFound  = errors.New("genre not found")
	ErrDuplicateGenre = errors.New("genre name already exists")
)

// CreateGenreRequest - POST /admin/genres
type CreateGenreRequest struct {
	Name string `json:"name" binding:"required"`
}

func (r CreateGenreRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(2, 50),
		),
	)
}
