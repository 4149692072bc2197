package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Author is a structured author record. Books may reference an Author while
// also carrying a free-form display name; the two are allowed to diverge.
type Author struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Bio       *string   `json:"bio" db:"bio"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

var ErrAuthorNotFound = errors.New("author not found")

// HasBio checks if author has a biography.
func (a *Author) HasBio() bool {
	return a.Bio != nil && *a.Bio != ""
}
