package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Post is a minimal forum record, unrelated to commerce.
type Post struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PostWithAuthor carries the author display name for listings.
type PostWithAuthor struct {
	Post
	AuthorName string `json:"author_name" db:"author_name"`
}

var ErrPostNotFound = errors.New("post not found")

// CreatePostRequest - POST /posts
type CreatePostRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 140),
		),
		validation.Field(&r.Body,
			validation.Required.Error("body is required"),
			validation.Length(1, 10000),
		),
	)
}
