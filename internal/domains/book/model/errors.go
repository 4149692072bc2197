package model

import "errors"

var (
	ErrBookNotFound = errors.New("book not found")

	// ErrImageRequired is returned when a book is created without a cover
	// image. The image is mandatory on create, optional on edit.
	ErrImageRequired = errors.New("cover image is required")

	ErrInvalidImage = errors.New("invalid cover image")
)
