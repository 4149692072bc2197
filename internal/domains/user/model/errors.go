package model

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")

	// ErrEmailNotVerified is returned when the OAuth provider reports the
	// account email as unverified; the flow fails without creating a user.
	ErrEmailNotVerified = errors.New("provider email not verified")
)
