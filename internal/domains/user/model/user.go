package model

import (
	"time"

	"github.com/google/uuid"
)

// CredentialKind distinguishes how an account authenticates.
type CredentialKind string

const (
	// CredentialLocal means a bcrypt password hash is stored.
	CredentialLocal CredentialKind = "local"
	// CredentialFederated means the account was created through an OAuth
	// provider and has no local password.
	CredentialFederated CredentialKind = "federated"
)

// Credential is a tagged variant: either a local password hash or the
// marker for a federated-only account. Replaces the magic sentinel string
// the password-hash column would otherwise carry.
type Credential struct {
	Kind CredentialKind
	Hash string // bcrypt hash, only set for CredentialLocal
}

// LocalPassword wraps a bcrypt hash.
func LocalPassword(hash string) Credential {
	return Credential{Kind: CredentialLocal, Hash: hash}
}

// FederatedOnly marks an account with no local password.
func FederatedOnly() Credential {
	return Credential{Kind: CredentialFederated}
}

func (c Credential) IsFederatedOnly() bool {
	return c.Kind == CredentialFederated
}

// User is an account. Deleting a user cascades to their cart items.
type User struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Credential      Credential `json:"-"`
	IsAdmin         bool       `json:"is_admin"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// UserDTO is the safe external representation.
type UserDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	IsAdmin       bool      `json:"is_admin"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		IsAdmin:       u.IsAdmin,
		EmailVerified: u.EmailVerifiedAt != nil,
		CreatedAt:     u.CreatedAt,
	}
}
