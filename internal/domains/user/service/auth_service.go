package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"bookshop-backend/internal/domains/user/model"
	"bookshop-backend/internal/domains/user/repository"
	"bookshop-backend/internal/infrastructure/oauth"
	"bookshop-backend/pkg/jwt"
)

const bcryptCost = 12

// normalizeEmail keeps the unique index on users.email meaningful across
// differently-cased logins for the same address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Landing surfaces returned to the client after login.
const (
	landingDefault = "/"
	landingAdmin   = "/admin"
)

// Service exposes authentication and account operations.
type Service interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserDTO, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	GoogleAuthURL(ctx context.Context, state string) (string, error)
	LoginWithGoogle(ctx context.Context, code string) (*model.LoginResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserDTO, error)
	ListUsers(ctx context.Context) ([]model.UserDTO, error)
}

type authService struct {
	repo     repository.Repository
	sessions *jwt.Manager
	provider oauth.Provider
}

func NewAuthService(repo repository.Repository, sessions *jwt.Manager, provider oauth.Provider) Service {
	return &authService{
		repo:     repo,
		sessions: sessions,
		provider: provider,
	}
}

// Register creates a local account. A duplicate email is a conflict, never
// a second row.
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, model.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Insert(ctx, &model.User{
		Name:       req.Name,
		Email:      email,
		Credential: model.LocalPassword(string(hash)),
	})
	if err != nil {
		// The lookup above races with concurrent registrations; the unique
		// index is the real arbiter.
		if errors.Is(err, model.ErrEmailAlreadyExists) {
			return nil, model.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	dto := created.ToDTO()
	return &dto, nil
}

// Login verifies a local password and establishes a session. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	// Federated-only accounts have no password to check.
	if u.Credential.IsFederatedOnly() {
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Credential.Hash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.buildSession(u, req.Remember)
}

// GoogleAuthURL starts the OAuth flow.
func (s *authService) GoogleAuthURL(ctx context.Context, state string) (string, error) {
	return s.provider.AuthURL(ctx, state)
}

// LoginWithGoogle completes the OAuth flow. An unverified provider email
// fails the flow without creating an account. A matching local account is
// reused as-is: OAuth identity and local account merge silently by email.
func (s *authService) LoginWithGoogle(ctx context.Context, code string) (*model.LoginResponse, error) {
	profile, err := s.provider.FetchProfile(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("fetch oauth profile: %w", err)
	}

	if !profile.EmailVerified {
		return nil, model.ErrEmailNotVerified
	}

	email := normalizeEmail(profile.Email)

	u, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		// Existing account, merged by email match.
	case errors.Is(err, model.ErrUserNotFound):
		now := time.Now()
		u, err = s.repo.Insert(ctx, &model.User{
			Name:            profile.Name,
			Email:           email,
			Credential:      model.FederatedOnly(),
			EmailVerifiedAt: &now,
		})
		if err != nil {
			return nil, fmt.Errorf("create federated user: %w", err)
		}
		log.Info().Str("email", profile.Email).Msg("federated account created")
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}

	return s.buildSession(u, false)
}

func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]model.UserDTO, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]model.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, users[i].ToDTO())
	}
	return dtos, nil
}

func (s *authService) buildSession(u *model.User, remember bool) (*model.LoginResponse, error) {
	token, expiresAt, err := s.sessions.GenerateSessionToken(u.ID.String(), u.Email, u.IsAdmin, remember)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	redirect := landingDefault
	if u.IsAdmin {
		redirect = landingAdmin
	}

	return &model.LoginResponse{
		Token:      token,
		ExpiresAt:  expiresAt,
		RedirectTo: redirect,
		User:       u.ToDTO(),
	}, nil
}
