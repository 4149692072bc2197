package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookshop-backend/internal/domains/user/model"
	"bookshop-backend/internal/infrastructure/oauth"
	"bookshop-backend/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Insert(ctx context.Context, u *model.User) (*model.User, error) {
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, model.ErrEmailAlreadyExists
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.byEmail[u.Email] = u
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.byEmail))
	for _, u := range f.byEmail {
		out = append(out, *u)
	}
	return out, nil
}

type fakeProvider struct {
	profile *oauth.Profile
	err     error
}

func (f *fakeProvider) AuthURL(ctx context.Context, state string) (string, error) {
	return "https://accounts.example.com/auth?state=" + state, nil
}

func (f *fakeProvider) FetchProfile(ctx context.Context, code string) (*oauth.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func newAuthFixture(provider oauth.Provider) (Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	sessions := jwt.NewManager("test-secret", 24, 720)
	return NewAuthService(repo, sessions, provider), repo
}

func TestRegister(t *testing.T) {
	svc, repo := newAuthFixture(&fakeProvider{})

	dto, err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "Reader",
		Email:    "Reader@Example.com",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", dto.Email)

	// The stored hash is bcrypt, never the plain password.
	stored := repo.byEmail["reader@example.com"]
	require.NotNil(t, stored)
	assert.False(t, stored.Credential.IsFederatedOnly())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Credential.Hash), []byte("sup3rsecret")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(&fakeProvider{})

	req := model.RegisterRequest{Name: "Reader", Email: "reader@example.com", Password: "sup3rsecret"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, model.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture(&fakeProvider{})

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "Reader", Email: "reader@example.com", Password: "sup3rsecret",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Email: "reader@example.com", Password: "sup3rsecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "/", resp.RedirectTo)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(&fakeProvider{})

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "Reader", Email: "reader@example.com", Password: "sup3rsecret",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), model.LoginRequest{
		Email: "reader@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(&fakeProvider{})

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	// Indistinguishable from a wrong password.
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginFederatedOnlyAccount(t *testing.T) {
	svc, repo := newAuthFixture(&fakeProvider{})

	_, err := repo.Insert(context.Background(), &model.User{
		Name:       "Reader",
		Email:      "reader@example.com",
		Credential: model.FederatedOnly(),
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), model.LoginRequest{
		Email: "reader@example.com", Password: "anything",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAdminLoginRedirect(t *testing.T) {
	svc, repo := newAuthFixture(&fakeProvider{})

	hash, err := bcrypt.GenerateFromPassword([]byte("sup3rsecret"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = repo.Insert(context.Background(), &model.User{
		Name:       "Admin",
		Email:      "admin@example.com",
		Credential: model.LocalPassword(string(hash)),
		IsAdmin:    true,
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Email: "admin@example.com", Password: "sup3rsecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "/admin", resp.RedirectTo)
}

func TestLoginWithGoogleCreatesFederatedAccount(t *testing.T) {
	provider := &fakeProvider{profile: &oauth.Profile{
		Subject:       "google-123",
		Email:         "New.Reader@example.com",
		EmailVerified: true,
		Name:          "New Reader",
	}}
	svc, repo := newAuthFixture(provider)

	resp, err := svc.LoginWithGoogle(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	created := repo.byEmail["new.reader@example.com"]
	require.NotNil(t, created)
	assert.True(t, created.Credential.IsFederatedOnly())
	assert.NotNil(t, created.EmailVerifiedAt)
}

func TestLoginWithGoogleMergesByEmail(t *testing.T) {
	provider := &fakeProvider{profile: &oauth.Profile{
		Subject:       "google-123",
		Email:         "reader@example.com",
		EmailVerified: true,
		Name:          "Reader",
	}}
	svc, repo := newAuthFixture(provider)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "Reader", Email: "reader@example.com", Password: "sup3rsecret",
	})
	require.NoError(t, err)

	resp, err := svc.LoginWithGoogle(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	// The existing local account is reused, not duplicated.
	assert.Len(t, repo.byEmail, 1)
	assert.False(t, repo.byEmail["reader@example.com"].Credential.IsFederatedOnly())
}

func TestLoginWithGoogleUnverifiedEmail(t *testing.T) {
	provider := &fakeProvider{profile: &oauth.Profile{
		Subject:       "google-123",
		Email:         "reader@example.com",
		EmailVerified: false,
		Name:          "Reader",
	}}
	svc, repo := newAuthFixture(provider)

	_, err := svc.LoginWithGoogle(context.Background(), "auth-code")
	assert.ErrorIs(t, err, model.ErrEmailNotVerified)

	// No account is created for an unverified identity.
	assert.Empty(t, repo.byEmail)
}
