package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"bookshop-backend/internal/config"
)

// Profile is the identity reported by the provider after a successful
// authorization-code exchange.
type Profile struct {
	Subject       string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Provider abstracts the identity provider so services can be tested
// without network calls.
type Provider interface {
	// AuthURL builds the authorization redirect for the login flow.
	AuthURL(ctx context.Context, state string) (string, error)

	// FetchProfile exchanges the authorization code and fetches the
	// verified profile.
	FetchProfile(ctx context.Context, code string) (*Profile, error)
}

// discoveryDocument is the subset of the OpenID discovery document we use.
type discoveryDocument struct {
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	UserinfoEndpoint      string `json:"userinfo_endpoint"`
}

// GoogleProvider implements Provider against Google's OpenID endpoints.
// Endpoints are resolved from the discovery document and cached.
type GoogleProvider struct {
	cfg        config.GoogleOAuthConfig
	httpClient *http.Client

	mu  sync.Mutex
	doc *discoveryDocument
}

func NewGoogleProvider(cfg config.GoogleOAuthConfig) *GoogleProvider {
	return &GoogleProvider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *GoogleProvider) discover(ctx context.Context) (*discoveryDocument, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.doc != nil {
		return g.doc, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.DiscoveryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build discovery request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch discovery document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discovery document returned status %d", resp.StatusCode)
	}

	var doc discoveryDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode discovery document: %w", err)
	}

	g.doc = &doc
	return g.doc, nil
}

func (g *GoogleProvider) oauthConfig(ctx context.Context) (*oauth2.Config, *discoveryDocument, error) {
	doc, err := g.discover(ctx)
	if err != nil {
		return nil, nil, err
	}

	cfg := &oauth2.Config{
		ClientID:     g.cfg.ClientID,
		ClientSecret: g.cfg.ClientSecret,
		RedirectURL:  g.cfg.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  doc.AuthorizationEndpoint,
			TokenURL: doc.TokenEndpoint,
		},
	}

	return cfg, doc, nil
}

// AuthURL builds the Google authorization URL for the given state.
func (g *GoogleProvider) AuthURL(ctx context.Context, state string) (string, error) {
	cfg, _, err := g.oauthConfig(ctx)
	if err != nil {
		return "", err
	}

	return cfg.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account")), nil
}

// FetchProfile exchanges the code at the token endpoint and fetches the
// user profile with the resulting access token.
func (g *GoogleProvider) FetchProfile(ctx context.Context, code string) (*Profile, error) {
	cfg, doc, err := g.oauthConfig(ctx)
	if err != nil {
		return nil, err
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	client := cfg.Client(ctx, token)
	resp, err := client.Get(doc.UserinfoEndpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}

	return &profile, nil
}
