package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the session identity inside a signed token.
type Claims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Manager signs and validates session tokens.
type Manager struct {
	secret         string
	sessionExpiry  time.Duration // plain login
	rememberExpiry time.Duration // login with "remember me"
}

// NewManager creates a Manager. Expiries are in hours.
func NewManager(secret string, sessionExpiryHours, rememberExpiryHours int) *Manager {
	return &Manager{
		secret:         secret,
		sessionExpiry:  time.Duration(sessionExpiryHours) * time.Hour,
		rememberExpiry: time.Duration(rememberExpiryHours) * time.Hour,
	}
}

// GenerateSessionToken issues a signed session token. The remember flag
// selects the long-lived expiry.
func (m *Manager) GenerateSessionToken(userID, email string, isAdmin, remember bool) (string, time.Time, error) {
	expiry := m.sessionExpiry
	if remember {
		expiry = m.rememberExpiry
	}

	expiresAt := time.Now().Add(expiry)
	claims := Claims{
		UserID:  userID,
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// ValidateToken validates and parses a session token.
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
