package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret", 24, 720)

	token, expiresAt, err := m.GenerateSessionToken("user-1", "reader@example.com", false, false)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.False(t, claims.IsAdmin)
}

func TestRememberExtendsExpiry(t *testing.T) {
	m := NewManager("test-secret", 24, 720)

	_, plain, err := m.GenerateSessionToken("user-1", "reader@example.com", false, false)
	require.NoError(t, err)

	_, remembered, err := m.GenerateSessionToken("user-1", "reader@example.com", false, true)
	require.NoError(t, err)

	assert.True(t, remembered.After(plain.Add(29*24*time.Hour)))
}

func TestAdminClaimRoundTrips(t *testing.T) {
	m := NewManager("test-secret", 24, 720)

	token, _, err := m.GenerateSessionToken("admin-1", "admin@example.com", true, false)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := NewManager("secret-a", 24, 720).GenerateSessionToken("user-1", "reader@example.com", false, false)
	require.NoError(t, err)

	_, err = NewManager("secret-b", 24, 720).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", 24, 720)

	_, err := m.ValidateToken("not-a-token")
	assert.Error(t, err)
}
