package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshop-backend/pkg/jwt"
)

const testCookie = "session"

func newTestRouter(manager *jwt.Manager, admin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handlers := []gin.HandlerFunc{AuthMiddleware(manager, testCookie)}
	if admin {
		handlers = append(handlers, AdminMiddleware())
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": MustUserID(c)})
	})

	r.GET("/protected", handlers...)
	return r
}

func TestAuthMiddlewareBearer(t *testing.T) {
	manager := jwt.NewManager("test-secret", 24, 720)
	token, _, err := manager.GenerateSessionToken(uuid.New().String(), "reader@example.com", false, false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	newTestRouter(manager, false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareCookie(t *testing.T) {
	manager := jwt.NewManager("test-secret", 24, 720)
	token, _, err := manager.GenerateSessionToken(uuid.New().String(), "reader@example.com", false, false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	w := httptest.NewRecorder()
	newTestRouter(manager, false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", 24, 720)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	newTestRouter(manager, false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", 24, 720)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	newTestRouter(manager, false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddlewareRejectsNonAdmin(t *testing.T) {
	manager := jwt.NewManager("test-secret", 24, 720)
	token, _, err := manager.GenerateSessionToken(uuid.New().String(), "reader@example.com", false, false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	newTestRouter(manager, true).ServeHTTP(w, req)

	// Authenticated but not privileged: 403, not 401 and not 404.
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminMiddlewareAllowsAdmin(t *testing.T) {
	manager := jwt.NewManager("test-secret", 24, 720)
	token, _, err := manager.GenerateSessionToken(uuid.New().String(), "admin@example.com", true, false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	newTestRouter(manager, true).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
