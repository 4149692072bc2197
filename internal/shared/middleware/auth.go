package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookshop-backend/internal/shared/response"
	"bookshop-backend/pkg/jwt"
)

// Context keys set by AuthMiddleware.
const (
	CtxUserID  = "userID"
	CtxEmail   = "email"
	CtxIsAdmin = "isAdmin"
)

// AuthMiddleware verifies the session token. The token is taken from the
// Authorization header (Bearer) or, for browser clients, from the session
// cookie. Missing or invalid sessions are a 401, distinct from the 403
// produced by AdminMiddleware.
func AuthMiddleware(manager *jwt.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		claims, err := manager.ValidateToken(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired session")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "invalid session subject")
			c.Abort()
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxIsAdmin, claims.IsAdmin)

		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie == "" {
		return ""
	}
	return cookie
}

// AdminMiddleware gates privileged routes. Requires AuthMiddleware to have
// run first; an authenticated non-admin gets 403, never 404.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get(CtxIsAdmin)
		if !exists {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		admin, ok := isAdmin.(bool)
		if !ok || !admin {
			response.Forbidden(c, "admin privileges required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// MustUserID returns the authenticated user id from the context. Only valid
// behind AuthMiddleware.
func MustUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(CtxUserID).(uuid.UUID)
}
