package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshop-backend/internal/config"
	"bookshop-backend/internal/domains/user/model"
	"bookshop-backend/internal/domains/user/service"
	"bookshop-backend/internal/shared/middleware"
	"bookshop-backend/internal/shared/response"
	"bookshop-backend/pkg/logger"
)

const oauthStateCookie = "oauth_state"

type UserHandler struct {
	service service.Service
	session config.SessionConfig
}

func NewUserHandler(service service.Service, session config.SessionConfig) *UserHandler {
	return &UserHandler{
		service: service,
		session: session,
	}
}

// Register - POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		var vErrs validation.Errors
		switch {
		case errors.As(err, &vErrs):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid registration", vErrs)
		case errors.Is(err, model.ErrEmailAlreadyExists):
			response.Conflict(c, "this email is already registered")
		default:
			logger.Error("registration failed", err)
			response.InternalServerError(c, "registration failed")
		}
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// Login - POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		var vErrs validation.Errors
		switch {
		case errors.As(err, &vErrs):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid login", vErrs)
		case errors.Is(err, model.ErrInvalidCredentials):
			response.Unauthorized(c, "please verify your email and password")
		default:
			logger.Error("login failed", err)
			response.InternalServerError(c, "login failed")
		}
		return
	}

	h.setSessionCookie(c, resp.Token, resp.ExpiresAt)
	response.Success(c, http.StatusOK, resp)
}

// Logout - POST /auth/logout
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie(h.session.CookieName, "", -1, "/", "", h.session.CookieSecure, true)
	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

// GoogleLogin - GET /auth/google
// Issues the provider redirect with a fresh state nonce.
func (h *UserHandler) GoogleLogin(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		logger.Error("failed to generate oauth state", err)
		response.InternalServerError(c, "failed to start login")
		return
	}

	authURL, err := h.service.GoogleAuthURL(c.Request.Context(), state)
	if err != nil {
		logger.Error("failed to build google auth url", err)
		response.ErrorResponse(c, http.StatusBadGateway, "DEPENDENCY_ERROR", "identity provider unavailable")
		return
	}

	c.SetCookie(oauthStateCookie, state, int((10 * time.Minute).Seconds()), "/", "", h.session.CookieSecure, true)
	c.Redirect(http.StatusFound, authURL)
}

// GoogleCallback - GET /auth/google/callback
func (h *UserHandler) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		response.BadRequest(c, "invalid oauth state")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.session.CookieSecure, true)

	code := c.Query("code")
	if code == "" {
		response.BadRequest(c, "missing authorization code")
		return
	}

	resp, err := h.service.LoginWithGoogle(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, model.ErrEmailNotVerified) {
			response.Unauthorized(c, "the provider email could not be verified")
			return
		}
		logger.Error("google login failed", err)
		response.ErrorResponse(c, http.StatusBadGateway, "DEPENDENCY_ERROR", "google login failed")
		return
	}

	h.setSessionCookie(c, resp.Token, resp.ExpiresAt)
	response.Success(c, http.StatusOK, resp)
}

// GetProfile - GET /profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	dto, err := h.service.GetProfile(c.Request.Context(), middleware.MustUserID(c))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		logger.Error("failed to load profile", err)
		response.InternalServerError(c, "failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// ListUsers - GET /admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		logger.Error("failed to list users", err)
		response.InternalServerError(c, "failed to list users")
		return
	}

	response.Success(c, http.StatusOK, users)
}

func (h *UserHandler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(h.session.CookieName, token, maxAge, "/", "", h.session.CookieSecure, true)
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
