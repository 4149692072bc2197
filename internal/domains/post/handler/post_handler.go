package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookshop-backend/internal/domains/post/model"
	"bookshop-backend/internal/domains/post/service"
	"bookshop-backend/internal/shared/middleware"
	"bookshop-backend/internal/shared/response"
	"bookshop-backend/pkg/logger"
)

type PostHandler struct {
	service service.Service
}

func NewPostHandler(service service.Service) *PostHandler {
	return &PostHandler{service: service}
}

// List - GET /posts
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error("failed to list posts", err)
		response.InternalServerError(c, "failed to list posts")
		return
	}

	response.Success(c, http.StatusOK, posts)
}

// GetByID - GET /posts/:id
func (h *PostHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	post, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		logger.Error("failed to get post", err)
		response.InternalServerError(c, "failed to get post")
		return
	}

	response.Success(c, http.StatusOK, post)
}

// Create - POST /posts (authenticated)
func (h *PostHandler) Create(c *gin.Context) {
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	post, err := h.service.Create(c.Request.Context(), middleware.MustUserID(c), req)
	if err != nil {
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid post", vErrs)
			return
		}
		logger.Error("failed to create post", err)
		response.InternalServerError(c, "failed to create post")
		return
	}

	response.Success(c, http.StatusCreated, post)
}
