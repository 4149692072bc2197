package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookshop-backend/internal/domains/author/model"
	"bookshop-backend/internal/domains/author/service"
	"bookshop-backend/internal/shared/response"
	"bookshop-backend/pkg/logger"
)

type AuthorHandler struct {
	service service.Service
}

func NewAuthorHandler(service service.Service) *AuthorHandler {
	return &AuthorHandler{service: service}
}

// List - GET /authors
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error("failed to list authors", err)
		response.InternalServerError(c, "failed to list authors")
		return
	}

	response.Success(c, http.StatusOK, authors)
}

// GetByID - GET /authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	author, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			response.NotFound(c, "author not found")
			return
		}
		logger.Error("failed to get author", err)
		response.InternalServerError(c, "failed to get author")
		return
	}

	response.Success(c, http.StatusOK, author)
}
