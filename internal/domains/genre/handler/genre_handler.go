package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshop-backend/internal/domains/genre/model"
	"bookshop-backend/internal/domains/genre/service"
	"bookshop-backend/internal/shared/response"
	"bookshop-backend/pkg/logger"
)

type GenreHandler struct {
	service service.Service
}

func NewGenreHandler(service service.Service) *GenreHandler {
	return &GenreHandler{service: service}
}

// List - GET /genres
func (h *GenreHandler) List(c *gin.Context) {
	genres, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error("failed to list genres", err)
		response.InternalServerError(c, "failed to list genres")
		return
	}

	response.Success(c, http.StatusOK, genres)
}

// Create - POST /admin/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req model.CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	genre, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var vErrs validation.Errors
		switch {
		case errors.As(err, &vErrs):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid genre", vErrs)
		case errors.Is(err, model.ErrDuplicateGenre):
			response.Conflict(c, "genre name already exists")
		default:
			logger.Error("failed to create genre", err)
			response.InternalServerError(c, "failed to create genre")
		}
		return
	}

	response.Success(c, http.StatusCreated, genre)
}
