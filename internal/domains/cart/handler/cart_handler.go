package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	bookModel "bookshop-backend/internal/domains/book/model"
	"bookshop-backend/internal/domains/cart/model"
	"bookshop-backend/internal/domains/cart/service"
	"bookshop-backend/internal/shared/middleware"
	"bookshop-backend/internal/shared/response"
	"bookshop-backend/pkg/logger"
)

type CartHandler struct {
	service service.Service
}

func NewCartHandler(service service.Service) *CartHandler {
	return &CartHandler{service: service}
}

// View - GET /cart
func (h *CartHandler) View(c *gin.Context) {
	userID := middleware.MustUserID(c)

	view, err := h.service.View(c.Request.Context(), userID)
	if err != nil {
		logger.Error("failed to load cart", err)
		response.InternalServerError(c, "failed to load cart")
		return
	}

	response.Success(c, http.StatusOK, view)
}

// Add - POST /cart/items
func (h *CartHandler) Add(c *gin.Context) {
	userID := middleware.MustUserID(c)

	var req model.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.service.Add(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err, "failed to add cart item")
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// UpdateQuantity - PUT /cart/items/:id
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID := middleware.MustUserID(c)

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid cart item id")
		return
	}

	var req model.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	item, err := h.service.UpdateQuantity(c.Request.Context(), userID, itemID, req)
	if err != nil {
		h.writeError(c, err, "failed to update cart item")
		return
	}

	response.Success(c, http.StatusOK, item)
}

// Remove - DELETE /cart/items/:id
func (h *CartHandler) Remove(c *gin.Context) {
	userID := middleware.MustUserID(c)

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid cart item id")
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID, itemID); err != nil {
		h.writeError(c, err, "failed to remove cart item")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": itemID})
}

// Clear - DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID := middleware.MustUserID(c)

	if err := h.service.Clear(c.Request.Context(), userID); err != nil {
		logger.Error("failed to clear cart", err)
		response.InternalServerError(c, "failed to clear cart")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cleared": true})
}

func (h *CartHandler) writeError(c *gin.Context, err error, logMsg string) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid cart request", vErrs)
	case errors.Is(err, model.ErrNotOwner):
		response.Forbidden(c, "cart item belongs to another user")
	case errors.Is(err, model.ErrItemNotFound):
		response.NotFound(c, "cart item not found")
	case errors.Is(err, bookModel.ErrBookNotFound):
		response.NotFound(c, "book not found")
	case errors.Is(err, model.ErrOutOfStock):
		response.UnprocessableEntity(c, "book is out of stock")
	case errors.Is(err, model.ErrStockLimit):
		response.UnprocessableEntity(c, "requested quantity exceeds available stock")
	case errors.Is(err, model.ErrInvalidQuantity):
		response.BadRequest(c, "quantity must be at least 1")
	default:
		logger.Error(logMsg, err)
		response.InternalServerError(c, logMsg)
	}
}
