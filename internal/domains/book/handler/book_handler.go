package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookshop-backend/internal/domains/book/model"
	"bookshop-backend/internal/domains/book/service"
	genreModel "bookshop-backend/internal/domains/genre/model"
	"bookshop-backend/internal/shared/response"
	"bookshop-backend/pkg/logger"
)

const maxImportSize = 10 << 20 // xlsx upload cap

type BookHandler struct {
	service service.Service
}

func NewBookHandler(service service.Service) *BookHandler {
	return &BookHandler{service: service}
}

// List - GET /books
func (h *BookHandler) List(c *gin.Context) {
	q := model.ListQuery{Sort: c.Query("sort")}

	books, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		logger.Error("failed to list books", err)
		response.InternalServerError(c, "failed to list books")
		return
	}

	response.Success(c, http.StatusOK, books)
}

// GetByID - GET /books/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	book, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			response.NotFound(c, "book not found")
			return
		}
		logger.Error("failed to get book", err)
		response.InternalServerError(c, "failed to get book")
		return
	}

	response.Success(c, http.StatusOK, book)
}

// Create - POST /admin/books
func (h *BookHandler) Create(c *gin.Context) {
	var form model.BookForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, "invalid form data")
		return
	}

	image, err := readImageFile(c)
	if err != nil {
		response.BadRequest(c, "cannot read image upload")
		return
	}

	book, err := h.service.Create(c.Request.Context(), form, image)
	if err != nil {
		h.writeError(c, err, "failed to create book")
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// Update - PUT /admin/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	var form model.BookForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, "invalid form data")
		return
	}

	image, err := readImageFile(c)
	if err != nil {
		response.BadRequest(c, "cannot read image upload")
		return
	}

	book, err := h.service.Update(c.Request.Context(), id, form, image)
	if err != nil {
		h.writeError(c, err, "failed to update book")
		return
	}

	response.Success(c, http.StatusOK, book)
}

// Delete - DELETE /admin/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			response.NotFound(c, "book not found")
			return
		}
		logger.Error("failed to delete book", err)
		response.InternalServerError(c, "failed to delete book")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// BulkImport - POST /admin/books/import
func (h *BookHandler) BulkImport(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "spreadsheet file is required")
		return
	}
	if fileHeader.Size > maxImportSize {
		response.BadRequest(c, "spreadsheet too large")
		return
	}

	data, err := readAll(fileHeader)
	if err != nil {
		response.BadRequest(c, "cannot read spreadsheet upload")
		return
	}

	result, err := h.service.BulkImport(c.Request.Context(), data)
	if err != nil {
		response.BadRequest(c, "cannot parse spreadsheet")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *BookHandler) writeError(c *gin.Context, err error, logMsg string) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid book data", vErrs)
	case errors.Is(err, model.ErrImageRequired):
		response.BadRequest(c, "cover image is required")
	case errors.Is(err, model.ErrInvalidImage):
		response.BadRequest(c, err.Error())
	case errors.Is(err, genreModel.ErrGenreNotFound):
		response.BadRequest(c, "one or more genres do not exist")
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, "book not found")
	default:
		logger.Error(logMsg, err)
		response.InternalServerError(c, logMsg)
	}
}

// readImageFile pulls the optional "image" file part into memory. A missing
// part is not an error here; the service decides whether it is required.
func readImageFile(c *gin.Context) (*model.ImageUpload, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}

	data, err := readAll(fileHeader)
	if err != nil {
		return nil, err
	}

	return &model.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
