package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookForm carries the fields of the admin create/edit forms. Bound from
// multipart form data; the image file travels separately.
type BookForm struct {
	Title       string  `form:"title"`
	Price       float64 `form:"price"`
	Quantity    int     `form:"quantity"`
	ReleaseDate string  `form:"release_date"` // 2006-01-02
	Format      string  `form:"format"`
	Editorial   string  `form:"editorial"`
	Synopsis    string  `form:"synopsis"`
	AuthorID    string  `form:"author_id"` // optional uuid
	AuthorName  string  `form:"author_name"`

	GenreIDs []string `form:"genre_ids"` // replaces the genre set wholesale
}

func (f BookForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&f.Price,
			validation.Min(0.0).Error("price must not be negative"),
		),
		validation.Field(&f.Quantity,
			validation.Min(0).Error("quantity must not be negative"),
		),
		validation.Field(&f.AuthorName,
			validation.Required.Error("author name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&f.ReleaseDate,
			validation.Date("2006-01-02").Error("release date must be YYYY-MM-DD"),
		),
	)
}

// ToBook converts the validated form into an entity.
func (f BookForm) ToBook() (*Book, []uuid.UUID, error) {
	if err := f.Validate(); err != nil {
		return nil, nil, err
	}

	releaseDate := time.Now()
	if f.ReleaseDate != "" {
		parsed, err := time.Parse("2006-01-02", f.ReleaseDate)
		if err == nil {
			releaseDate = parsed
		}
	}

	var authorID *uuid.UUID
	if f.AuthorID != "" {
		id, err := uuid.Parse(f.AuthorID)
		if err != nil {
			return nil, nil, validation.Errors{"author_id": validation.NewError("invalid_uuid", "author id is not a valid uuid")}
		}
		authorID = &id
	}

	genreIDs := make([]uuid.UUID, 0, len(f.GenreIDs))
	for _, raw := range f.GenreIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil, validation.Errors{"genre_ids": validation.NewError("invalid_uuid", "genre id is not a valid uuid")}
		}
		genreIDs = append(genreIDs, id)
	}

	book := &Book{
		Title:       f.Title,
		Price:       decimal.NewFromFloat(f.Price),
		Quantity:    f.Quantity,
		ReleaseDate: releaseDate,
		Format:      f.Format,
		Editorial:   f.Editorial,
		Synopsis:    f.Synopsis,
		AuthorID:    authorID,
		AuthorName:  f.AuthorName,
	}

	return book, genreIDs, nil
}

// ImageUpload is an in-memory uploaded file.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ListQuery controls catalog ordering.
type ListQuery struct {
	Sort string // title, price, newest
}

// BulkImportResult reports the outcome of a spreadsheet import.
type BulkImportResult struct {
	Imported int               `json:"imported"`
	Failed   int               `json:"failed"`
	Errors   map[string]string `json:"errors,omitempty"` // row ref -> reason
}
