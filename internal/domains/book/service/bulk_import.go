package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"bookshop-backend/internal/domains/book/model"
)

// Spreadsheet column order for bulk imports. Row 1 is the header.
const (
	colTitle = iota
	colAuthorName
	colPrice
	colQuantity
	colReleaseDate
	colFormat
	colEditorial
	colSynopsis
)

// BulkImport loads books from the first sheet of an xlsx file. Rows are
// imported independently: a bad row is reported and skipped, the rest go
// through. Imported books start without a cover image.
func (s *bookService) BulkImport(ctx context.Context, data []byte) (*model.BulkImportResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %s: %w", sheets[0], err)
	}

	result := &model.BulkImportResult{Errors: make(map[string]string)}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rowRef := strconv.Itoa(i + 1)

		form, err := rowToForm(row)
		if err != nil {
			result.Failed++
			result.Errors[rowRef] = err.Error()
			continue
		}

		book, _, err := form.ToBook()
		if err != nil {
			result.Failed++
			result.Errors[rowRef] = err.Error()
			continue
		}

		if _, err := s.repo.Insert(ctx, book, []uuid.UUID{}); err != nil {
			result.Failed++
			result.Errors[rowRef] = err.Error()
			continue
		}
		result.Imported++
	}

	if len(result.Errors) == 0 {
		result.Errors = nil
	}
	return result, nil
}

func rowToForm(row []string) (model.BookForm, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	form := model.BookForm{
		Title:       cell(colTitle),
		AuthorName:  cell(colAuthorName),
		ReleaseDate: cell(colReleaseDate),
		Format:      cell(colFormat),
		Editorial:   cell(colEditorial),
		Synopsis:    cell(colSynopsis),
	}

	if raw := cell(colPrice); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return form, fmt.Errorf("price %q is not a number", raw)
		}
		form.Price = price
	}

	if raw := cell(colQuantity); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return form, fmt.Errorf("quantity %q is not an integer", raw)
		}
		form.Quantity = qty
	}

	return form, nil
}
