package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	bookModel "bookshop-backend/internal/domains/book/model"
	bookRepository "bookshop-backend/internal/domains/book/repository"
	bookService "bookshop-backend/internal/domains/book/service"
	"bookshop-backend/internal/domains/cart/model"
	"bookshop-backend/internal/domains/cart/repository"
	"bookshop-backend/internal/shared/utils"
	"bookshop-backend/pkg/logger"
)

const presignExpiry = time.Hour

type Service interface {
	Add(ctx context.Context, userID uuid.UUID, req model.AddItemRequest) (*model.AddItemResult, error)
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, req model.UpdateItemRequest) (*model.CartItem, error)
	Remove(ctx context.Context, userID, itemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
	View(ctx context.Context, userID uuid.UUID) (*model.CartView, error)
}

type cartService struct {
	repo    repository.Repository
	books   bookRepository.Repository
	storage bookService.ObjectStorage
}

func NewCartService(repo repository.Repository, books bookRepository.Repository, storage bookService.ObjectStorage) Service {
	return &cartService{
		repo:    repo,
		books:   books,
		storage: storage,
	}
}

// Add puts a book in the cart, or raises the quantity of the existing line.
// The resulting quantity is clamped to the book's stock; the clamp is
// reported to the caller, not treated as an error. A line whose quantity
// already reaches the stock is never written down, even when stock dropped
// below it since. A book with no stock at all cannot be added.
//
// The stock check and the write are not atomic, so concurrent adds can
// land a quantity above stock. Stock is re-verified at checkout.
func (s *cartService) Add(ctx context.Context, userID uuid.UUID, req model.AddItemRequest) (*model.AddItemResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return nil, bookModel.ErrBookNotFound
	}

	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !book.InStock() {
		return nil, model.ErrOutOfStock
	}

	add := req.Quantity
	if add == 0 {
		add = 1
	}

	existing, err := s.repo.FindByUserAndBook(ctx, userID, bookID)
	if err != nil && !errors.Is(err, model.ErrItemNotFound) {
		return nil, err
	}

	// A line already at or above stock (stock can drop after the line was
	// created) is left as it is; only the clamp warning is raised.
	if existing != nil && existing.Quantity >= book.Quantity {
		return &model.AddItemResult{Item: existing, Clamped: true}, nil
	}

	desired := add
	if existing != nil {
		desired += existing.Quantity
	}

	clamped := false
	if desired > book.Quantity {
		desired = book.Quantity
		clamped = true
	}

	var item *model.CartItem
	if existing != nil {
		item, err = s.repo.UpdateQuantity(ctx, existing.ID, desired)
	} else {
		item, err = s.repo.Insert(ctx, &model.CartItem{
			UserID:   userID,
			BookID:   bookID,
			Quantity: desired,
		})
	}
	if err != nil {
		return nil, err
	}

	return &model.AddItemResult{Item: item, Clamped: clamped}, nil
}

// UpdateQuantity sets a line to an exact quantity. Unlike Add, asking for
// more than the stock is rejected rather than clamped.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, req model.UpdateItemRequest) (*model.CartItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}

	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	book, err := s.books.FindByID(ctx, item.BookID)
	if err != nil {
		return nil, err
	}
	if req.Quantity > book.Quantity {
		return nil, model.ErrStockLimit
	}

	return s.repo.UpdateQuantity(ctx, item.ID, req.Quantity)
}

func (s *cartService) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, item.ID)
}

func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.repo.DeleteByUser(ctx, userID)
}

// View returns the cart with line totals and the grand total, computed in
// decimal arithmetic.
func (s *cartService) View(ctx context.Context, userID uuid.UUID) (*model.CartView, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &model.CartView{
		Items: items,
		Total: decimal.Zero,
	}
	for i := range view.Items {
		item := &view.Items[i]
		item.LineTotal = item.BookPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		item.ImageURL = s.resolveImageURL(ctx, item.ImageRef)
		view.Count += item.Quantity
		view.Total = view.Total.Add(item.LineTotal)
	}

	return view, nil
}

// ownedItem loads a line and verifies it belongs to userID. A line owned by
// somebody else is an authorization failure, distinct from not-found.
func (s *cartService) ownedItem(ctx context.Context, userID, itemID uuid.UUID) (*model.CartItem, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, model.ErrNotOwner
	}
	return item, nil
}

func (s *cartService) resolveImageURL(ctx context.Context, ref string) string {
	if ref == "" || utils.IsHTTPURL(ref) {
		return ref
	}
	url, err := s.storage.PresignedURL(ctx, ref, presignExpiry)
	if err != nil {
		logger.Warn("failed to presign cover image", err)
		return ""
	}
	return url
}
