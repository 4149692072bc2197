package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookshop-backend/internal/domains/book/model"
	"bookshop-backend/internal/domains/book/repository"
	genreService "bookshop-backend/internal/domains/genre/service"
	"bookshop-backend/internal/infrastructure/storage"
	"bookshop-backend/internal/shared/utils"
	"bookshop-backend/pkg/logger"
)

const presignExpiry = time.Hour

// ObjectStorage is the slice of the storage backend the book service needs.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	KeyFromRef(ref string) (string, bool)
}

// TaskEnqueuer hands image housekeeping off to the background worker.
type TaskEnqueuer interface {
	EnqueueImageDelete(ctx context.Context, key string) error
	EnqueueImageProcess(ctx context.Context, bookID, key string) error
}

type Service interface {
	List(ctx context.Context, q model.ListQuery) ([]model.BookResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*model.BookResponse, error)
	Create(ctx context.Context, form model.BookForm, image *model.ImageUpload) (*model.BookResponse, error)
	Update(ctx context.Context, id uuid.UUID, form model.BookForm, image *model.ImageUpload) (*model.BookResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BulkImport(ctx context.Context, data []byte) (*model.BulkImportResult, error)
}

type bookService struct {
	repo         repository.Repository
	genres       genreService.Service
	storage      ObjectStorage
	queue        TaskEnqueuer
	images       *storage.ImageProcessor
	uploadFolder string
}

func NewBookService(
	repo repository.Repository,
	genres genreService.Service,
	store ObjectStorage,
	queue TaskEnqueuer,
	images *storage.ImageProcessor,
	uploadFolder string,
) Service {
	return &bookService{
		repo:         repo,
		genres:       genres,
		storage:      store,
		queue:        queue,
		images:       images,
		uploadFolder: uploadFolder,
	}
}

func (s *bookService) List(ctx context.Context, q model.ListQuery) ([]model.BookResponse, error) {
	books, err := s.repo.ListAll(ctx, q)
	if err != nil {
		return nil, err
	}

	out := make([]model.BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, model.BookResponse{Book: b, ImageURL: s.resolveImageURL(ctx, b.ImageRef)})
	}
	return out, nil
}

func (s *bookService) Get(ctx context.Context, id uuid.UUID) (*model.BookResponse, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.BookResponse{Book: *book, ImageURL: s.resolveImageURL(ctx, book.ImageRef)}, nil
}

// Create stores the cover image first, then the book row. A row insert
// failure triggers a best-effort delete of the object so storage does not
// accumulate covers with no book.
func (s *bookService) Create(ctx context.Context, form model.BookForm, image *model.ImageUpload) (*model.BookResponse, error) {
	book, genreIDs, err := form.ToBook()
	if err != nil {
		return nil, err
	}

	if image == nil || len(image.Data) == 0 {
		return nil, model.ErrImageRequired
	}
	if _, err := s.images.ValidateImage(image.Data); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidImage, err)
	}

	genres, err := s.genres.Resolve(ctx, genreIDs)
	if err != nil {
		return nil, err
	}

	key := utils.MakeObjectKey(s.uploadFolder, image.Filename)
	ref, err := s.storage.Upload(ctx, key, image.Data, image.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload cover image: %w", err)
	}
	book.ImageRef = ref

	created, err := s.repo.Insert(ctx, book, genreIDs)
	if err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			logger.Warn("failed to clean up orphaned cover image", delErr)
		}
		return nil, err
	}
	created.Genres = genres

	s.enqueueThumbnail(ctx, created.ID, key)

	return &model.BookResponse{Book: *created, ImageURL: s.resolveImageURL(ctx, created.ImageRef)}, nil
}

// Update overwrites the book and replaces its genre set wholesale. When a
// new cover arrives the old object is queued for deletion only after the
// row update succeeds, so a failed update never loses the current cover.
func (s *bookService) Update(ctx context.Context, id uuid.UUID, form model.BookForm, image *model.ImageUpload) (*model.BookResponse, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	book, genreIDs, err := form.ToBook()
	if err != nil {
		return nil, err
	}
	book.ID = id
	book.ImageRef = existing.ImageRef

	genres, err := s.genres.Resolve(ctx, genreIDs)
	if err != nil {
		return nil, err
	}

	var newKey string
	if image != nil && len(image.Data) > 0 {
		if _, err := s.images.ValidateImage(image.Data); err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrInvalidImage, err)
		}
		newKey = utils.MakeObjectKey(s.uploadFolder, image.Filename)
		ref, err := s.storage.Upload(ctx, newKey, image.Data, image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("upload cover image: %w", err)
		}
		book.ImageRef = ref
	}

	updated, err := s.repo.Update(ctx, book, genreIDs)
	if err != nil {
		if newKey != "" {
			if delErr := s.storage.Delete(ctx, newKey); delErr != nil {
				logger.Warn("failed to clean up orphaned cover image", delErr)
			}
		}
		return nil, err
	}
	updated.Genres = genres

	if newKey != "" {
		s.enqueueImageDelete(ctx, existing.ImageRef)
		s.enqueueThumbnail(ctx, updated.ID, newKey)
	}

	return &model.BookResponse{Book: *updated, ImageURL: s.resolveImageURL(ctx, updated.ImageRef)}, nil
}

// Delete removes the stored cover (best-effort, via the worker) and then
// the book row. Cart items referencing the book disappear with it.
func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	s.enqueueImageDelete(ctx, book.ImageRef)

	return s.repo.Delete(ctx, id)
}

// resolveImageURL turns a stored reference into something the client can
// fetch: full URLs pass through, bare keys get a presigned URL. Resolution
// failures degrade to an empty URL rather than failing the read.
func (s *bookService) resolveImageURL(ctx context.Context, ref string) string {
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

// enqueueImageDelete schedules removal of a stored cover and its thumbnail.
// References we cannot map back to a bucket key were never our uploads and
// are skipped.
func (s *bookService) enqueueImageDelete(ctx context.Context, ref string) {
	base, ok := s.storage.KeyFromRef(ref)
	if !ok {
		return
	}
	for _, key := range []string{base, utils.ThumbnailKey(base)} {
		if err := s.queue.EnqueueImageDelete(ctx, key); err != nil {
			logger.Warn("failed to enqueue image deletion", err)
		}
	}
}

func (s *bookService) enqueueThumbnail(ctx context.Context, bookID uuid.UUID, key string) {
	if err := s.queue.EnqueueImageProcess(ctx, bookID.String(), key); err != nil {
		logger.Warn("failed to enqueue thumbnail generation", err)
	}
}
