package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshop-backend/internal/domains/book/model"
	genreModel "bookshop-backend/internal/domains/genre/model"
	genreService "bookshop-backend/internal/domains/genre/service"
	"bookshop-backend/internal/infrastructure/storage"
)

type fakeBookRepo struct {
	books     map[uuid.UUID]*model.Book
	genreSets map[uuid.UUID][]uuid.UUID
	insertErr error
	updateErr error
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{
		books:     make(map[uuid.UUID]*model.Book),
		genreSets: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeBookRepo) ListAll(ctx context.Context, q model.ListQuery) ([]model.Book, error) {
	out := make([]model.Book, 0, len(f.books))
	for _, b := range f.books {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookRepo) Insert(ctx context.Context, b *model.Book, genreIDs []uuid.UUID) (*model.Book, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	f.books[b.ID] = b
	f.genreSets[b.ID] = genreIDs
	copied := *b
	return &copied, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, b *model.Book, genreIDs []uuid.UUID) (*model.Book, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if _, ok := f.books[b.ID]; !ok {
		return nil, model.ErrBookNotFound
	}
	f.books[b.ID] = b
	f.genreSets[b.ID] = genreIDs
	copied := *b
	return &copied, nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.books[id]; !ok {
		return model.ErrBookNotFound
	}
	delete(f.books, id)
	delete(f.genreSets, id)
	return nil
}

type fakeGenreRepo struct {
	genres map[uuid.UUID]genreModel.Genre
}

func (f *fakeGenreRepo) Insert(ctx context.Context, g *genreModel.Genre) (*genreModel.Genre, error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	f.genres[g.ID] = *g
	return g, nil
}

func (f *fakeGenreRepo) ListAll(ctx context.Context) ([]genreModel.Genre, error) {
	out := make([]genreModel.Genre, 0, len(f.genres))
	for _, g := range f.genres {
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeGenreRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]genreModel.Genre, error) {
	out := make([]genreModel.Genre, 0, len(ids))
	for _, id := range ids {
		if g, ok := f.genres[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

type recordingStorage struct {
	objects   map[string][]byte
	deleted   []string
	uploadErr error
}

func newRecordingStorage() *recordingStorage {
	return &recordingStorage{objects: make(map[string][]byte)}
}

func (s *recordingStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.objects[key] = data
	return key, nil
}

func (s *recordingStorage) Delete(ctx context.Context, key string) error {
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *recordingStorage) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://storage.local/" + key, nil
}

func (s *recordingStorage) KeyFromRef(ref string) (string, bool) {
	return ref, ref != ""
}

type recordingQueue struct {
	deletes   []string
	processed []string
}

func (q *recordingQueue) EnqueueImageDelete(ctx context.Context, key string) error {
	q.deletes = append(q.deletes, key)
	return nil
}

func (q *recordingQueue) EnqueueImageProcess(ctx context.Context, bookID, key string) error {
	q.processed = append(q.processed, key)
	return nil
}

type bookFixture struct {
	svc     Service
	repo    *fakeBookRepo
	genres  *fakeGenreRepo
	storage *recordingStorage
	queue   *recordingQueue
}

func newBookFixture() *bookFixture {
	repo := newFakeBookRepo()
	genres := &fakeGenreRepo{genres: make(map[uuid.UUID]genreModel.Genre)}
	store := newRecordingStorage()
	queue := &recordingQueue{}

	svc := NewBookService(repo, genreService.NewGenreService(genres), store, queue, storage.NewImageProcessor(), "books")
	return &bookFixture{svc: svc, repo: repo, genres: genres, storage: store, queue: queue}
}

func pngUpload(t *testing.T) *model.ImageUpload {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return &model.ImageUpload{
		Filename:    "cover.png",
		ContentType: "image/png",
		Data:        buf.Bytes(),
	}
}

func validForm(genreIDs ...uuid.UUID) model.BookForm {
	form := model.BookForm{
		Title:       "The Go Programming Language",
		Price:       39.99,
		Quantity:    12,
		ReleaseDate: "2015-10-26",
		Format:      "paperback",
		Editorial:   "Addison-Wesley",
		AuthorName:  "Alan Donovan",
	}
	for _, id := range genreIDs {
		form.GenreIDs = append(form.GenreIDs, id.String())
	}
	return form
}

func TestCreateBook(t *testing.T) {
	f := newBookFixture()
	genre, err := f.genres.Insert(context.Background(), &genreModel.Genre{Name: "Programming"})
	require.NoError(t, err)

	resp, err := f.svc.Create(context.Background(), validForm(genre.ID), pngUpload(t))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Len(t, resp.Genres, 1)
	assert.Contains(t, resp.ImageURL, "https://storage.local/books/")

	// The object landed in storage under the persisted key.
	_, stored := f.storage.objects[resp.ImageRef]
	assert.True(t, stored)

	// Thumbnail generation is queued.
	assert.Len(t, f.queue.processed, 1)
}

func TestCreateBookRequiresImage(t *testing.T) {
	f := newBookFixture()

	_, err := f.svc.Create(context.Background(), validForm(), nil)
	assert.ErrorIs(t, err, model.ErrImageRequired)
	assert.Empty(t, f.repo.books)
}

func TestCreateBookRejectsNonImage(t *testing.T) {
	f := newBookFixture()

	upload := &model.ImageUpload{Filename: "cover.png", Data: []byte("definitely not a png")}
	_, err := f.svc.Create(context.Background(), validForm(), upload)
	assert.ErrorIs(t, err, model.ErrInvalidImage)
	assert.Empty(t, f.storage.objects)
}

func TestCreateBookUnknownGenre(t *testing.T) {
	f := newBookFixture()

	_, err := f.svc.Create(context.Background(), validForm(uuid.New()), pngUpload(t))
	assert.ErrorIs(t, err, genreModel.ErrGenreNotFound)

	// Nothing was uploaded for a request that failed validation.
	assert.Empty(t, f.storage.objects)
}

func TestCreateBookCleansUpAfterInsertFailure(t *testing.T) {
	f := newBookFixture()
	f.repo.insertErr = errors.New("connection reset")

	_, err := f.svc.Create(context.Background(), validForm(), pngUpload(t))
	require.Error(t, err)

	// The uploaded object is removed again, leaving storage clean.
	assert.Empty(t, f.storage.objects)
	assert.Len(t, f.storage.deleted, 1)
}

func TestUpdateBookKeepsImageWhenNoneUploaded(t *testing.T) {
	f := newBookFixture()

	created, err := f.svc.Create(context.Background(), validForm(), pngUpload(t))
	require.NoError(t, err)

	form := validForm()
	form.Title = "The Go Programming Language, 2nd Edition"

	updated, err := f.svc.Update(context.Background(), created.ID, form, nil)
	require.NoError(t, err)

	assert.Equal(t, created.ImageRef, updated.ImageRef)
	assert.Empty(t, f.queue.deletes)
}

func TestUpdateBookReplacesImage(t *testing.T) {
	f := newBookFixture()

	created, err := f.svc.Create(context.Background(), validForm(), pngUpload(t))
	require.NoError(t, err)

	updated, err := f.svc.Update(context.Background(), created.ID, validForm(), pngUpload(t))
	require.NoError(t, err)

	assert.NotEqual(t, created.ImageRef, updated.ImageRef)

	// The old cover and its thumbnail are queued for deletion.
	assert.Contains(t, f.queue.deletes, created.ImageRef)
	assert.Len(t, f.queue.deletes, 2)
}

func TestUpdateBookReplacesGenresWholesale(t *testing.T) {
	f := newBookFixture()
	a, err := f.genres.Insert(context.Background(), &genreModel.Genre{Name: "Programming"})
	require.NoError(t, err)
	b, err := f.genres.Insert(context.Background(), &genreModel.Genre{Name: "Reference"})
	require.NoError(t, err)

	created, err := f.svc.Create(context.Background(), validForm(a.ID), pngUpload(t))
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), created.ID, validForm(b.ID), nil)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{b.ID}, f.repo.genreSets[created.ID])
}

func TestUpdateMissingBook(t *testing.T) {
	f := newBookFixture()

	_, err := f.svc.Update(context.Background(), uuid.New(), validForm(), nil)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestDeleteBookQueuesImageCleanup(t *testing.T) {
	f := newBookFixture()

	created, err := f.svc.Create(context.Background(), validForm(), pngUpload(t))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), created.ID))

	assert.Empty(t, f.repo.books)
	assert.Contains(t, f.queue.deletes, created.ImageRef)
}

func TestGetResolvesImageURL(t *testing.T) {
	f := newBookFixture()

	created, err := f.svc.Create(context.Background(), validForm(), pngUpload(t))
	require.NoError(t, err)

	got, err := f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://storage.local/"+created.ImageRef, got.ImageURL)
}

func TestListResolvesExternalURLs(t *testing.T) {
	f := newBookFixture()
	id := uuid.New()
	f.repo.books[id] = &model.Book{
		ID:       id,
		Title:    "Imported Title",
		ImageRef: "https://cdn.example.com/imported.jpg",
	}

	books, err := f.svc.List(context.Background(), model.ListQuery{})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "https://cdn.example.com/imported.jpg", books[0].ImageURL)
}
