package container

import (
	"context"
	"fmt"

	"bookshop-backend/internal/config"
	"bookshop-backend/internal/infrastructure/cache"
	"bookshop-backend/internal/infrastructure/database"
	"bookshop-backend/internal/infrastructure/oauth"
	"bookshop-backend/internal/infrastructure/queue"
	"bookshop-backend/internal/infrastructure/storage"
	"bookshop-backend/pkg/jwt"
	"bookshop-backend/pkg/logger"

	authorHandler "bookshop-backend/internal/domains/author/handler"
	authorRepository "bookshop-backend/internal/domains/author/repository"
	authorService "bookshop-backend/internal/domains/author/service"
	bookHandler "bookshop-backend/internal/domains/book/handler"
	bookRepository "bookshop-backend/internal/domains/book/repository"
	bookService "bookshop-backend/internal/domains/book/service"
	cartHandler "bookshop-backend/internal/domains/cart/handler"
	cartRepository "bookshop-backend/internal/domains/cart/repository"
	cartService "bookshop-backend/internal/domains/cart/service"
	genreHandler "bookshop-backend/internal/domains/genre/handler"
	genreRepository "bookshop-backend/internal/domains/genre/repository"
	genreService "bookshop-backend/internal/domains/genre/service"
	postHandler "bookshop-backend/internal/domains/post/handler"
	postRepository "bookshop-backend/internal/domains/post/repository"
	postService "bookshop-backend/internal/domains/post/service"
	userHandler "bookshop-backend/internal/domains/user/handler"
	userRepository "bookshop-backend/internal/domains/user/repository"
	userService "bookshop-backend/internal/domains/user/service"
)

// Container wires infrastructure, repositories, services and handlers
// together for the API process.
type Container struct {
	Config *config.Config

	DB      *database.PostgresDB
	Storage *storage.MinIOStorage
	Queue   *queue.Client

	UserHandler   *userHandler.UserHandler
	BookHandler   *bookHandler.BookHandler
	GenreHandler  *genreHandler.GenreHandler
	AuthorHandler *authorHandler.AuthorHandler
	PostHandler   *postHandler.PostHandler
	CartHandler   *cartHandler.CartHandler

	Sessions *jwt.Manager
}

// New builds the full dependency graph. Infrastructure failures abort
// startup; nothing here degrades silently.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	db := database.NewPostgresDB(cfg.Database)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	redisCache := cache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	store, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("connect object storage: %w", err)
	}

	queueClient := queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	sessions := jwt.NewManager(cfg.Session.Secret, cfg.Session.ExpiryHours, cfg.Session.RememberHours)
	google := oauth.NewGoogleProvider(cfg.Google)
	images := storage.NewImageProcessor()

	userRepo := userRepository.NewPostgresRepository(db.Pool)
	bookRepo := bookRepository.NewPostgresRepository(db.Pool, redisCache)
	genreRepo := genreRepository.NewPostgresRepository(db.Pool, redisCache)
	authorRepo := authorRepository.NewPostgresRepository(db.Pool, redisCache)
	postRepo := postRepository.NewPostgresRepository(db.Pool)
	cartRepo := cartRepository.NewPostgresRepository(db.Pool)

	genres := genreService.NewGenreService(genreRepo)
	books := bookService.NewBookService(bookRepo, genres, store, queueClient, images, cfg.MinIO.UploadFolder)
	auth := userService.NewAuthService(userRepo, sessions, google)
	authors := authorService.NewAuthorService(authorRepo)
	posts := postService.NewPostService(postRepo)
	carts := cartService.NewCartService(cartRepo, bookRepo, store)

	logger.Info("dependency container ready", map[string]interface{}{
		"env": cfg.App.Environment,
	})

	return &Container{
		Config:  cfg,
		DB:      db,
		Storage: store,
		Queue:   queueClient,

		UserHandler:   userHandler.NewUserHandler(auth, cfg.Session),
		BookHandler:   bookHandler.NewBookHandler(books),
		GenreHandler:  genreHandler.NewGenreHandler(genres),
		AuthorHandler: authorHandler.NewAuthorHandler(authors),
		PostHandler:   postHandler.NewPostHandler(posts),
		CartHandler:   cartHandler.NewCartHandler(carts),

		Sessions: sessions,
	}, nil
}

// Close releases the container's external connections.
func (c *Container) Close() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Warn("failed to close queue client", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
