package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshop-backend/internal/shared/middleware"
	"bookshop-backend/pkg/container"
)

func setupRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	router.GET("/health", func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		})
	})

	api := router.Group("/api/v1")

	authRequired := middleware.AuthMiddleware(c.Sessions, c.Config.Session.CookieName)
	adminOnly := middleware.AdminMiddleware()

	// Public catalog and content.
	api.GET("/books", c.BookHandler.List)
	api.GET("/books/:id", c.BookHandler.GetByID)
	api.GET("/genres", c.GenreHandler.List)
	api.GET("/authors", c.AuthorHandler.List)
	api.GET("/authors/:id", c.AuthorHandler.GetByID)
	api.GET("/posts", c.PostHandler.List)
	api.GET("/posts/:id", c.PostHandler.GetByID)

	// Account lifecycle.
	auth := api.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/logout", c.UserHandler.Logout)
		auth.GET("/google", c.UserHandler.GoogleLogin)
		auth.GET("/google/callback", c.UserHandler.GoogleCallback)
	}

	// Signed-in users.
	user := api.Group("", authRequired)
	{
		user.GET("/profile", c.UserHandler.GetProfile)
		user.POST("/posts", c.PostHandler.Create)

		cart := user.Group("/cart")
		{
			cart.GET("", c.CartHandler.View)
			cart.DELETE("", c.CartHandler.Clear)
			cart.POST("/items", c.CartHandler.Add)
			cart.PUT("/items/:id", c.CartHandler.UpdateQuantity)
			cart.DELETE("/items/:id", c.CartHandler.Remove)
		}
	}

	// Administration.
	admin := api.Group("/admin", authRequired, adminOnly)
	{
		admin.GET("/users", c.UserHandler.ListUsers)
		admin.POST("/genres", c.GenreHandler.Create)
		admin.POST("/books", c.BookHandler.Create)
		admin.PUT("/books/:id", c.BookHandler.Update)
		admin.DELETE("/books/:id", c.BookHandler.Delete)
		admin.POST("/books/import", c.BookHandler.BulkImport)
	}

	return router
}
