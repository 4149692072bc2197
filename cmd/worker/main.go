package main

import (
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"bookshop-backend/internal/config"
	"bookshop-backend/internal/domains/book/job"
	"bookshop-backend/internal/infrastructure/storage"
	"bookshop-backend/internal/shared"
	"bookshop-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.Environment)

	store, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		logger.Error("failed to connect object storage", err)
		os.Exit(1)
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 5,
		},
	)

	images := job.NewImageJobHandler(store, storage.NewImageProcessor())

	mux := asynq.NewServeMux()
	mux.HandleFunc(shared.TypeImageDelete, images.HandleImageDelete)
	mux.HandleFunc(shared.TypeImageProcess, images.HandleImageProcess)

	logger.Info("worker starting", map[string]interface{}{
		"env": cfg.App.Environment,
	})

	if err := srv.Run(mux); err != nil {
		logger.Error("worker failed", err)
		os.Exit(1)
	}
}
