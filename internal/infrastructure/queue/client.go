package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"bookshop-backend/internal/shared"
)

// Client enqueues background tasks for the worker.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, password string, db int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		}),
	}
}

// EnqueueImageDelete schedules a best-effort deletion of a stored object.
// Retried by asynq on failure; a permanently failed deletion leaves an
// orphaned object, which is tolerated.
func (c *Client) EnqueueImageDelete(ctx context.Context, key string) error {
	payload, err := json.Marshal(shared.ImageDeletePayload{Key: key})
	if err != nil {
		return fmt.Errorf("marshal image delete payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeImageDelete, payload)
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", shared.TypeImageDelete, err)
	}

	return nil
}

// EnqueueImageProcess schedules thumbnail generation for a new cover.
func (c *Client) EnqueueImageProcess(ctx context.Context, bookID, key string) error {
	payload, err := json.Marshal(shared.ImageProcessPayload{BookID: bookID, Key: key})
	if err != nil {
		return fmt.Errorf("marshal image process payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeImageProcess, payload)
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", shared.TypeImageProcess, err)
	}

	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
