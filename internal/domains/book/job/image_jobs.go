package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"bookshop-backend/internal/infrastructure/storage"
	"bookshop-backend/internal/shared"
	"bookshop-backend/internal/shared/utils"
	"bookshop-backend/pkg/logger"
)

// ImageJobHandler processes the image housekeeping tasks the API enqueues:
// deleting replaced covers and generating thumbnail variants.
type ImageJobHandler struct {
	storage   *storage.MinIOStorage
	processor *storage.ImageProcessor
}

func NewImageJobHandler(store *storage.MinIOStorage, processor *storage.ImageProcessor) *ImageJobHandler {
	return &ImageJobHandler{storage: store, processor: processor}
}

// HandleImageDelete removes a stored object. A missing key counts as done,
// not as a failure to retry.
func (h *ImageJobHandler) HandleImageDelete(ctx context.Context, t *asynq.Task) error {
	var p shared.ImageDeletePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal %s payload: %v: %w", shared.TypeImageDelete, err, asynq.SkipRetry)
	}

	if err := h.storage.Delete(ctx, p.Key); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil
		}
		return fmt.Errorf("delete object %s: %w", p.Key, err)
	}

	logger.Info("deleted stored image", map[string]interface{}{"key": p.Key})
	return nil
}

// HandleImageProcess downloads a cover, renders its thumbnail and uploads
// it under the derived thumbnail key. If the cover has disappeared in the
// meantime (book deleted before the task ran) the task is dropped.
func (h *ImageJobHandler) HandleImageProcess(ctx context.Context, t *asynq.Task) error {
	var p shared.ImageProcessPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal %s payload: %v: %w", shared.TypeImageProcess, err, asynq.SkipRetry)
	}

	data, err := h.storage.Download(ctx, p.Key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			logger.Warn("cover image gone before thumbnail generation", err)
			return nil
		}
		return fmt.Errorf("download object %s: %w", p.Key, err)
	}

	thumb, err := h.processor.Thumbnail(data)
	if err != nil {
		// Undecodable data will not become decodable on retry.
		return fmt.Errorf("thumbnail %s: %v: %w", p.Key, err, asynq.SkipRetry)
	}

	thumbKey := utils.ThumbnailKey(p.Key)
	if _, err := h.storage.Upload(ctx, thumbKey, thumb, "image/jpeg"); err != nil {
		return fmt.Errorf("upload thumbnail %s: %w", thumbKey, err)
	}

	logger.Info("generated thumbnail", map[string]interface{}{
		"book_id": p.BookID,
		"key":     thumbKey,
	})
	return nil
}
