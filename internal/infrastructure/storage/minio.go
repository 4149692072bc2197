package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"bookshop-backend/internal/config"
)

// ErrObjectNotFound reports that the requested key does not exist in the
// bucket, as opposed to a provider-side failure.
var ErrObjectNotFound = errors.New("object not found")

// DefaultPresignExpiry is the lifetime of presigned GET links.
const DefaultPresignExpiry = 3600 * time.Second

// MinIOStorage stores book cover images in an S3-compatible bucket.
type MinIOStorage struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinIOStorage creates the client and ensures the bucket exists.
func NewMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOStorage{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: strings.TrimSuffix(cfg.PublicBase, "/"),
	}, nil
}

// Upload puts the object and returns the reference to persist: a public URL
// when a public base is configured, otherwise the bare key (resolved to a
// presigned URL at read time).
func (s *MinIOStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	if s.publicBase != "" {
		return fmt.Sprintf("%s/%s", s.publicBase, key), nil
	}
	return key, nil
}

// Download reads the whole object into memory.
func (s *MinIOStorage) Download(ctx context.Context, key string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}

	return data, nil
}

// Delete removes the object. Deleting a missing key is not an error.
func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return ErrObjectNotFound
		}
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// KeyFromRef maps a persisted image reference back to its bucket key.
// Bare keys map to themselves, public URLs under our base get the base
// stripped, and foreign URLs return false because we never stored them.
func (s *MinIOStorage) KeyFromRef(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		return ref, true
	}
	if s.publicBase != "" && strings.HasPrefix(ref, s.publicBase+"/") {
		return strings.TrimPrefix(ref, s.publicBase+"/"), true
	}
	return "", false
}

// PresignedURL returns a time-limited GET link for a private object.
func (s *MinIOStorage) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = DefaultPresignExpiry
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s: %w", key, err)
	}

	return u.String(), nil
}

func isNoSuchKey(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey"
	}
	return false
}
