package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

const thumbnailSize = 300

// ImageProcessor validates uploaded cover images and produces thumbnails.
type ImageProcessor struct {
	MaxSize int64 // bytes
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: 5 * 1024 * 1024}
}

// ValidateImage accepts jpeg/png up to MaxSize and returns the detected
// format extension.
func (p *ImageProcessor) ValidateImage(data []byte) (string, error) {
	if int64(len(data)) > p.MaxSize {
		return "", fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("not an image: %w", err)
	}

	switch format {
	case "jpeg", "png":
		return format, nil
	default:
		return "", fmt.Errorf("image format %s not allowed (only jpeg/png)", format)
	}
}

// Thumbnail fits the image into a 300x300 box and re-encodes it as JPEG.
func (p *ImageProcessor) Thumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	resized := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("cannot encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}
