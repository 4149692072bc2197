package storage

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, format string, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	}
	require.NoError(t, err)
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	p := NewImageProcessor()

	format, err := p.ValidateImage(encode(t, "png", 10, 10))
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	format, err = p.ValidateImage(encode(t, "jpeg", 10, 10))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestValidateImageRejectsGIF(t *testing.T) {
	p := NewImageProcessor()

	_, err := p.ValidateImage(encode(t, "gif", 10, 10))
	assert.Error(t, err)
}

func TestValidateImageRejectsGarbage(t *testing.T) {
	p := NewImageProcessor()

	_, err := p.ValidateImage([]byte("not an image"))
	assert.Error(t, err)
}

func TestValidateImageRejectsOversized(t *testing.T) {
	p := &ImageProcessor{MaxSize: 16}

	_, err := p.ValidateImage(encode(t, "png", 10, 10))
	assert.Error(t, err)
}

func TestThumbnailFitsBox(t *testing.T) {
	p := NewImageProcessor()

	thumb, err := p.Thumbnail(encode(t, "png", 1200, 600))
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.LessOrEqual(t, cfg.Width, 300)
	assert.LessOrEqual(t, cfg.Height, 300)
	// Aspect ratio is preserved.
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 150, cfg.Height)
}
