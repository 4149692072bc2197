package utils

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/rs/xid"
)

// MakeObjectKey builds a storage key for an uploaded file:
// <folder>/<unique id>_<unix timestamp>.<ext>, extension lower-cased.
func MakeObjectKey(folder, filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%s_%d.%s", folder, xid.New().String(), time.Now().Unix(), ext)
}

// ThumbnailKey derives the thumbnail variant key from a cover key.
// books/abc_170.jpg -> books/abc_170_thumb.jpg
func ThumbnailKey(key string) string {
	ext := path.Ext(key)
	return strings.TrimSuffix(key, ext) + "_thumb" + ext
}

// IsHTTPURL reports whether an image reference is already a resolvable URL
// rather than a bare storage key.
func IsHTTPURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
