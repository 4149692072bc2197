package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeObjectKey(t *testing.T) {
	key := MakeObjectKey("books", "Cover Photo.JPG")

	assert.True(t, strings.HasPrefix(key, "books/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	// Two keys for the same filename never collide.
	assert.NotEqual(t, key, MakeObjectKey("books", "Cover Photo.JPG"))
}

func TestMakeObjectKeyNoExtension(t *testing.T) {
	key := MakeObjectKey("books", "cover")
	assert.True(t, strings.HasSuffix(key, ".bin"))
}

func TestThumbnailKey(t *testing.T) {
	assert.Equal(t, "books/abc_170_thumb.jpg", ThumbnailKey("books/abc_170.jpg"))
	assert.Equal(t, "books/abc_thumb", ThumbnailKey("books/abc"))
}

func TestIsHTTPURL(t *testing.T) {
	assert.True(t, IsHTTPURL("https://cdn.example.com/books/a.jpg"))
	assert.True(t, IsHTTPURL("http://cdn.example.com/books/a.jpg"))
	assert.False(t, IsHTTPURL("books/a.jpg"))
	assert.False(t, IsHTTPURL(""))
}
