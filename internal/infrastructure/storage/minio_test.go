package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFromRef(t *testing.T) {
	s := &MinIOStorage{publicBase: "https://cdn.example.com/bookshop"}

	key, ok := s.KeyFromRef("books/abc_170.jpg")
	assert.True(t, ok)
	assert.Equal(t, "books/abc_170.jpg", key)

	key, ok = s.KeyFromRef("https://cdn.example.com/bookshop/books/abc_170.jpg")
	assert.True(t, ok)
	assert.Equal(t, "books/abc_170.jpg", key)

	_, ok = s.KeyFromRef("https://somewhere-else.example.com/cover.jpg")
	assert.False(t, ok)

	_, ok = s.KeyFromRef("")
	assert.False(t, ok)
}

func TestKeyFromRefWithoutPublicBase(t *testing.T) {
	s := &MinIOStorage{}

	key, ok := s.KeyFromRef("books/abc_170.jpg")
	assert.True(t, ok)
	assert.Equal(t, "books/abc_170.jpg", key)

	_, ok = s.KeyFromRef("https://cdn.example.com/cover.jpg")
	assert.False(t, ok)
}
