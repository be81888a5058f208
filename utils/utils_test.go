package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"a", "b"}, "a"))
	assert.False(t, ContainsString([]string{}, "a"))
	assert.False(t, ContainsString([]string{"a", "b"}, "c"))
}

func TestRandomAlphanumericString(t *testing.T) {
	s := RandomAlphanumericString(16)
	assert.Len(t, s, 16)
	for _, r := range s {
		assert.Contains(t, alphanumerics, string(r))
	}
}

func TestNewSlug(t *testing.T) {
	slug := NewSlug()
	assert.Len(t, slug, slugCharLength)
}

func TestMin(t *testing.T) {
	assert.Equal(t, 1, Min(1, 2))
	assert.Equal(t, 1, Min(2, 1))
	assert.Equal(t, 3, Min(3, 3))
}
