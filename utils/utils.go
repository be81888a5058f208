package utils

import (
	"math/rand"
)

const slugCharLength = 6

const alphanumerics = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ContainsString returns true iff the provided string slice hay contains string
// needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// RandomAlphanumericString returns a random string of length n drawn from
// [A-Za-z0-9].
func RandomAlphanumericString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumerics[rand.Intn(len(alphanumerics))]
	}
	return string(b)
}

// NewSlug generates a short URL-safe post identifier. Uniqueness is enforced
// by the DB index, the caller retries on collision.
func NewSlug() string {
	return RandomAlphanumericString(slugCharLength)
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
