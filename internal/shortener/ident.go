package shortener

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// IDGenerator produces short URL-safe link identifiers.
type IDGenerator func() (string, error)

// GenerateShortID encodes a random 32-bit value in the URL-safe base64
// alphabet without padding. The result is safe for direct use as a URL path
// segment. Collisions are possible; uniqueness is enforced by the store,
// not here.
func GenerateShortID() (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf[:]), nil
}

// retryConflict runs fn until it stops returning conflict, up to attempts
// tries. fn is expected to draw fresh randomness on each call. If every
// attempt conflicts, the last conflict error is returned.
func retryConflict(attempts int, conflict error, fn func() error) error {
	var err error

	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil || !errors.Is(err, conflict) {
			return err
		}
	}

	return err
}
