package encryption

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Alphabet is the character set fragment keys are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateKey returns n characters drawn uniformly from Alphabet using a
// cryptographically secure source. The raw bytes of the returned string are
// the key material handed to Encrypt and Decrypt.
func GenerateKey(n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("%w: requested key length %d", ErrKeySize, n)
	}

	// Bytes at or above limit are rejected so that every character has the same weight.
	const limit = 256 - 256%len(Alphabet)

	key := make([]byte, 0, n)
	random := make([]byte, n)

	for len(key) < n {
		if _, err := io.ReadFull(rand.Reader, random); err != nil {
			return "", fmt.Errorf("reading secure random bytes: %w", err)
		}

		for _, b := range random {
			if int(b) >= limit {
				continue
			}

			key = append(key, Alphabet[int(b)%len(Alphabet)])

			if len(key) == n {
				break
			}
		}
	}

	return string(key), nil
}
