package encryption

import "errors"

var (
	// ErrKeySize is returned when key material is not exactly KeySize bytes.
	ErrKeySize = errors.New("invalid key size")
	// ErrTruncated is returned when framed ciphertext is too short to hold an IV and one block.
	ErrTruncated = errors.New("ciphertext truncated")
	// ErrEmptyData is returned when attempting to unpad empty data.
	ErrEmptyData = errors.New("empty data")
	// ErrInvalidPadding is returned when PKCS7 padding is malformed.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrInvalidBlockSize is returned when encrypted data length is not aligned with AES block size.
	ErrInvalidBlockSize = errors.New("ciphertext is not a multiple of block size")
)

// IsCipherFailure reports whether err comes from the key or ciphertext itself
// rather than from reading or writing.
func IsCipherFailure(err error) bool {
	return errors.Is(err, ErrKeySize) ||
		errors.Is(err, ErrTruncated) ||
		errors.Is(err, ErrEmptyData) ||
		errors.Is(err, ErrInvalidPadding) ||
		errors.Is(err, ErrInvalidBlockSize)
}
