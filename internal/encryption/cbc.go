package encryption

import (
	"bufio"
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

const (
	// KeySize is the AES-256 key size in bytes.
	KeySize = 32
	// IVSize is the length of the initialization vector prefixing every framed ciphertext.
	IVSize = aes.BlockSize
)

// newBlock creates the AES block cipher for key, using its raw bytes.
func newBlock(key string) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrKeySize, len(key), KeySize)
	}

	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	return block, nil
}

// Overhead returns the framed ciphertext size for a plaintext of length n.
func Overhead(n int) int {
	return IVSize + n + (aes.BlockSize - n%aes.BlockSize)
}

// Encrypt encrypts plaintext under key with AES-256-CBC and a fresh random IV.
// The result is IV || ciphertext. plaintext is not modified.
func Encrypt(plaintext []byte, key string) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)

	framed := make([]byte, IVSize+len(padded))

	iv := framed[:IVSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("generating IV: %w", err)
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(framed[IVSize:], padded)

	return framed, nil
}

// Decrypt reverses Encrypt, returning the unpadded plaintext.
func Decrypt(framed []byte, key string) ([]byte, error) {
	var plaintext bytes.Buffer

	plaintext.Grow(len(framed))

	if err := DecryptStream(&plaintext, bytes.NewReader(framed), key); err != nil {
		return nil, err
	}

	return plaintext.Bytes(), nil
}

// DecryptStream reads IV || ciphertext from r and writes the plaintext to w.
// The final block is held back until EOF so its padding can be stripped; on a
// padding failure, everything before the final block has already been written.
func DecryptStream(w io.Writer, r io.Reader, key string) error {
	block, err := newBlock(key)
	if err != nil {
		return err
	}

	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(r, iv); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: missing initialization vector", ErrTruncated)
		}

		return fmt.Errorf("reading IV: %w", err)
	}

	cbcMode := cipher.NewCBCDecrypter(block, iv)
	bufReader := bufio.NewReaderSize(r, defaultBufferSize)

	buf, ok := bufferPool.Get().([]byte)
	if !ok {
		return errors.New("invalid buffer type from pool") //nolint:err113
	}

	defer bufferPool.Put(buf) //nolint:staticcheck

	pending := make([]byte, 0, defaultBufferSize+aes.BlockSize)

	for {
		n, readErr := bufReader.Read(buf)
		pending = append(pending, buf[:n]...)

		// Decrypt every complete block except the last one.
		if ready := (len(pending) - 1) / aes.BlockSize * aes.BlockSize; ready > 0 {
			cbcMode.CryptBlocks(pending[:ready], pending[:ready])

			if _, err := w.Write(pending[:ready]); err != nil {
				return fmt.Errorf("writing decrypted blocks: %w", err)
			}

			pending = append(pending[:0], pending[ready:]...)
		}

		if readErr == io.EOF {
			break
		}

		if readErr != nil {
			return fmt.Errorf("reading ciphertext: %w", readErr)
		}
	}

	switch {
	case len(pending) == 0:
		return fmt.Errorf("%w: no ciphertext after the IV", ErrTruncated)
	case len(pending) != aes.BlockSize:
		return ErrInvalidBlockSize
	}

	cbcMode.CryptBlocks(pending, pending)

	unpadded, err := pkcs7Unpad(pending)
	if err != nil {
		return fmt.Errorf("removing padding: %w", err)
	}

	if _, err := w.Write(unpadded); err != nil {
		return fmt.Errorf("writing final decrypted block: %w", err)
	}

	return nil
}
