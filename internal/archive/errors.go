package archive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrConfig marks invalid split parameters, detected before any I/O.
	ErrConfig = errors.New("invalid configuration")
	// ErrFormat marks an index missing required fields.
	ErrFormat = errors.New("invalid index")
	// ErrIntegrity marks fragments or keys missing from an archive.
	ErrIntegrity = errors.New("incomplete archive")
	// ErrOverwrite marks a join whose destination already exists.
	ErrOverwrite = errors.New("destination already exists")
	// ErrDecryption marks a fragment that could not be decrypted.
	ErrDecryption = errors.New("decryption failed")
	// ErrIO marks a filesystem failure.
	ErrIO = errors.New("i/o failure")
)

// IntegrityError lists every fragment and key ordinal absent from an archive.
type IntegrityError struct {
	MissingFragments []int
	MissingKeys      []int
}

func (e *IntegrityError) Error() string {
	var parts []string

	if len(e.MissingFragments) > 0 {
		parts = append(parts, "missing chunks: "+joinOrdinals(e.MissingFragments))
	}

	if len(e.MissingKeys) > 0 {
		parts = append(parts, "missing keys: "+joinOrdinals(e.MissingKeys))
	}

	return fmt.Sprintf("%v: %s", ErrIntegrity, strings.Join(parts, "; "))
}

// Is reports ErrIntegrity as the sentinel for this error.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// DecryptionError identifies the fragment ordinal that failed to decrypt.
type DecryptionError struct {
	Ordinal int
	Err     error
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrDecryption, FragmentName(e.Ordinal), e.Err)
}

// Is reports ErrDecryption as the sentinel for this error.
func (e *DecryptionError) Is(target error) bool {
	return target == ErrDecryption
}

func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// ioError wraps err as an ErrIO carrying the operation and the offending path.
func ioError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %q: %w", ErrIO, op, path, err)
}

func joinOrdinals(ordinals []int) string {
	parts := make([]string, len(ordinals))
	for i, o := range ordinals {
		parts[i] = strconv.Itoa(o)
	}

	return strings.Join(parts, ", ")
}
