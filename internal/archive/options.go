package archive

import (
	"fmt"

	"github.com/klauspost/compress/zlib"

	"github.com/idelchi/gosplit/internal/encryption"
)

// Options configures a split.
type Options struct {
	// ChunkSize is the number of bytes per fragment: raw file bytes, or compressed
	// bytes when Compress is set. The last fragment may be shorter.
	ChunkSize int64

	// KeyLength is the length of each generated fragment key.
	KeyLength int

	// Compress routes the input through a zlib filter before chunking.
	Compress bool

	// Level is the zlib compression level, from zlib.HuffmanOnly to zlib.BestCompression.
	Level int
}

// DefaultOptions returns uncompressed 24 MiB fragments with AES-256 keys.
func DefaultOptions() Options {
	const defaultChunkSize = 24 << 20

	return Options{
		ChunkSize: defaultChunkSize,
		KeyLength: encryption.KeySize,
		Level:     zlib.DefaultCompression,
	}
}

func (o Options) validate() error {
	if o.ChunkSize < 1 {
		return fmt.Errorf("%w: chunk size %d is invalid (minimum 1)", ErrConfig, o.ChunkSize)
	}

	if o.KeyLength != encryption.KeySize {
		return fmt.Errorf("%w: key length %d, the cipher requires %d", ErrConfig, o.KeyLength, encryption.KeySize)
	}

	if o.Compress && (o.Level < zlib.HuffmanOnly || o.Level > zlib.BestCompression) {
		return fmt.Errorf("%w: compression level %d outside [%d, %d]",
			ErrConfig, o.Level, zlib.HuffmanOnly, zlib.BestCompression)
	}

	return nil
}
