package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ReadRange returns the bytes in [start, end) of the file at path. The file is
// opened for this call only and always closed before returning. A range reaching
// past the end of the file is an ErrIO.
func ReadRange(path string, start, end int64) ([]byte, error) {
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: invalid byte range [%d, %d)", ErrIO, start, end)
	}

	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, ioError("opening", path, err)
	}
	defer file.Close()

	buf := make([]byte, end-start)

	if _, err := io.ReadFull(io.NewSectionReader(file, start, end-start), buf); err != nil {
		return nil, ioError(fmt.Sprintf("reading bytes [%d, %d) of", start, end), path, err)
	}

	return buf, nil
}
