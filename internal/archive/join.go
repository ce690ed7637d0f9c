package archive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zlib"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/gosplit/internal/encryption"
	"github.com/idelchi/gosplit/internal/fileutil"
)

// errInflateStopped closes the fragment pipe once the decompressor stops reading.
var errInflateStopped = errors.New("decompressor stopped reading")

// Joiner reassembles an archive into its original file.
type Joiner struct {
	logger *slog.Logger
}

// NewJoiner returns a Joiner reporting progress through logger.
func NewJoiner(logger *slog.Logger) *Joiner {
	return &Joiner{logger: logger}
}

// Validate runs every check a join performs before writing: it normalizes idx,
// refuses an existing destination, and collects all missing fragments and keys
// into a single IntegrityError. An empty destination skips the overwrite check.
func (j *Joiner) Validate(fragmentDir, destination string, idx *Index) error {
	if err := idx.Normalize(j.logger); err != nil {
		return err
	}

	missingFragments := idx.MissingFragments(fragmentDir)
	missingKeys := idx.MissingKeys()

	if destination != "" {
		_, err := os.Lstat(destination)

		switch {
		case err == nil:
			return fmt.Errorf("%w: %q", ErrOverwrite, destination)
		case !errors.Is(err, fs.ErrNotExist):
			return ioError("checking destination", destination, err)
		}
	}

	if len(missingFragments) > 0 || len(missingKeys) > 0 {
		return &IntegrityError{MissingFragments: missingFragments, MissingKeys: missingKeys}
	}

	return nil
}

// Join validates the archive in fragmentDir and writes the reconstructed file to
// destination, returning its size. The file is assembled under a temporary name and
// only appears at destination once fully written and flushed.
func (j *Joiner) Join(fragmentDir, destination string, idx *Index) (size int64, err error) {
	if err := j.Validate(fragmentDir, destination, idx); err != nil {
		return 0, err
	}

	tc, err := fileutil.NewTempContext(destination)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer tc.CleanupOnError(&err)

	if err = j.reconstruct(fragmentDir, idx, tc.TmpFile); err != nil {
		return 0, err
	}

	size, err = tc.Commit(destination)

	switch {
	case errors.Is(err, fileutil.ErrExists):
		return 0, fmt.Errorf("%w: %q", ErrOverwrite, destination)
	case err != nil:
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}

	j.logger.Info("join complete", "file", destination, "bytes", size)

	return size, nil
}

// Check validates the archive in fragmentDir and decrypts every fragment without
// writing anything, returning the size the reconstructed file would have.
func (j *Joiner) Check(fragmentDir string, idx *Index) (int64, error) {
	if err := j.Validate(fragmentDir, "", idx); err != nil {
		return 0, err
	}

	var counter countingWriter

	if err := j.reconstruct(fragmentDir, idx, &counter); err != nil {
		return 0, err
	}

	return counter.n, nil
}

// reconstruct writes the original bytes of the archive to w, fragments in ascending order.
func (j *Joiner) reconstruct(dir string, idx *Index, w io.Writer) error {
	if idx.Compressed {
		return j.inflate(dir, idx, w)
	}

	for ordinal := 1; ordinal <= idx.Chunks; ordinal++ {
		if err := j.decryptFragment(dir, idx, ordinal, w); err != nil {
			return err
		}
	}

	return nil
}

// decryptFragment streams one fragment straight into w.
func (j *Joiner) decryptFragment(dir string, idx *Index, ordinal int, w io.Writer) error {
	path := filepath.Join(dir, FragmentName(ordinal))

	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return ioError("opening fragment", path, err)
	}
	defer file.Close()

	j.logger.Info("processing chunk", "chunk", ordinal)

	if err := encryption.DecryptStream(w, file, idx.Keys[ordinal]); err != nil {
		if encryption.IsCipherFailure(err) {
			return &DecryptionError{Ordinal: ordinal, Err: err}
		}

		return ioError("decrypting fragment", path, err)
	}

	return nil
}

// inflate decrypts fragments on a producer goroutine into a pipe and decompresses
// the concatenated stream into w. A producer failure takes precedence, since the
// decompressor only sees its symptom.
func (j *Joiner) inflate(dir string, idx *Index, w io.Writer) error {
	reader, writer := io.Pipe()

	var (
		group   errgroup.Group
		feedErr error
	)

	group.Go(func() error {
		feedErr = j.feed(dir, idx, writer)
		writer.CloseWithError(feedErr)

		return nil
	})

	inflateErr := decompress(w, reader)
	reader.CloseWithError(errInflateStopped)

	_ = group.Wait()

	switch {
	case feedErr != nil && !errors.Is(feedErr, errInflateStopped):
		return feedErr
	case inflateErr != nil:
		return inflateErr
	case feedErr != nil:
		return fmt.Errorf("%w: data remains after the end of the compressed stream", ErrDecryption)
	}

	return nil
}

// feed writes the plaintext of every fragment to w. Fragments are decrypted whole
// so that a failure names its ordinal.
func (j *Joiner) feed(dir string, idx *Index, w io.Writer) error {
	for ordinal := 1; ordinal <= idx.Chunks; ordinal++ {
		path := filepath.Join(dir, FragmentName(ordinal))

		framed, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return ioError("reading fragment", path, err)
		}

		j.logger.Info("processing chunk", "chunk", ordinal)

		plaintext, err := encryption.Decrypt(framed, idx.Keys[ordinal])
		if err != nil {
			return &DecryptionError{Ordinal: ordinal, Err: err}
		}

		if _, err := w.Write(plaintext); err != nil {
			return err
		}
	}

	return nil
}

// decompress copies the inflated contents of r into w. Bytes left in r after the
// end of the zlib stream are an ErrDecryption.
func decompress(w io.Writer, r io.Reader) error {
	// A byte reader keeps zlib from buffering past the end of its stream.
	source := bufio.NewReader(r)

	zr, err := zlib.NewReader(source)
	if err != nil {
		return fmt.Errorf("%w: reading compressed header: %w", ErrDecryption, err)
	}
	defer zr.Close()

	sink := &errWriter{w: w}

	if _, err := io.Copy(sink, zr); err != nil {
		if sink.err != nil {
			return fmt.Errorf("%w: writing output: %w", ErrIO, sink.err)
		}

		return fmt.Errorf("%w: inflating: %w", ErrDecryption, err)
	}

	switch _, err := source.ReadByte(); {
	case err == nil:
		return fmt.Errorf("%w: data remains after the end of the compressed stream", ErrDecryption)
	case !errors.Is(err, io.EOF):
		return fmt.Errorf("%w: reading past the compressed stream: %w", ErrDecryption, err)
	}

	return nil
}

// errWriter remembers the first error returned by w.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	n, err := e.w.Write(p)
	if err != nil && e.err == nil {
		e.err = err
	}

	return n, err
}

// countingWriter discards its input, counting bytes.
type countingWriter struct {
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))

	return len(p), nil
}
