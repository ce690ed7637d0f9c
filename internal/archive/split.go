package archive

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/idelchi/gosplit/internal/encryption"
)

// Splitter writes a file out as encrypted fragments and an index.
type Splitter struct {
	// opts holds the validated split parameters
	opts Options

	// logger receives per-fragment progress
	logger *slog.Logger
}

// NewSplitter validates opts and returns a Splitter. Invalid options are an ErrConfig.
func NewSplitter(opts Options, logger *slog.Logger) (*Splitter, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	return &Splitter{opts: opts, logger: logger}, nil
}

// Split writes the fragments of inputPath into outputDir, creating the directory if
// needed, and writes the index only after every fragment is on disk. On failure,
// fragments already written are left in place.
func (s *Splitter) Split(inputPath, outputDir string) (*Result, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, ioError("reading input", inputPath, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: input %q is not a regular file", ErrIO, inputPath)
	}

	const dirPerm = 0o750

	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return nil, ioError("creating output directory", outputDir, err)
	}

	res := &Result{
		Index:     newIndex(inputPath, s.opts.Compress),
		InputSize: info.Size(),
	}

	if s.opts.Compress {
		err = s.splitCompressed(inputPath, outputDir, res)
	} else {
		err = s.splitFixed(inputPath, outputDir, res)
	}

	if err != nil {
		return nil, err
	}

	if err := res.Index.Write(outputDir); err != nil {
		return nil, err
	}

	s.logger.Info("split complete", "file", res.Index.Name, "chunks", res.Index.Chunks)

	return res, nil
}

// splitFixed encrypts consecutive ChunkSize windows of the input. An empty input
// still produces one (empty) fragment.
func (s *Splitter) splitFixed(inputPath, outputDir string, res *Result) error {
	size := res.InputSize
	ordinal := 0

	for start := int64(0); start < size || ordinal == 0; start += s.opts.ChunkSize {
		ordinal++

		data, err := ReadRange(inputPath, start, min(start+s.opts.ChunkSize, size))
		if err != nil {
			return err
		}

		if err := s.writeFragment(outputDir, ordinal, data, res); err != nil {
			return err
		}
	}

	res.Index.Chunks = ordinal

	return nil
}

// writeFragment encrypts plaintext under a fresh key, writes it as fragment ordinal,
// and records the key.
func (s *Splitter) writeFragment(dir string, ordinal int, plaintext []byte, res *Result) error {
	key, err := encryption.GenerateKey(s.opts.KeyLength)
	if err != nil {
		return fmt.Errorf("generating key for %s: %w", FragmentName(ordinal), err)
	}

	framed, err := encryption.Encrypt(plaintext, key)
	if err != nil {
		return fmt.Errorf("encrypting %s: %w", FragmentName(ordinal), err)
	}

	path := filepath.Join(dir, FragmentName(ordinal))

	const ownerReadWrite = 0o600

	if err := os.WriteFile(path, framed, ownerReadWrite); err != nil {
		return ioError("writing fragment", path, err)
	}

	res.Index.Keys[ordinal] = key
	res.OutputSize += int64(len(framed))

	s.logger.Info("processed chunk", "chunk", ordinal, "bytes", len(plaintext))

	return nil
}
