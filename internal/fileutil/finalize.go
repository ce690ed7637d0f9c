// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrExists is returned by Commit when the destination appeared while writing.
var ErrExists = fs.ErrExist

// TempContext holds state for an atomic file write operation.
type TempContext struct {
	TmpFile *os.File
	TmpName string
}

// NewTempContext creates a temp file next to outPath for atomic writing.
// Caller must defer CleanupOnError.
func NewTempContext(outPath string) (*TempContext, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(outPath), ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &TempContext{
		TmpFile: tmpFile,
		TmpName: tmpFile.Name(),
	}, nil
}

// CleanupOnError closes the temp file and removes it if the write failed.
func (tc *TempContext) CleanupOnError(errp *error) {
	tc.TmpFile.Close() //nolint:gosec // best-effort cleanup

	if *errp != nil {
		os.Remove(tc.TmpName) //nolint:gosec // best-effort cleanup
	}
}

// Commit flushes the temp file to storage and moves it to outPath without
// replacing an existing file. It returns the size of the committed file.
func (tc *TempContext) Commit(outPath string) (int64, error) {
	if err := tc.TmpFile.Sync(); err != nil {
		return 0, fmt.Errorf("flushing %q: %w", tc.TmpName, err)
	}

	if err := tc.TmpFile.Close(); err != nil {
		return 0, fmt.Errorf("closing %q: %w", tc.TmpName, err)
	}

	if err := os.Link(tc.TmpName, outPath); err == nil {
		os.Remove(tc.TmpName) //nolint:gosec // the link already holds the data
	} else {
		if errors.Is(err, fs.ErrExist) {
			return 0, fmt.Errorf("%w: %q", ErrExists, outPath)
		}

		// Filesystems without hard links: check, then rename.
		if _, statErr := os.Lstat(outPath); statErr == nil {
			return 0, fmt.Errorf("%w: %q", ErrExists, outPath)
		}

		if err := os.Rename(tc.TmpName, outPath); err != nil {
			return 0, fmt.Errorf("renaming to %q: %w", outPath, err)
		}
	}

	return FileSize(outPath)
}

// FileSize returns the size of the file at path.
func FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", path, err)
	}

	return info.Size(), nil
}
