// Package workdir resolves the files and directories a command operates on.
package workdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNoInput is returned when a directory holds no candidate file.
	ErrNoInput = errors.New("no input file")
	// ErrAmbiguousInput is returned when a directory holds more than one candidate file.
	ErrAmbiguousInput = errors.New("more than one input file")
	// ErrNotEmpty is returned when an output directory already has entries.
	ErrNotEmpty = errors.New("directory is not empty")
)

const dirPerm = 0o750

// ResolveInput returns the file to split. A file path is returned as is; a directory
// must contain exactly one regular, non-hidden file, which is returned.
func ResolveInput(path string) (string, error) {
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %q: %w", path, err)
	}

	if !info.IsDir() {
		return path, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("listing %q: %w", path, err)
	}

	var files []string

	for _, entry := range entries {
		if hidden(entry.Name()) || !entry.Type().IsRegular() {
			continue
		}

		files = append(files, filepath.Join(path, entry.Name()))
	}

	switch len(files) {
	case 0:
		return "", fmt.Errorf("%w in %q", ErrNoInput, path)
	case 1:
		return files[0], nil
	default:
		return "", fmt.Errorf("%w in %q: %d candidates", ErrAmbiguousInput, path, len(files))
	}
}

// EnsureDir creates dir and its parents if they do not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating %q: %w", dir, err)
	}

	return nil
}

// RequireEmpty creates dir if needed and fails if it already holds any entry,
// hidden ones included.
func RequireEmpty(dir string) error {
	if err := EnsureDir(dir); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("listing %q: %w", dir, err)
	}

	if len(entries) > 0 {
		return fmt.Errorf("%w: %q has %d entries", ErrNotEmpty, dir, len(entries))
	}

	return nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
