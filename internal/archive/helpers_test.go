package archive_test

import (
	"crypto/rand"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// writeInput creates a file named name holding size random bytes and returns its path.
func writeInput(t *testing.T, dir, name string, size int) (string, []byte) {
	t.Helper()

	data := make([]byte, size)
	if _, err := rand.Read(data); err != nil {
		t.Fatalf("generating input: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	return path, data
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path) //nolint:gosec // test paths
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}

	return data
}
