package archive_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/idelchi/gosplit/internal/archive"
	"github.com/idelchi/gosplit/internal/encryption"
)

// Case is a single split layout from a YAML golden file.
type Case struct {
	Description string `yaml:"description"`
	Size        int    `yaml:"size"`
	Chunk       int64  `yaml:"chunk"`
	Fragments   int    `yaml:"fragments"`
}

// Group is a named collection of layouts.
type Group struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Cases       []Case `yaml:"cases"`
}

func loadLayouts(t *testing.T) []Group {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", "split.yml"))
	if err != nil {
		t.Fatalf("reading testdata: %v", err)
	}

	var groups []Group
	if err := yaml.Unmarshal(data, &groups); err != nil {
		t.Fatalf("parsing testdata: %v", err)
	}

	return groups
}

func TestSplitLayout(t *testing.T) {
	t.Parallel()

	for _, group := range loadLayouts(t) {
		for i, tc := range group.Cases {
			desc := tc.Description
			if desc == "" {
				desc = fmt.Sprintf("case_%d", i)
			}

			t.Run(group.Name+"/"+desc, func(t *testing.T) {
				t.Parallel()

				dir := t.TempDir()
				input, _ := writeInput(t, dir, "input.bin", tc.Size)
				out := filepath.Join(dir, "out")

				opts := archive.DefaultOptions()
				opts.ChunkSize = tc.Chunk

				splitter, err := archive.NewSplitter(opts, quietLogger())
				if err != nil {
					t.Fatalf("NewSplitter: %v", err)
				}

				res, err := splitter.Split(input, out)
				if err != nil {
					t.Fatalf("Split: %v", err)
				}

				if res.Index.Chunks != tc.Fragments {
					t.Fatalf("chunks = %d, want %d", res.Index.Chunks, tc.Fragments)
				}

				if res.Index.Name != "input.bin" || res.Index.Compressed {
					t.Errorf("index = %+v", *res.Index)
				}

				var total int64

				for ordinal := 1; ordinal <= tc.Fragments; ordinal++ {
					want := tc.Chunk
					if ordinal == tc.Fragments {
						want = int64(tc.Size) - tc.Chunk*int64(tc.Fragments-1)
					}

					info, err := os.Stat(filepath.Join(out, archive.FragmentName(ordinal)))
					if err != nil {
						t.Fatalf("fragment %d: %v", ordinal, err)
					}

					if got := info.Size(); got != int64(encryption.Overhead(int(want))) {
						t.Errorf("fragment %d size = %d, want %d", ordinal, got, encryption.Overhead(int(want)))
					}

					if len(res.Index.Keys[ordinal]) != encryption.KeySize {
						t.Errorf("key %d has length %d", ordinal, len(res.Index.Keys[ordinal]))
					}

					total += info.Size()
				}

				if res.OutputSize != total {
					t.Errorf("OutputSize = %d, want %d", res.OutputSize, total)
				}

				if _, err := os.Stat(filepath.Join(out, archive.FragmentName(tc.Fragments+1))); err == nil {
					t.Errorf("unexpected fragment %d", tc.Fragments+1)
				}

				if _, err := archive.LoadIndex(filepath.Join(out, archive.IndexFileName)); err != nil {
					t.Errorf("LoadIndex: %v", err)
				}
			})
		}
	}
}

func TestSplitKeysAreDistinct(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input, _ := writeInput(t, dir, "input.bin", 1024)

	opts := archive.DefaultOptions()
	opts.ChunkSize = 64

	splitter, err := archive.NewSplitter(opts, quietLogger())
	if err != nil {
		t.Fatal(err)
	}

	res, err := splitter.Split(input, filepath.Join(dir, "out"))
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[string]bool)

	for ordinal, key := range res.Index.Keys {
		if seen[key] {
			t.Errorf("key of fragment %d reused", ordinal)
		}

		seen[key] = true
	}
}

func TestCompressedSplitCutsExactChunks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input, _ := writeInput(t, dir, "noise.bin", 10_000)
	out := filepath.Join(dir, "out")

	opts := archive.DefaultOptions()
	opts.ChunkSize = 1000
	opts.Compress = true

	splitter, err := archive.NewSplitter(opts, quietLogger())
	if err != nil {
		t.Fatal(err)
	}

	res, err := splitter.Split(input, out)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	// Random input does not compress, so there is at least one full fragment.
	if res.Index.Chunks < 10 || !res.Index.Compressed {
		t.Fatalf("index = chunks %d compressed %v", res.Index.Chunks, res.Index.Compressed)
	}

	for ordinal := 1; ordinal < res.Index.Chunks; ordinal++ {
		framed := mustRead(t, filepath.Join(out, archive.FragmentName(ordinal)))

		plaintext, err := encryption.Decrypt(framed, res.Index.Keys[ordinal])
		if err != nil {
			t.Fatalf("fragment %d: %v", ordinal, err)
		}

		if len(plaintext) != 1000 {
			t.Errorf("fragment %d holds %d bytes, want 1000", ordinal, len(plaintext))
		}
	}
}

func TestNewSplitterRejectsInvalidOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*archive.Options)
	}{
		{name: "zero chunk", modify: func(o *archive.Options) { o.ChunkSize = 0 }},
		{name: "negative chunk", modify: func(o *archive.Options) { o.ChunkSize = -1 }},
		{name: "short key", modify: func(o *archive.Options) { o.KeyLength = 16 }},
		{name: "level too high", modify: func(o *archive.Options) { o.Compress = true; o.Level = 10 }},
		{name: "level too low", modify: func(o *archive.Options) { o.Compress = true; o.Level = -3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := archive.DefaultOptions()
			tt.modify(&opts)

			if _, err := archive.NewSplitter(opts, quietLogger()); !errors.Is(err, archive.ErrConfig) {
				t.Errorf("NewSplitter error = %v, want ErrConfig", err)
			}
		})
	}
}

func TestSplitMissingInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	splitter, err := archive.NewSplitter(archive.DefaultOptions(), quietLogger())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := splitter.Split(filepath.Join(dir, "absent"), filepath.Join(dir, "out")); !errors.Is(err, archive.ErrIO) {
		t.Errorf("Split error = %v, want ErrIO", err)
	}
}
