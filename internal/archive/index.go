package archive

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
)

const (
	// IndexFileName is the name of the index inside an archive directory.
	IndexFileName = "index.json"
	// UnknownName replaces an index name that is absent or unusable as a file name.
	UnknownName = "unknown_name"

	fragmentPrefix = "chunk"
)

// Index binds an archive's original file name to its fragments, their keys, and
// the compression mode. Keys are indexed by 1-based fragment ordinal.
type Index struct {
	Name       string         `json:"name"`
	Chunks     int            `json:"chunks"`
	Keys       map[int]string `json:"keys"`
	Compressed bool           `json:"compressed"`
}

// indexFile is the on-disk shape, accepting either spelling of the fragment count.
type indexFile struct {
	Name       string         `json:"name"`
	Chunks     int            `json:"chunks"`
	ChunkCount int            `json:"chunkCount"`
	Keys       map[int]string `json:"keys"`
	Compressed bool           `json:"compressed"`
}

// FragmentName returns the file name of the fragment with the given ordinal.
func FragmentName(ordinal int) string {
	return fragmentPrefix + strconv.Itoa(ordinal)
}

// newIndex starts an index for the file at inputPath.
func newIndex(inputPath string, compressed bool) *Index {
	return &Index{
		Name:       filepath.Base(inputPath),
		Keys:       make(map[int]string),
		Compressed: compressed,
	}
}

// LoadIndex reads and parses an index file. Comments and trailing commas are
// tolerated. A missing or unreadable file is an ErrIO, unparsable content an ErrFormat.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, ioError("reading index", path, err)
	}

	var raw indexFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing %q: %w", ErrFormat, path, err)
	}

	idx := &Index{
		Name:       raw.Name,
		Chunks:     raw.Chunks,
		Keys:       raw.Keys,
		Compressed: raw.Compressed,
	}

	if idx.Chunks == 0 {
		idx.Chunks = raw.ChunkCount
	}

	if idx.Keys == nil {
		idx.Keys = make(map[int]string)
	}

	return idx, nil
}

// Write serializes the index into dir as IndexFileName.
func (idx *Index) Write(dir string) error {
	data, err := json.Marshal(idx)
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}

	path := filepath.Join(dir, IndexFileName)

	const ownerReadWrite = 0o600

	if err := os.WriteFile(path, data, ownerReadWrite); err != nil {
		return ioError("writing index", path, err)
	}

	return nil
}

// Normalize checks the fields a join depends on. An absent or unusable name is
// replaced with UnknownName and reported through logger; a fragment count below
// one is an ErrFormat. Calling it again on a normalized index is a no-op.
func (idx *Index) Normalize(logger *slog.Logger) error {
	if idx == nil {
		return fmt.Errorf("%w: no index", ErrFormat)
	}

	switch name := safeName(idx.Name); {
	case name == "":
		logger.Warn("file name missing from index", "substitute", UnknownName)

		idx.Name = UnknownName
	case name != idx.Name:
		logger.Warn("index name is not a plain file name", "name", idx.Name, "using", name)

		idx.Name = name
	}

	if idx.Chunks < 1 {
		return fmt.Errorf("%w: chunk count %d is invalid (minimum 1)", ErrFormat, idx.Chunks)
	}

	return nil
}

// MissingFragments returns, in ascending order, every ordinal in 1..Chunks with no
// regular fragment file in dir.
func (idx *Index) MissingFragments(dir string) []int {
	var missing []int

	for ordinal := 1; ordinal <= idx.Chunks; ordinal++ {
		info, err := os.Stat(filepath.Join(dir, FragmentName(ordinal)))
		if err != nil || !info.Mode().IsRegular() {
			missing = append(missing, ordinal)
		}
	}

	return missing
}

// MissingKeys returns, in ascending order, every ordinal in 1..Chunks without a
// non-empty key. Keys for ordinals outside that range are ignored.
func (idx *Index) MissingKeys() []int {
	var missing []int

	for ordinal := 1; ordinal <= idx.Chunks; ordinal++ {
		if idx.Keys[ordinal] == "" {
			missing = append(missing, ordinal)
		}
	}

	return missing
}

// safeName reduces name to a single path element, or "" when nothing usable remains.
func safeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	base := filepath.Base(filepath.FromSlash(name))

	switch base {
	case ".", "..", string(filepath.Separator):
		return ""
	}

	return base
}
