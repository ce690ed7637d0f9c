// Package logic wires configuration to the archive operations.
package logic

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/gosplit/internal/archive"
	"github.com/idelchi/gosplit/internal/config"
	"github.com/idelchi/gosplit/internal/encryption"
	"github.com/idelchi/gosplit/internal/workdir"
)

// RunSplit splits the input file into the (empty or new) output directory.
func RunSplit(cfg *config.Config, logger *slog.Logger) error {
	start := time.Now()

	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	splitter, err := archive.NewSplitter(opts, logger)
	if err != nil {
		return err
	}

	input, err := workdir.ResolveInput(cfg.Input)
	if err != nil {
		return fmt.Errorf("%w: resolving input: %w", archive.ErrIO, err)
	}

	if err := workdir.RequireEmpty(cfg.Output); err != nil {
		return fmt.Errorf("%w: preparing output: %w", archive.ErrIO, err)
	}

	logger.Info("splitting", "input", input, "output", cfg.Output, "compress", opts.Compress)

	res, err := splitter.Split(input, cfg.Output)
	if err != nil {
		return fmt.Errorf("splitting %q: %w", input, err)
	}

	if cfg.Stats {
		printStats(os.Stderr, []stat{
			{"Chunks", res.Index.Chunks},
			{"Input", humanize.IBytes(uint64(res.InputSize))},   //nolint:gosec // sizes are non-negative
			{"Output", humanize.IBytes(uint64(res.OutputSize))}, //nolint:gosec // sizes are non-negative
			{"Duration", time.Since(start).Round(time.Millisecond)},
		})
	}

	return nil
}

// RunJoin reconstructs the archive in the input directory as <output>/<name>.
func RunJoin(cfg *config.Config, logger *slog.Logger) error {
	start := time.Now()

	idx, err := loadIndex(cfg, logger)
	if err != nil {
		return err
	}

	if err := workdir.EnsureDir(cfg.Output); err != nil {
		return fmt.Errorf("%w: preparing output: %w", archive.ErrIO, err)
	}

	destination := filepath.Join(cfg.Output, idx.Name)

	size, err := archive.NewJoiner(logger).Join(cfg.Input, destination, idx)
	if err != nil {
		return fmt.Errorf("joining %q: %w", cfg.Input, err)
	}

	if cfg.Stats {
		printStats(os.Stderr, []stat{
			{"Chunks", idx.Chunks},
			{"Output", humanize.IBytes(uint64(size))}, //nolint:gosec // sizes are non-negative
			{"Duration", time.Since(start).Round(time.Millisecond)},
		})
	}

	return nil
}

// RunCheck decrypts every fragment of the archive in the input directory without
// writing anything.
func RunCheck(cfg *config.Config, logger *slog.Logger) error {
	idx, err := loadIndex(cfg, logger)
	if err != nil {
		return err
	}

	size, err := archive.NewJoiner(logger).Check(cfg.Input, idx)
	if err != nil {
		return fmt.Errorf("checking %q: %w", cfg.Input, err)
	}

	logger.Info("archive intact", "file", idx.Name, "chunks", idx.Chunks, "size", humanize.IBytes(uint64(size))) //nolint:gosec

	return nil
}

// RunKeygen writes one freshly generated fragment key to w.
func RunKeygen(cfg *config.Config, w io.Writer) error {
	key, err := encryption.GenerateKey(cfg.KeyLength)

	switch {
	case errors.Is(err, encryption.ErrKeySize):
		return fmt.Errorf("%w: %w", archive.ErrConfig, err)
	case err != nil:
		return fmt.Errorf("generating key: %w", err)
	}

	if _, err := fmt.Fprintln(w, key); err != nil {
		return fmt.Errorf("writing key: %w", err)
	}

	return nil
}

// loadIndex reads and normalizes the index of the archive in the input directory.
func loadIndex(cfg *config.Config, logger *slog.Logger) (*archive.Index, error) {
	idx, err := archive.LoadIndex(filepath.Join(cfg.Input, archive.IndexFileName))
	if err != nil {
		return nil, err
	}

	if err := idx.Normalize(logger); err != nil {
		return nil, err
	}

	return idx, nil
}

type stat struct {
	label string
	value any
}

func printStats(w io.Writer, stats []stat) {
	fmt.Fprintf(w, "\nStats\n")

	for _, s := range stats {
		fmt.Fprintf(w, "  %-9s %v\n", s.label+":", s.value)
	}
}
