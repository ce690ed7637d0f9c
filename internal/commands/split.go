package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/idelchi/gosplit/internal/config"
	"github.com/idelchi/gosplit/internal/logic"
)

// NewSplitCommand creates a new cobra command for the split subcommand.
func NewSplitCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split [flags]",
		Short: "Split a file into encrypted fragments",
		Long: `Splits the input file (or the single file inside the input directory) into
encrypted fragments written to the output directory, which must be empty.`,
		Example: `  gosplit split -i movie.mkv -o fragments
  gosplit split -i inbox -o fragments --compress --chunk-size 8MiB`,
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg),
		RunE: run(cfg, func(_ *cobra.Command, logger *slog.Logger) error {
			return logic.RunSplit(cfg, logger)
		}),
	}

	cmd.Flags().StringP("chunk-size", "c", cfg.ChunkSize, "Bytes per fragment, e.g. 24MiB or 5MB")
	cmd.Flags().String("safe-size", cfg.SafeSize, "Smallest chunk size accepted")
	cmd.Flags().Int("key-length", cfg.KeyLength, "Length of each fragment key")
	cmd.Flags().BoolP("compress", "z", false, "Compress with zlib before chunking")
	cmd.Flags().IntP("level", "l", cfg.Level, "zlib compression level, -2 (Huffman only) to 9")

	return cmd
}
