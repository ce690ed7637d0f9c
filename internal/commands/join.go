package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/idelchi/gosplit/internal/config"
	"github.com/idelchi/gosplit/internal/logic"
)

// NewJoinCommand creates a new cobra command for the join subcommand.
func NewJoinCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "join [flags]",
		Short: "Reassemble fragments into the original file",
		Long: `Reads index.json from the input directory, verifies that every fragment and key
is present, and writes the original file into the output directory. An existing
file is never replaced.`,
		Example: "  gosplit join -i fragments -o restored",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg),
		RunE: run(cfg, func(_ *cobra.Command, logger *slog.Logger) error {
			return logic.RunJoin(cfg, logger)
		}),
	}
}
