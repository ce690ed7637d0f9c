package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/idelchi/gosplit/internal/config"
	"github.com/idelchi/gosplit/internal/logic"
)

// NewCheckCommand creates a new cobra command for the check subcommand.
func NewCheckCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "check [flags]",
		Short:   "Verify that an archive can be joined, without writing",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg),
		RunE: run(cfg, func(_ *cobra.Command, logger *slog.Logger) error {
			return logic.RunCheck(cfg, logger)
		}),
	}
}
