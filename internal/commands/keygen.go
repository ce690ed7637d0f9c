package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/idelchi/gosplit/internal/config"
	"github.com/idelchi/gosplit/internal/logic"
)

// NewKeygenCommand creates a new cobra command for the keygen subcommand.
func NewKeygenCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keygen [flags]",
		Aliases: []string{"gen"},
		Short:   "Print a random fragment key",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg),
		RunE: run(cfg, func(cmd *cobra.Command, _ *slog.Logger) error {
			return logic.RunKeygen(cfg, cmd.OutOrStdout())
		}),
	}

	cmd.Flags().Int("key-length", cfg.KeyLength, "Length of the key")

	return cmd
}
