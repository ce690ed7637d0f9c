package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/gosplit/internal/config"
	"github.com/idelchi/gosplit/internal/logging"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling. Settings resolve from
// defaults, an optional config file, GOSPLIT_* environment variables and flags, in
// increasing precedence.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version, readConfigFile)

	root.Use = "gosplit [flags] command [flags]"
	root.Short = "Split files into encrypted fragments and join them back"
	root.Long = `Splits a file into fixed-size fragments, each encrypted with AES-256-CBC under its
own random key, and writes an index.json binding the fragments to their keys.
Joining verifies that every fragment and key is present before writing anything.`

	root.PersistentFlags().String("config", "", "Path to a configuration file (json, yaml or toml)")
	root.PersistentFlags().BoolP("show", "s", false, "Show the configuration and exit")
	root.PersistentFlags().BoolP("quiet", "q", false, "Only log warnings and errors")
	root.PersistentFlags().String("log-format", cfg.LogFormat, "Log format: auto, text or json")
	root.PersistentFlags().Bool("stats", false, "Print statistics when done")
	root.PersistentFlags().StringP("input", "i", cfg.Input, "Input file or directory")
	root.PersistentFlags().StringP("output", "o", cfg.Output, "Output directory")

	root.AddCommand(
		NewSplitCommand(cfg),
		NewJoinCommand(cfg),
		NewCheckCommand(cfg),
		NewKeygenCommand(cfg),
	)

	return root
}

// readConfigFile merges the file named by --config below the environment and flags.
func readConfigFile(_ *cobra.Command, _ []string) error {
	file := viper.GetString("config")
	if file == "" {
		return nil
	}

	viper.SetConfigFile(file)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %q: %w", file, err)
	}

	return nil
}

// preRun returns a PreRunE handler that unmarshals the bound configuration into cfg
// and validates it. With --show, it prints the configuration and stops with
// cobraext.ErrExitGracefully.
func preRun(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) error {
		return cobraext.Validate(cfg, cfg)
	}
}

// run returns a RunE handler calling fn with a logger on the command's error stream.
func run(cfg *config.Config, fn func(*cobra.Command, *slog.Logger) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return fn(cmd, logging.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.Quiet))
	}
}
