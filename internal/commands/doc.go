// Package commands provides the command-line interface for the gosplit tool.
//
// It implements commands for:
//   - splitting a file into encrypted fragments
//   - joining fragments back into the original file
//   - checking an archive without writing
//   - generating fragment keys
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
