// Package config holds the command-line configuration and its validation.
package config

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zlib"

	"github.com/idelchi/gosplit/internal/archive"
	"github.com/idelchi/gosplit/internal/encryption"
)

// Config holds every setting, whichever source it came from.
type Config struct {
	// Global flags
	Show      bool   `json:"-"          mapstructure:"show"`
	Quiet     bool   `json:"quiet"      mapstructure:"quiet"`
	LogFormat string `json:"log-format" mapstructure:"log-format" label:"--log-format" validate:"oneof=auto text json"`
	Stats     bool   `json:"stats"      mapstructure:"stats"`
	File      string `json:"config"     mapstructure:"config"`

	// Directories
	Input  string `json:"input"  mapstructure:"input"  label:"--input"  validate:"required"`
	Output string `json:"output" mapstructure:"output" label:"--output" validate:"required"`

	// Split flags
	ChunkSize string `json:"chunk-size" mapstructure:"chunk-size" label:"--chunk-size" validate:"bytesize,notbelow=SafeSize"`
	SafeSize  string `json:"safe-size"  mapstructure:"safe-size"  label:"--safe-size"  validate:"bytesize"`
	KeyLength int    `json:"key-length" mapstructure:"key-length" label:"--key-length" validate:"eq=32"`
	Compress  bool   `json:"compress"   mapstructure:"compress"`
	Level     int    `json:"level"      mapstructure:"level"      label:"--level"      validate:"min=-2,max=9"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		LogFormat: "auto",
		Input:     "input",
		Output:    "output",
		ChunkSize: "24MiB",
		SafeSize:  "1MiB",
		KeyLength: encryption.KeySize,
		Level:     zlib.DefaultCompression,
	}
}

// Display returns the value of the Show field.
func (c *Config) Display() bool {
	return c.Show
}

// Validate checks config against its struct tags, including the byte-size fields and
// the rule that the chunk size is not below the safe size. Failures wrap
// archive.ErrConfig.
func (c *Config) Validate(config any) error {
	validator, err := newValidator()
	if err != nil {
		return err
	}

	errs := validator.Validate(config)

	switch {
	case errs == nil:
		return nil
	case len(errs) == 1:
		return fmt.Errorf("%w: %w", archive.ErrConfig, errs[0])
	default:
		return fmt.Errorf("%w:\n%w", archive.ErrConfig, errors.Join(errs...))
	}
}

// ChunkBytes returns the chunk size in bytes.
func (c *Config) ChunkBytes() (int64, error) {
	return parseSize("chunk size", c.ChunkSize)
}

// SafeBytes returns the safe size in bytes.
func (c *Config) SafeBytes() (int64, error) {
	return parseSize("safe size", c.SafeSize)
}

// Options returns the split options described by the configuration.
func (c *Config) Options() (archive.Options, error) {
	chunk, err := c.ChunkBytes()
	if err != nil {
		return archive.Options{}, err
	}

	return archive.Options{
		ChunkSize: chunk,
		KeyLength: c.KeyLength,
		Compress:  c.Compress,
		Level:     c.Level,
	}, nil
}
