// Command gosplit splits files into encrypted fragments and joins them back.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/gosplit/internal/commands"
	"github.com/idelchi/gosplit/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown - unofficial build"

func main() {
	cfg := config.Default()

	switch err := commands.NewRootCommand(cfg, version).Execute(); {
	case errors.Is(err, cobraext.ErrExitGracefully):
	case err != nil:
		fmt.Fprintln(os.Stderr, err.Error())

		os.Exit(1)
	}
}
