// Command buildclean finds and removes old build output directories.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/idelchi/buildclean/internal/cli"
)

// version is set by ldflags during build.
//
//nolint:gochecknoglobals // Set at build time
var version = "unknown - unofficial build"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.New(version).Execute(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
