package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/buildclean/internal/buildclean"
)

func logic(ctx context.Context, options buildclean.Options, stdout, stderr io.Writer) error {
	output := strings.ToLower(options.Output)

	enableProgress := output == "table" &&
		!options.Debug &&
		stderr == os.Stderr &&
		isatty.IsTerminal(os.Stderr.Fd())

	// Simple progress callback that prints directly to stderr
	var progressHook func(dirs, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		progressHook = func(dirs, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d directories, %s measured",
				dirs, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	report, err := buildclean.Run(ctx, options, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	if options.Remove && len(report.Projects) > 0 {
		report.Removal = buildclean.Remove(ctx, report.Projects, options.Workers, nil)
	}

	switch output {
	case "json":
		err = PrintJSON(report, stdout)
	case "table":
		err = PrintTable(report, stdout)
		if err == nil && report.Removal != nil {
			err = PrintRemoval(report.Removal, stdout, stderr)
		}
	case "paths":
		err = PrintPaths(report, stdout)
		if err == nil && report.Removal != nil {
			err = PrintRemoval(report.Removal, stderr, stderr)
		}
	default:
		return fmt.Errorf("unknown output format: %s", options.Output)
	}

	if err != nil {
		return err
	}

	if report.Removal != nil {
		return report.Removal.Err()
	}

	return nil
}
