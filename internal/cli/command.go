package cli

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/buildclean/internal/buildclean"
	"github.com/idelchi/buildclean/internal/integration"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

//nolint:gochecknoglobals // Config constant
var allowedOutputs = []string{"table", "json", "paths"}

// flags holds raw flag values that need conversion into buildclean.Options.
type flags struct {
	sinceEditHours uint64
}

func bindFlags(fs *pflag.FlagSet, options *buildclean.Options, raw *flags) {
	fs.IntVarP(&options.Depth, "depth", "d", 1, "Directory search depth (0=path only)")
	fs.Uint64Var(&options.MinSizeMB, "minimal-size", 1, "Minimal size of build output in MB (exclusive)")
	fs.Uint64Var(&raw.sinceEditHours, "time-since-edit", 0, "Minimal time since last edit in hours")
	fs.BoolVarP(&options.Remove, "remove", "r", false, "Remove build outputs matching the requirements")
	fs.StringVarP(&options.Output, "output", "o", "table", "Output format: table, json or paths")
	fs.IntVarP(&options.Workers, "jobs", "j", runtime.NumCPU(), "Number of parallel workers")
	fs.BoolVar(&options.Debug, "debug", false, "Enable debug output")
	fs.BoolVarP(&options.Version, "version", "v", false, "Show version and exit")
	fs.BoolVarP(&options.Integration, "init", "i", false, "Output init script for shell usage")

	fs.SortFlags = false
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var (
		options buildclean.Options
		raw     flags
	)

	cmd := &cobra.Command{
		Use:   "buildclean [flags] [path]",
		Short: "Find and remove old build output directories",
		Long: heredoc.Doc(`
			buildclean finds build output directories of known projects and reports their size.

			By default it only lists matching directories, use --remove to delete them.

			Recognized projects:
			  Cargo.toml                              -> target/
			  ProjectSettings/ProjectSettings.asset   -> Library/

			Positional Arguments:
			  path                   Directory to scan. Defaults to current directory if not specified.

			The '-I' flag is available if using the integration script for shell usage.
			It will then pipe the found directories to 'fzf' and remove the selected ones.
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if options.Version {
				fmt.Fprintln(cmd.OutOrStdout(), c.version)

				return nil
			}

			if options.Integration {
				rendered, err := integration.Render()
				if err != nil {
					return fmt.Errorf("rendering integration script: %w", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), rendered)

				return nil
			}

			if !slices.Contains(allowedOutputs, options.Output) {
				return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
			}

			if options.Depth < 0 {
				return errors.New("depth cannot be negative")
			}

			if len(args) == 0 {
				options.Path = "."
			} else {
				options.Path = args[0]
			}

			options.SinceEdit = time.Duration(raw.sinceEditHours) * time.Hour //nolint:gosec // Hours fit in a Duration

			return logic(cmd.Context(), options, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	bindFlags(cmd.Flags(), &options, &raw)

	return cmd
}

// Execute runs the CLI with the process arguments. Cancelling ctx stops a running scan.
func (c CLI) Execute(ctx context.Context) error {
	return c.Command().ExecuteContext(ctx)
}
