package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/buildclean/internal/buildclean"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON outputs the report in JSON format.
func PrintJSON(report *buildclean.Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintPaths outputs one selected build output path per line.
func PrintPaths(report *buildclean.Report, writer io.Writer) error {
	for _, p := range report.Projects {
		if _, err := fmt.Fprintln(writer, p.Path); err != nil {
			return err
		}
	}

	return nil
}

// PrintTable outputs the selected projects in human-readable format.
func PrintTable(report *buildclean.Report, writer io.Writer) error {
	if len(report.Projects) == 0 {
		_, err := fmt.Fprintln(writer, "No matching folders found, returning")

		return err
	}

	if _, err := fmt.Fprintf(writer, "%d projects:\n", len(report.Projects)); err != nil {
		return err
	}

	for _, p := range report.Projects {
		if _, err := fmt.Fprintf(writer, "\t%s\n", p); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "\nTotal size:\t%s (%d bytes)\n",
		humanize.IBytes(uint64(report.TotalBytes)), report.TotalBytes) //nolint:gosec // Sizes are never negative
	fmt.Fprintf(w, "Scanned:\t%d directories, %d candidates\n", report.Scanned, report.Candidates)

	if report.ErrorCount > 0 {
		fmt.Fprintf(w, "Skipped:\t%d unreadable\n", report.ErrorCount)
	}

	fmt.Fprintf(w, "Elapsed:\t%v\n", report.Elapsed)

	return w.Flush()
}

// PrintRemoval outputs the outcome of a removal, successes to out and failures to errOut.
func PrintRemoval(removal *buildclean.Removal, out, errOut io.Writer) error {
	if len(removal.Failed) == 0 {
		_, err := fmt.Fprintln(out, "Projects removed!")

		return err
	}

	fmt.Fprintf(out, "Removed %d projects\n", len(removal.Removed))

	w := tabwriter.NewWriter(errOut, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "Failed to remove %d projects:\n", len(removal.Failed))

	for _, f := range removal.Failed {
		fmt.Fprintf(w, "\t\"%s\":\t%s\n", f.Path, f.Error)
	}

	return w.Flush()
}
