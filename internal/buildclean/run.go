package buildclean

import (
	"context"
	"time"
)

// Options configures a scan and CLI behavior.
type Options struct {
	// Path is the directory to scan.
	Path string
	// Depth is the maximum traversal depth (0=root only).
	Depth int
	// MinSizeMB is the exclusive minimum build-output size in megabytes.
	MinSizeMB uint64
	// SinceEdit is the minimum time since the last modification.
	SinceEdit time.Duration
	// Workers bounds concurrent classify and remove tasks (0=NumCPU).
	Workers int
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
	// Output represents output format (table, json or paths).
	Output string
	// Remove indicates whether matching build outputs are deleted.
	Remove bool
	// Version indicates whether to show version and exit.
	Version bool
	// Integration indicates whether to output integration script.
	Integration bool
}

// Report holds the selected projects of a scan.
type Report struct {
	// Root is the scanned directory.
	Root string `json:"root"`
	// Depth is the traversal depth used.
	Depth int `json:"depth"`
	// Criteria is the selection applied to the candidates.
	Criteria Criteria `json:"criteria"`
	// Projects are the selected projects, largest first.
	Projects []Project `json:"projects"`
	// TotalBytes is the combined size of the selected projects.
	TotalBytes int64 `json:"total_bytes"`
	// Candidates is the number of projects measured before selection.
	Candidates int `json:"candidates"`
	// Scanned is the number of directories visited.
	Scanned int64 `json:"scanned"`
	// ErrorCount is the number of candidates dropped during measurement.
	ErrorCount int64 `json:"error_count"`
	// Elapsed is the total time taken for the scan.
	Elapsed time.Duration `json:"elapsed"`
	// Removal is the outcome of deletion, if requested.
	Removal *Removal `json:"removal,omitempty"`
}

// Run scans opt.Path, keeps the projects matching opt.MinSizeMB and
// opt.SinceEdit and sorts them by size, largest first.
//
// The scan can be cancelled via ctx. Progress updates (directories visited,
// bytes measured) are sent to progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Report, error) {
	log := logger{enabled: opt.Debug}

	if opt.Path == "" {
		opt.Path = "."
	}

	start := time.Now()
	criteria := Criteria{
		MinSizeMB: opt.MinSizeMB,
		Cutoff:    CutoffFor(start, opt.SinceEdit),
	}

	log.printf("[debug]: root: %s, depth: %d\n", opt.Path, opt.Depth)
	log.printf("[debug]: minimal size: %d MB, modified before: %s\n", criteria.MinSizeMB, criteria.Cutoff.UTC().Format(TimeLayout))

	tally := &collector{}

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, tally, progressHook, opt.ProgressInterval)

	s := scanner{
		root:     opt.Path,
		maxDepth: opt.Depth,
		workers:  opt.Workers,
		log:      log,
		tally:    tally,
	}

	candidates, err := s.run(ctx)
	if err != nil {
		return nil, err
	}

	projects := Filter(candidates, criteria)
	SortBySize(projects)

	log.printf("[debug]: %d of %d candidates selected\n", len(projects), len(candidates))

	dirs, _, _, errs := tally.snapshot()

	return &Report{
		Root:       opt.Path,
		Depth:      opt.Depth,
		Criteria:   criteria,
		Projects:   projects,
		TotalBytes: TotalBytes(projects),
		Candidates: len(candidates),
		Scanned:    dirs,
		ErrorCount: errs,
		Elapsed:    time.Since(start),
	}, nil
}
