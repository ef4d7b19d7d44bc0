package buildclean

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// RemoveFunc deletes the directory tree at path.
type RemoveFunc func(path string) error

// Failure records a project that could not be removed.
type Failure struct {
	// Path is the directory that was not removed.
	Path string `json:"path"`
	// Error is the message of the underlying error.
	Error string `json:"error"`

	err error
}

// Err returns the underlying removal error.
func (f Failure) Err() error {
	return f.err
}

// Removal is the outcome of removing a set of projects.
type Removal struct {
	// Removed lists the projects that were deleted.
	Removed []Project `json:"removed"`
	// Failed lists the projects that could not be deleted.
	Failed []Failure `json:"failed"`
}

// Err returns nil if every removal succeeded, otherwise an error naming the failures.
func (r *Removal) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}

	paths := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		paths = append(paths, f.Path)
	}

	return fmt.Errorf("failed to remove %d project(s): %s", len(r.Failed), strings.Join(paths, ", "))
}

// Remove deletes every project path using fn, or os.RemoveAll if fn is nil.
// A failed removal never stops the others; failures are collected in input order.
func Remove(ctx context.Context, projects []Project, workers int, fn RemoveFunc) *Removal {
	if fn == nil {
		fn = os.RemoveAll
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	errs := make([]error, len(projects))

	var g errgroup.Group

	g.SetLimit(workers)

	for i, p := range projects {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err

				return nil
			}

			errs[i] = fn(p.Path)

			return nil
		})
	}

	_ = g.Wait()

	removal := &Removal{
		Removed: make([]Project, 0, len(projects)),
		Failed:  make([]Failure, 0),
	}

	for i, p := range projects {
		if errs[i] != nil {
			removal.Failed = append(removal.Failed, Failure{Path: p.Path, Error: errs[i].Error(), err: errs[i]})

			continue
		}

		removal.Removed = append(removal.Removed, p)
	}

	return removal
}
