package buildclean

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrPathNotFound is returned when the scan root does not exist.
	ErrPathNotFound = errors.New("path not found")
	// ErrNotADirectory is returned when the scan root is not a directory.
	ErrNotADirectory = errors.New("not a directory")
	// ErrInvalidDepth is returned for a negative traversal depth.
	ErrInvalidDepth = errors.New("depth cannot be negative")
)

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output to stderr if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// scanner holds the read-only configuration of one scan.
type scanner struct {
	root     string
	maxDepth int
	workers  int
	log      logger
	tally    *collector
}

// Scan walks root down to maxDepth and returns a Project for every directory
// classified as a known project with a present build-output directory.
// Depth 0 inspects root only, depth 1 also its direct children.
//
// Only a missing or non-directory root fails the scan; candidates that cannot
// be measured are dropped. The order of the result is unspecified.
func Scan(ctx context.Context, root string, maxDepth int) ([]Project, error) {
	s := scanner{root: root, maxDepth: maxDepth}

	return s.run(ctx)
}

// checkRoot validates that root exists and is a directory.
func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("accessing path %q: %w", root, ErrPathNotFound)
		}

		return fmt.Errorf("accessing path %q: %w", root, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path %q: %w", root, ErrNotADirectory)
	}

	return nil
}

func (s scanner) run(ctx context.Context) ([]Project, error) {
	if s.maxDepth < 0 {
		return nil, ErrInvalidDepth
	}

	if s.root == "" {
		s.root = "."
	}

	s.root = filepath.Clean(s.root)

	if err := checkRoot(s.root); err != nil {
		return nil, err
	}

	if s.workers <= 0 {
		s.workers = runtime.NumCPU()
	}

	dirs, err := s.collectDirs(ctx)
	if err != nil {
		return nil, err
	}

	s.log.printf("[debug]: %d directories within depth %d of %s\n", len(dirs), s.maxDepth, s.root)

	return s.inspectAll(ctx, dirs)
}

// collectDirs lists every directory from root down to maxDepth, in lexical order.
func (s scanner) collectDirs(ctx context.Context) ([]string, error) {
	dirs := []string{s.root}

	s.tally.addDir()

	if s.maxDepth == 0 {
		return dirs, nil
	}

	var mu sync.Mutex

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.printf("[debug]: error accessing path %s: %v\n", path, err)

			return nil // Silently skip errors
		}

		// Check cancellation periodically
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if !d.IsDir() {
			return nil
		}

		depth := calculateDepth(path, s.root)
		if depth == 0 {
			return nil
		}

		if depth > s.maxDepth {
			return filepath.SkipDir
		}

		mu.Lock()
		dirs = append(dirs, path)
		mu.Unlock()

		s.tally.addDir()

		if depth == s.maxDepth {
			return filepath.SkipDir
		}

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	slices.Sort(dirs[1:])

	return dirs, nil
}

// inspectAll classifies and measures every directory on a bounded worker pool.
// Each task owns one result slot, so no record accumulator is shared.
func (s scanner) inspectAll(ctx context.Context, dirs []string) ([]Project, error) {
	results := make([]*Project, len(dirs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, dir := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = s.inspect(dir)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	projects := make([]Project, 0, len(results))

	for _, p := range results {
		if p != nil {
			projects = append(projects, *p)
		}
	}

	return projects, nil
}

// inspect runs classify-then-measure for one directory.
func (s scanner) inspect(dir string) *Project {
	match, ok := Classify(dir)
	if !ok {
		return nil
	}

	s.tally.addCandidate()

	project, err := measure(match, s.tally)
	if err != nil {
		s.tally.addError()
		s.log.printf("[debug]: dropping %s project at %s: %v\n", match.Kind, match.Root, err)

		return nil
	}

	s.log.printf("[debug]: found %s project: %s\n", match.Kind, project)

	return &project
}

// calculateDepth returns the depth of a path relative to the root.
func calculateDepth(path, root string) int {
	relPath, err := filepath.Rel(root, path)
	if err != nil {
		relPath = strings.TrimPrefix(strings.TrimPrefix(path, root), string(filepath.Separator))
	}

	if relPath == "" || relPath == "." {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}
