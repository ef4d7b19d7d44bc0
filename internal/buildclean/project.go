package buildclean

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"
)

// MiB is the number of bytes in one megabyte as reported by SizeMB.
const MiB = 1024 * 1024

// TimeLayout is the timestamp layout used when printing projects.
const TimeLayout = "2006-01-02 15:04:05"

// Project is a point-in-time measurement of one build-output directory.
type Project struct {
	// Path is the measured build-output directory.
	Path string `json:"path"`
	// Kind is the project type that produced Path.
	Kind string `json:"kind"`
	// Root is the project root containing Path.
	Root string `json:"root"`
	// Bytes is the aggregate size of all files under Path.
	Bytes int64 `json:"bytes"`
	// SizeMB is Bytes in whole megabytes, rounded down.
	SizeMB uint64 `json:"size_mb"`
	// LastModified is the most recent modification time of Path's direct children.
	LastModified time.Time `json:"last_modified"`
}

// String renders the project as `"<path>": <size> MB, <timestamp>`.
func (p Project) String() string {
	return fmt.Sprintf("\"%s\": %d MB, %s", p.Path, p.SizeMB, p.LastModified.UTC().Format(TimeLayout))
}

// Measure builds a Project for a classified build-output directory.
// The result is a snapshot; measure again for fresh values.
func Measure(m Match) (Project, error) {
	return measure(m, nil)
}

func measure(m Match, c *collector) (Project, error) {
	info, err := os.Stat(m.Output)
	if err != nil {
		return Project{}, fmt.Errorf("accessing build output %q: %w", m.Output, err)
	}

	if !info.IsDir() {
		return Project{}, fmt.Errorf("build output %q is not a directory", m.Output)
	}

	modified, err := lastModified(m.Output, info.ModTime())
	if err != nil {
		return Project{}, err
	}

	size, err := dirSize(m.Output, c)
	if err != nil {
		return Project{}, err
	}

	return Project{
		Path:         m.Output,
		Kind:         m.Kind,
		Root:         m.Root,
		Bytes:        size,
		SizeMB:       uint64(size) / MiB, //nolint:gosec // Size is never negative
		LastModified: modified,
	}, nil
}

// lastModified returns the newest modification time among the direct children
// of dir, or fallback if dir has none or cannot be listed.
func lastModified(dir string, fallback time.Time) (time.Time, error) {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		return fallback, nil //nolint:nilerr // Unlistable directories use their own timestamp
	}

	var newest time.Time

	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return time.Time{}, fmt.Errorf("reading metadata of %q: %w", filepath.Join(dir, entry.Name()), err)
		}

		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}

	return newest, nil
}

// dirSize sums the sizes of all regular files below dir.
// Entries that cannot be read are skipped.
func dirSize(dir string, c *collector) (int64, error) {
	var total atomic.Int64

	conf := &fastwalk.Config{
		Follow: false,
	}

	//nolint:varnamelen // d is standard for DirEntry
	err := fastwalk.Walk(conf, dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Intentionally skip errors during walk
		}

		if !d.Type().IsRegular() {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // Intentionally skip errors during walk
		}

		total.Add(fileInfo.Size())
		c.addBytes(fileInfo.Size())

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("measuring %q: %w", dir, err)
	}

	return total.Load(), nil
}
