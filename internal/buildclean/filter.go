package buildclean

import (
	"cmp"
	"slices"
	"time"
)

// Criteria selects projects worth removing.
type Criteria struct {
	// MinSizeMB is the exclusive lower bound on SizeMB.
	MinSizeMB uint64 `json:"min_size_mb"`
	// Cutoff is the exclusive upper bound on LastModified.
	Cutoff time.Time `json:"cutoff"`
}

// CutoffFor returns the modification cutoff for projects untouched for at least sinceEdit.
func CutoffFor(now time.Time, sinceEdit time.Duration) time.Time {
	return now.Add(-sinceEdit)
}

// Filter returns the projects larger than MinSizeMB and last modified before Cutoff.
func Filter(projects []Project, c Criteria) []Project {
	selected := make([]Project, 0, len(projects))

	for _, p := range projects {
		if p.SizeMB > c.MinSizeMB && p.LastModified.Before(c.Cutoff) {
			selected = append(selected, p)
		}
	}

	return selected
}

// SortBySize orders projects by SizeMB, largest first. Equal sizes keep their order.
func SortBySize(projects []Project) {
	slices.SortStableFunc(projects, func(a, b Project) int {
		return cmp.Compare(b.SizeMB, a.SizeMB)
	})
}

// TotalBytes sums the sizes of projects.
func TotalBytes(projects []Project) int64 {
	var total int64

	for _, p := range projects {
		total += p.Bytes
	}

	return total
}
