package buildclean

import (
	"os"
	"path/filepath"
)

// Marker describes one recognized project type.
type Marker struct {
	// Kind is a short name for the project type.
	Kind string
	// File is the marker path relative to the project root, slash separated.
	File string
	// Output is the name of the build-output directory inside the project root.
	Output string
}

// Markers lists the recognized project types in evaluation order.
//
//nolint:gochecknoglobals // Config constant
var Markers = []Marker{
	{Kind: "cargo", File: "Cargo.toml", Output: "target"},
	{Kind: "unity", File: "ProjectSettings/ProjectSettings.asset", Output: "Library"},
}

// Match is a positive classification result.
type Match struct {
	// Kind is the project type that matched.
	Kind string
	// Root is the project root directory.
	Root string
	// Output is the build-output directory to measure.
	Output string
}

// Classify reports whether dir is the root of a known project with a present
// build-output directory. Unreadable directories never match.
func Classify(dir string) (Match, bool) {
	return classify(dir, Markers)
}

func classify(dir string, markers []Marker) (Match, bool) {
	f, err := os.Open(dir)
	if err != nil {
		return Match{}, false
	}

	_ = f.Close()

	for _, m := range markers {
		if !isFile(filepath.Join(dir, filepath.FromSlash(m.File))) {
			continue
		}

		// The first recognized type decides, even without output to measure.
		output := filepath.Join(dir, m.Output)
		if !isDir(output) {
			return Match{}, false
		}

		return Match{Kind: m.Kind, Root: dir, Output: output}, true
	}

	return Match{}, false
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

// isDir reports whether path is a real directory, not a symlink to one.
func isDir(path string) bool {
	info, err := os.Lstat(path)

	return err == nil && info.IsDir()
}
