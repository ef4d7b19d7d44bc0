package buildclean

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// write creates a file with the given content below root, creating parents.
func write(t *testing.T, root, rel, content string) string {
	t.Helper()

	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	return p
}

// writeSize creates a file of exactly size bytes below root.
func writeSize(t *testing.T, root, rel string, size int) string {
	t.Helper()

	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, make([]byte, size), 0o644))

	return p
}

// mkdir creates a directory below root.
func mkdir(t *testing.T, root, rel string) string {
	t.Helper()

	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(p, 0o755))

	return p
}

// touch sets the modification time of path.
func touch(t *testing.T, path string, at time.Time) {
	t.Helper()

	require.NoError(t, os.Chtimes(path, at, at))
}

// cargoProject lays out a Cargo project at rel with a target directory.
func cargoProject(t *testing.T, root, rel string) string {
	t.Helper()

	write(t, root, rel+"/Cargo.toml", "[package]\nname = \"demo\"\n")

	return mkdir(t, root, rel+"/target")
}

// unityProject lays out a Unity project at rel with a Library directory.
func unityProject(t *testing.T, root, rel string) string {
	t.Helper()

	write(t, root, rel+"/ProjectSettings/ProjectSettings.asset", "%YAML 1.1\n")

	return mkdir(t, root, rel+"/Library")
}

// skipIfRoot skips tests relying on permission denial.
func skipIfRoot(t *testing.T) {
	t.Helper()

	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
}
