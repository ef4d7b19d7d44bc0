package buildclean

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paths(projects []Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Path)
	}

	sort.Strings(out)

	return out
}

func TestScan_FindsProjectAmongPlainDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	target := cargoProject(t, root, "A")
	mkdir(t, root, "B")

	const (
		files = 50
		total = 2 * MiB
	)

	per := total / files
	for i := range files - 1 {
		writeSize(t, target, fmt.Sprintf("debug/deps/f%02d.o", i), per)
	}

	writeSize(t, target, "debug/last.o", total-per*(files-1))

	projects, err := Scan(context.Background(), root, 1)
	require.NoError(t, err)

	require.Len(t, projects, 1)
	assert.Equal(t, target, projects[0].Path)
	assert.Equal(t, int64(total), projects[0].Bytes)
	assert.Equal(t, uint64(2), projects[0].SizeMB)
}

func TestScan_DepthBound(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := cargoProject(t, root, "group/app")

	projects, err := Scan(context.Background(), root, 1)
	require.NoError(t, err)
	assert.Empty(t, projects)

	projects, err = Scan(context.Background(), root, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{nested}, paths(projects))
}

func TestScan_DepthZeroInspectsRootOnly(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	own := cargoProject(t, root, ".")
	cargoProject(t, root, "child")

	projects, err := Scan(context.Background(), root, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{own}, paths(projects))

	projects, err = Scan(context.Background(), root, 1)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestScan_MixedProjectTypes(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cargo := cargoProject(t, root, "engine")
	unity := unityProject(t, root, "game")
	write(t, root, "docs/README.md", "# docs")
	write(t, root, "notes.txt", "not a directory")
	write(t, root, "half/Cargo.toml", "")

	projects, err := Scan(context.Background(), root, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{cargo, unity}, paths(projects))

	kinds := map[string]string{}
	for _, p := range projects {
		kinds[p.Path] = p.Kind
	}

	assert.Equal(t, "cargo", kinds[cargo])
	assert.Equal(t, "unity", kinds[unity])
}

func TestScan_ResultIndependentOfVisitOrder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	for i := range 12 {
		target := cargoProject(t, root, fmt.Sprintf("p%02d", i))
		writeSize(t, target, "out.bin", i*1024)
	}

	mkdir(t, root, "plain")

	sorted, err := Scan(context.Background(), root, 1)
	require.NoError(t, err)
	require.Len(t, sorted, 12)

	s := scanner{root: root, maxDepth: 1, workers: 3}

	dirs, err := s.collectDirs(context.Background())
	require.NoError(t, err)

	for seed := range uint64(5) {
		shuffled := slices.Clone(dirs)
		rand.New(rand.NewPCG(seed, seed+1)).Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got, err := s.inspectAll(context.Background(), shuffled)
		require.NoError(t, err)

		assert.ElementsMatch(t, sorted, got, "seed %d", seed)
	}
}

func TestScan_RootErrors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	file := write(t, root, "file.txt", "x")

	_, err := Scan(context.Background(), filepath.Join(root, "missing"), 1)
	require.ErrorIs(t, err, ErrPathNotFound)

	_, err = Scan(context.Background(), file, 1)
	require.ErrorIs(t, err, ErrNotADirectory)

	_, err = Scan(context.Background(), root, -1)
	require.ErrorIs(t, err, ErrInvalidDepth)
}

func TestScan_UnreadableDirectoryDoesNotAbort(t *testing.T) {
	skipIfRoot(t)

	root := t.TempDir()
	target := cargoProject(t, root, "ok")
	cargoProject(t, root, "locked")

	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	projects, err := Scan(context.Background(), root, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{target}, paths(projects))
}

func TestScan_Cancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cargoProject(t, root, "app")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scan(ctx, root, 1)
	require.Error(t, err)
}

func TestCalculateDepth(t *testing.T) {
	t.Parallel()

	root := filepath.Join("work", "src")

	assert.Equal(t, 0, calculateDepth(root, root))
	assert.Equal(t, 1, calculateDepth(filepath.Join(root, "a"), root))
	assert.Equal(t, 2, calculateDepth(filepath.Join(root, "a", "b"), root))
	assert.Equal(t, 1, calculateDepth("./a", "."))
}
