package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile creates a file with contents inside dir, creating parents as needed.
func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

// TestWriteAndList archives a small tree and checks entry names are
// root-relative, slash-separated and sorted.
func TestWriteAndList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root := filepath.Join(dir, "tree")
	writeFile(t, root, "beta.pem", "beta")
	writeFile(t, root, "alpha.pem", "alpha")
	writeFile(t, root, "sub/gamma.pem", "gamma")

	archive := filepath.Join(dir, "tree.zip")
	require.NoError(t, Write(archive, root))

	names, err := List(archive)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha.pem", "beta.pem", "sub/gamma.pem"}, names)
}

// TestWriteReproducible ensures two archives of the same tree are byte-identical.
func TestWriteReproducible(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root := filepath.Join(dir, "tree")
	writeFile(t, root, "one.der", "first")
	writeFile(t, root, "two.der", "second")

	first := filepath.Join(dir, "first.zip")
	second := filepath.Join(dir, "second.zip")
	require.NoError(t, Write(first, root))
	require.NoError(t, Write(second, root))

	firstBytes, err := os.ReadFile(first)
	require.NoError(t, err)

	secondBytes, err := os.ReadFile(second)
	require.NoError(t, err)
	require.Equal(t, firstBytes, secondBytes)
}

// TestReadEntry extracts a single entry and errors on unknown names.
func TestReadEntry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root := filepath.Join(dir, "tree")
	writeFile(t, root, "cert.pem", "contents")

	archive := filepath.Join(dir, "tree.zip")
	require.NoError(t, Write(archive, root))

	contents, err := ReadEntry(archive, "cert.pem")
	require.NoError(t, err)
	require.Equal(t, []byte("contents"), contents)

	_, err = ReadEntry(archive, "missing.pem")
	require.ErrorIs(t, err, errEntryNotFound)
}

// TestWriteMissingRoot fails when the source tree does not exist.
func TestWriteMissingRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	err := Write(filepath.Join(dir, "out.zip"), filepath.Join(dir, "nope"))
	require.Error(t, err)
}

// TestWriteEmptyTree produces a valid archive with no entries.
func TestWriteEmptyTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root := filepath.Join(dir, "tree")
	require.NoError(t, os.MkdirAll(root, 0o755))

	archive := filepath.Join(dir, "tree.zip")
	require.NoError(t, Write(archive, root))

	names, err := List(archive)
	require.NoError(t, err)
	require.Empty(t, names)
}
