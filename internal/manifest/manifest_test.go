package manifest

import (
	"crypto/sha512"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pqckit/cert-submission/internal/domain/submission"
)

// TestChecksum verifies the encoding matches a directly computed SHA-512 digest.
func TestChecksum(t *testing.T) {
	t.Parallel()

	contents := []byte("certificate body")
	digest := sha512.Sum512(contents)

	got, err := Checksum(contents)
	require.NoError(t, err)
	require.Equal(t, base64.StdEncoding.EncodeToString(digest[:]), got)
}

// TestFileChecksum hashes a file on disk and compares with the in-memory result.
func TestFileChecksum(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cert.pem")
	require.NoError(t, os.WriteFile(path, []byte("pem bytes"), 0o644))

	fromFile, err := FileChecksum(path)
	require.NoError(t, err)

	fromBytes, err := Checksum([]byte("pem bytes"))
	require.NoError(t, err)
	require.Equal(t, fromBytes, fromFile)

	_, err = FileChecksum(filepath.Join(dir, "missing.pem"))
	require.Error(t, err)
}

// TestBuildSaveLoadRoundtrip builds a manifest over a directory, persists it
// and loads it back unchanged.
func TestBuildSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	merge := filepath.Join(dir, "merge")
	require.NoError(t, os.MkdirAll(filepath.Join(merge, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(merge, "a.pem"), []byte("aaa"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(merge, "b.pem"), []byte("bbb"), 0o644))

	m, err := Build(submission.VersionR3, merge)
	require.NoError(t, err)
	require.Equal(t, "r3", m.Version)
	require.Equal(t, ".pem", m.Extension)
	require.Equal(t, "artifacts_r3_certs.zip", m.Archive)

	// Subdirectories are not part of a merge set and are ignored.
	require.Len(t, m.Files, 2)

	expected, err := Checksum([]byte("aaa"))
	require.NoError(t, err)
	require.Equal(t, expected, m.Files["a.pem"])

	path := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, Save(path, m))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, m, loaded)
}

// TestSaveNil rejects a nil manifest.
func TestSaveNil(t *testing.T) {
	t.Parallel()

	err := Save(filepath.Join(t.TempDir(), "manifest.yaml"), nil)
	require.ErrorIs(t, err, errManifestIsNotSet)
}

// TestLoadMissing fails when the manifest file does not exist.
func TestLoadMissing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
