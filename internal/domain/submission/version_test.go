package submission

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseVersion verifies accepted tags, case sensitivity and rejection of unknown values.
func TestParseVersion(t *testing.T) {
	t.Parallel()

	v, err := ParseVersion("r3")
	require.NoError(t, err)
	require.Equal(t, VersionR3, v)

	v, err = ParseVersion("r4")
	require.NoError(t, err)
	require.Equal(t, VersionR4, v)

	for _, tag := range []string{"", "r5", "R3", "r3 ", "pem"} {
		_, err = ParseVersion(tag)
		require.ErrorIs(t, err, ErrUnknownVersion, "tag %q", tag)
	}
}

// TestVersionExtension checks the version to encoding mapping.
func TestVersionExtension(t *testing.T) {
	t.Parallel()

	require.Equal(t, ".pem", VersionR3.Extension())
	require.Equal(t, ".der", VersionR4.Extension())
}

// TestVersionLayoutNames checks the directory and file names derived from a version.
func TestVersionLayoutNames(t *testing.T) {
	t.Parallel()

	require.Equal(t, "r3_certs", VersionR3.CertsDir())
	require.Equal(t, "artifacts_r3_certs", VersionR3.ArchiveStem())
	require.Equal(t, "artifacts_r4_certs.zip", VersionR4.ArchiveName())
	require.Equal(t, "artifacts_r4_certs.yaml", VersionR4.ManifestName())
}

// TestDefaultVersions ensures both rounds are packaged and r3 comes first.
func TestDefaultVersions(t *testing.T) {
	t.Parallel()

	require.Equal(t, []Version{VersionR3, VersionR4}, DefaultVersions())
}
