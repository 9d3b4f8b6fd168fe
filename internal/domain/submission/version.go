package submission

import (
	"errors"
	"fmt"
)

// Version identifies a submission round and the certificate encoding it uses.
type Version string

const (
	// VersionR3 packages PEM-encoded certificates.
	VersionR3 Version = "r3"
	// VersionR4 packages DER-encoded certificates.
	VersionR4 Version = "r4"
)

const (
	// IPDDirName holds certificates generated under initial-public-draft
	// object identifiers.
	IPDDirName = "ipd"
	// NonIPDDirName holds certificates generated under final object identifiers.
	NonIPDDirName = "non-ipd"
)

// ErrUnknownVersion is returned when a version tag is outside the known set.
var ErrUnknownVersion = errors.New("unknown submission version")

// ParseVersion validates a version tag. Matching is exact and case-sensitive.
func ParseVersion(s string) (Version, error) {
	switch Version(s) {
	case VersionR3, VersionR4:
		return Version(s), nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownVersion)
	}
}

// DefaultVersions returns every known version in packaging order.
func DefaultVersions() []Version {
	return []Version{VersionR3, VersionR4}
}

// String returns the version tag.
func (v Version) String() string {
	return string(v)
}

// Extension returns the filename suffix selected for this version,
// including the leading dot.
func (v Version) Extension() string {
	switch v {
	case VersionR3:
		return ".pem"
	case VersionR4:
		return ".der"
	default:
		return ""
	}
}

// CertsDir returns the name of the generated certificate tree for this version.
func (v Version) CertsDir() string {
	return string(v) + "_certs"
}

// ArchiveStem returns the base name shared by the merge directory,
// the archive and the manifest.
func (v Version) ArchiveStem() string {
	return "artifacts_" + string(v) + "_certs"
}

// ArchiveName returns the filename of the submission archive.
func (v Version) ArchiveName() string {
	return v.ArchiveStem() + ".zip"
}

// ManifestName returns the filename of the archive checksum manifest.
func (v Version) ManifestName() string {
	return v.ArchiveStem() + ".yaml"
}
