package manifest

import (
	"crypto"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pqckit/cert-submission/internal/domain/submission"

	// Ensure SHA512 is available for checksum calculation.
	_ "crypto/sha512"
)

const (
	// DefaultChecksumFunction is used to calculate archived file hashes.
	DefaultChecksumFunction crypto.Hash = crypto.SHA512

	// DefaultFileMode is used when writing manifests to disk.
	DefaultFileMode os.FileMode = 0o644
)

var (
	errHashUnavailable  = errors.New("hash function unavailable")
	errManifestIsNotSet = errors.New("manifest is not set")
)

// Manifest describes the contents of one submission archive.
type Manifest struct {
	// Version is the submission version tag the archive was built for.
	Version string `yaml:"version"`
	// Extension is the filename suffix every archived file carries.
	Extension string `yaml:"extension"`
	// Archive is the filename of the archive this manifest describes.
	Archive string `yaml:"archive"`
	// Files maps archived filenames to their base64-encoded checksums.
	Files map[string]string `yaml:"files"`
}

// Build hashes every file directly under dir and assembles the manifest
// for the provided version.
func Build(ver submission.Version, dir string) (*Manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	m := &Manifest{
		Version:   ver.String(),
		Extension: ver.Extension(),
		Archive:   ver.ArchiveName(),
		Files:     make(map[string]string, len(entries)),
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		contents, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		checksum, err := Checksum(contents)
		if err != nil {
			return nil, err
		}

		m.Files[entry.Name()] = checksum
	}

	return m, nil
}

// Checksum returns the base64-encoded hash of contents
// using DefaultChecksumFunction.
func Checksum(contents []byte) (string, error) {
	if !DefaultChecksumFunction.Available() {
		return "", fmt.Errorf("checksum calculation not possible: %w", errHashUnavailable)
	}

	hasher := DefaultChecksumFunction.New()
	if _, err := hasher.Write(contents); err != nil {
		return "", fmt.Errorf("calculate checksum: %w", err)
	}

	return base64.StdEncoding.EncodeToString(hasher.Sum(nil)), nil
}

// FileChecksum returns the encoded checksum of a file on disk.
func FileChecksum(path string) (string, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", err
	}

	return Checksum(contents)
}

// Save writes the manifest to the provided path.
func Save(path string, m *Manifest) error {
	if m == nil {
		return errManifestIsNotSet
	}

	contents, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), contents, DefaultFileMode); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// Load reads a manifest from the provided path.
func Load(path string) (*Manifest, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err = yaml.Unmarshal(contents, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	if m.Files == nil {
		m.Files = make(map[string]string)
	}

	return &m, nil
}
