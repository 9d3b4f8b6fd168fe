package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pqckit/cert-submission/internal/domain/submission"
)

// Config holds the directory layout shared by the submission binaries.
type Config struct {
	// ArtifactsDir is the root directory holding generated certificate trees.
	ArtifactsDir string `yaml:"artifacts_dir"`
	// SubmissionDir is where archives and manifests are written.
	SubmissionDir string `yaml:"submission_dir"`
	// Versions lists the submission versions to process, in order.
	Versions []string `yaml:"versions"`
}

const (
	// DefaultConfigFilename is the default filename for layout settings.
	DefaultConfigFilename = "cert-submission-settings.yaml"

	// DefaultArtifactsDir is used when no artifacts root is configured.
	DefaultArtifactsDir = "artifacts"

	// DefaultSubmissionDirName is the submission directory name under the artifacts root.
	DefaultSubmissionDirName = "submission"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// errConfigIsNotSet is returned when a nil configuration is provided.
var errConfigIsNotSet = errors.New("configuration is not set")

// Load reads configuration from the provided path and validates it.
// When the file at the default location is absent, built-in defaults are
// returned so the binaries run without prior setup. An explicitly provided
// path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && (!explicit || filepath.Clean(path) == DefaultConfigFilename) {
			return Default()
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err = yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a configuration with every field set to its default.
func Default() (*Config, error) {
	cfg := new(Config)
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills in defaults and checks the configured versions.
func Validate(settings *Config) error {
	if settings.ArtifactsDir == "" {
		settings.ArtifactsDir = DefaultArtifactsDir
	}

	if settings.SubmissionDir == "" {
		settings.SubmissionDir = filepath.Join(settings.ArtifactsDir, DefaultSubmissionDirName)
	}

	// Default to packaging every known version.
	if len(settings.Versions) == 0 {
		for _, ver := range submission.DefaultVersions() {
			settings.Versions = append(settings.Versions, ver.String())
		}
	}

	for _, tag := range settings.Versions {
		if _, err := submission.ParseVersion(tag); err != nil {
			return fmt.Errorf("configured version: %w", err)
		}
	}

	return nil
}
