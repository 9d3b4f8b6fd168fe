package verifier

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pqckit/cert-submission/internal/bundle"
	"github.com/pqckit/cert-submission/internal/config"
	"github.com/pqckit/cert-submission/internal/domain/submission"
	"github.com/pqckit/cert-submission/internal/logger"
	"github.com/pqckit/cert-submission/internal/manifest"
)

// ErrVerificationFailed indicates that an archive disagrees with its manifest.
var ErrVerificationFailed = errors.New("submission verification failed")

// Options contains inputs for the verifier entry point.
type Options struct {
	// ConfigPath is an optional path to the settings YAML file.
	ConfigPath string
	// Versions narrows which submission archives to verify.
	// When empty, the configured versions are verified in order.
	Versions []string
}

// verifier cross-checks submission archives against their manifests.
// It is unexported; callers should use Run, which encapsulates setup and validation.
type verifier struct {
	// cfg holds the directory layout and version list.
	cfg *config.Config
}

// Run executes the verification workflow for every requested version.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "submission-verifier")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	requested := opts.Versions
	if len(requested) == 0 {
		requested = cfg.Versions
	}

	versions, err := parseVersions(requested)
	if err != nil {
		return err
	}

	vrf := &verifier{cfg: cfg}

	for _, ver := range versions {
		if err = ctx.Err(); err != nil {
			return err
		}

		if err = vrf.verifyVersion(ctx, ver); err != nil {
			return fmt.Errorf("verify %s: %w", ver, err)
		}
	}

	logger.Info(ctx, "All submission archives verified")

	return nil
}

// parseVersions validates all requested version tags up front.
func parseVersions(requested []string) ([]submission.Version, error) {
	versions := make([]submission.Version, 0, len(requested))

	for _, tag := range requested {
		ver, err := submission.ParseVersion(tag)
		if err != nil {
			return nil, err
		}

		versions = append(versions, ver)
	}

	return versions, nil
}

// verifyVersion checks one archive against its manifest: entry sets must
// match in both directions, every entry must carry the expected extension
// and every checksum must agree.
func (v *verifier) verifyVersion(ctx context.Context, ver submission.Version) error {
	archivePath := filepath.Join(v.cfg.SubmissionDir, ver.ArchiveName())
	manifestPath := filepath.Join(v.cfg.SubmissionDir, ver.ManifestName())

	desc, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	names, err := bundle.List(archivePath)
	if err != nil {
		return err
	}

	problems := 0
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		seen[name] = struct{}{}

		if !strings.HasSuffix(name, ver.Extension()) {
			logger.ErrorKV(ctx, "Archive entry has unexpected extension", "entry", name)

			problems++
		}

		expected, ok := desc.Files[name]
		if !ok {
			logger.ErrorKV(ctx, "Archive entry missing from manifest", "entry", name)

			problems++

			continue
		}

		contents, readErr := bundle.ReadEntry(archivePath, name)
		if readErr != nil {
			return readErr
		}

		actual, sumErr := manifest.Checksum(contents)
		if sumErr != nil {
			return sumErr
		}

		if actual != expected {
			logger.ErrorKV(ctx, "Checksum mismatch", "entry", name)

			problems++
		}
	}

	for name := range desc.Files {
		if _, ok := seen[name]; !ok {
			logger.ErrorKV(ctx, "Manifest file missing from archive", "file", name)

			problems++
		}
	}

	if problems > 0 {
		return fmt.Errorf("%d problems in %s: %w", problems, archivePath, ErrVerificationFailed)
	}

	logger.InfoKV(ctx, "Archive verified",
		"version", ver.String(),
		"archive", archivePath,
		"entries", len(names))

	return nil
}
