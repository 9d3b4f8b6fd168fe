package packager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pqckit/cert-submission/internal/bundle"
	"github.com/pqckit/cert-submission/internal/config"
	"github.com/pqckit/cert-submission/internal/domain/submission"
	"github.com/pqckit/cert-submission/internal/logger"
	"github.com/pqckit/cert-submission/internal/manifest"
)

// ErrSourceMissing indicates that the certificate tree for a requested
// version does not exist.
var ErrSourceMissing = errors.New("certificates not generated yet, run the certificate generator first")

const (
	// defaultDirPermissions is used when creating the submission and merge directories.
	defaultDirPermissions os.FileMode = 0o755
	// defaultFilePermissions is used for certificate copies in the merge directory.
	defaultFilePermissions os.FileMode = 0o644
)

// Options contains inputs for the packager entry point.
type Options struct {
	// ConfigPath is an optional path to the settings YAML file.
	ConfigPath string
	// Versions narrows which submission versions to package.
	// When empty, the configured versions are packaged in order.
	Versions []string
}

// packager merges certificate trees and produces submission archives.
// It is unexported; callers should use Run, which encapsulates setup and validation.
type packager struct {
	// cfg holds the directory layout and version list.
	cfg *config.Config
}

// Run executes the packaging workflow for every requested version.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "submission-packager")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	requested := opts.Versions
	if len(requested) == 0 {
		requested = cfg.Versions
	}

	// Reject unknown version tags before touching the filesystem.
	versions, err := parseVersions(requested)
	if err != nil {
		return err
	}

	pkg := newPackager(cfg)

	for _, ver := range versions {
		if err = ctx.Err(); err != nil {
			return err
		}

		if err = pkg.packageVersion(ctx, ver); err != nil {
			return fmt.Errorf("package %s: %w", ver, err)
		}
	}

	logger.Info(ctx, "Packager completed successfully")

	return nil
}

// newPackager creates a packager over the provided configuration.
func newPackager(cfg *config.Config) *packager {
	return &packager{cfg: cfg}
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

// packageVersion merges the ipd and non-ipd trees of a single version and
// produces its archive and checksum manifest.
func (p *packager) packageVersion(ctx context.Context, ver submission.Version) (err error) {
	// The source tree must exist before anything is written.
	sourceDir := filepath.Join(p.cfg.ArtifactsDir, ver.CertsDir())
	if _, statErr := os.Stat(sourceDir); statErr != nil {
		if errors.Is(statErr, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", sourceDir, ErrSourceMissing)
		}

		return fmt.Errorf("stat %s: %w", sourceDir, statErr)
	}

	logger.InfoKV(ctx, "Packaging submission", "version", ver.String(), "source", sourceDir)

	if err = os.MkdirAll(p.cfg.SubmissionDir, defaultDirPermissions); err != nil {
		return fmt.Errorf("create submission directory: %w", err)
	}

	// The merge directory is owned by this run; a leftover from an
	// interrupted run is removed before starting over.
	mergeDir := filepath.Join(p.cfg.SubmissionDir, ver.ArchiveStem())
	if err = os.RemoveAll(mergeDir); err != nil {
		return fmt.Errorf("clear merge directory: %w", err)
	}

	if err = os.Mkdir(mergeDir, defaultDirPermissions); err != nil {
		return fmt.Errorf("create merge directory: %w", err)
	}

	defer func() {
		if rmErr := os.RemoveAll(mergeDir); rmErr != nil && err == nil {
			err = fmt.Errorf("remove merge directory: %w", rmErr)
		}
	}()

	included, _, err := copyMatching(ctx, filepath.Join(sourceDir, submission.IPDDirName), mergeDir, ver.Extension(), false)
	if err != nil {
		return err
	}

	merged, skipped, err := copyMatching(ctx, filepath.Join(sourceDir, submission.NonIPDDirName), mergeDir, ver.Extension(), true)
	if err != nil {
		return err
	}

	archivePath := filepath.Join(p.cfg.SubmissionDir, ver.ArchiveName())
	if err = bundle.Write(archivePath, mergeDir); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	desc, err := manifest.Build(ver, mergeDir)
	if err != nil {
		return fmt.Errorf("build manifest: %w", err)
	}

	if err = manifest.Save(filepath.Join(p.cfg.SubmissionDir, ver.ManifestName()), desc); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}

	logger.InfoKV(ctx, "Submission packaged",
		"version", ver.String(),
		"archive", archivePath,
		"ipd_files", included,
		"non_ipd_files", merged,
		"duplicates_skipped", skipped)

	return nil
}

// copyMatching copies every file in srcDir whose name ends with extension
// into dstDir. With skipExisting set, names already present in dstDir are
// left alone so earlier copies win.
func copyMatching(
	ctx context.Context,
	srcDir, dstDir, extension string,
	skipExisting bool,
) (copied, skipped int, err error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, 0, fmt.Errorf("read %s: %w", srcDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, extension) {
			continue
		}

		destination := filepath.Join(dstDir, name)

		if skipExisting {
			_, statErr := os.Stat(destination)
			if statErr == nil {
				logger.InfoKV(ctx, "Skipping duplicate certificate", "file", name)

				skipped++

				continue
			}

			if !errors.Is(statErr, os.ErrNotExist) {
				return copied, skipped, fmt.Errorf("stat %s: %w", destination, statErr)
			}
		}

		if err = copyFile(filepath.Join(srcDir, name), destination); err != nil {
			return copied, skipped, err
		}

		copied++
	}

	return copied, skipped, nil
}

// copyFile copies a single file, keeping nothing but its contents.
func copyFile(src, dst string) error {
	contents, err := os.ReadFile(filepath.Clean(src))
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}

	if err = os.WriteFile(dst, contents, defaultFilePermissions); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}

	return nil
}
