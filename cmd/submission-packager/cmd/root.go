package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pqckit/cert-submission/internal/config"
	"github.com/pqckit/cert-submission/internal/service/packager"
	"github.com/pqckit/cert-submission/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// rootCmd represents the base command for packaging submission archives.
	rootCmd = &cobra.Command{
		Use:   "submission-packager [version ...]",
		Short: "Package generated certificates into submission archives",
		Long: `Merges the ipd and non-ipd certificate trees of each submission version
into a single zip archive accompanied by a checksum manifest.

Versions can be passed as arguments (r3, r4); without arguments every
configured version is packaged in order. Certificates must be generated
beforehand, the packager only selects and bundles existing files.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &packager.Options{
				ConfigPath: configPath,
				Versions:   args,
			}

			return packager.Run(ctx, options)
		},
	}
)

// Execute runs the submission-packager CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
}
