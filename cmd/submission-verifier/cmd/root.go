package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pqckit/cert-submission/internal/config"
	"github.com/pqckit/cert-submission/internal/service/verifier"
	"github.com/pqckit/cert-submission/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// rootCmd represents the base command for verifying submission archives.
	rootCmd = &cobra.Command{
		Use:   "submission-verifier [version ...]",
		Short: "Verify submission archives against their manifests.",
		Long: `Checks that each submission archive still matches the checksum manifest
written next to it by the packager.

Entry sets are compared in both directions, every entry must carry the
version's expected encoding and every checksum must agree. Versions can be
passed as arguments (r3, r4); without arguments every configured version is
verified in order.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &verifier.Options{
				ConfigPath: configPath,
				Versions:   args,
			}

			return verifier.Run(ctx, options)
		},
	}
)

// Execute runs the submission-verifier CLI and exits with non-zero status on error.
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
