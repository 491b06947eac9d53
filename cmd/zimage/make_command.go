package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"zimage/internal/buildreport"
	"zimage/internal/config"
	"zimage/internal/logging"
	"zimage/internal/report"
)

func newMakeCommand(ctx *commandContext) *cobra.Command {
	var sourceDir string
	var noColor bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "make",
		Short: "List the configuration and template files a build would use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd, "make")
			if err != nil {
				return err
			}

			dir := cfg.Build.SourceDir
			if cmd.Flags().Changed("source-dir") {
				dir = sourceDir
			}
			resolved, err := resolveSourceDir(dir)
			if err != nil {
				return err
			}
			logger.Debug("scanning source directory", logging.String("source_dir", resolved))

			palette := report.NewPalette(!noColor && shouldColorize(cmd.ErrOrStderr()))
			inv, err := buildreport.Scan(resolved, buildreport.Options{
				GlobalConfigFiles: cfg.Build.GlobalConfigFiles,
				ConfigMarker:      cfg.Build.ConfigMarker,
			})
			if err != nil {
				logger.Debug("build inventory failed", logging.Error(err))
				palette.Error(cmd.ErrOrStderr(), err.Error(), "Source directory: "+resolved)
				return fmt.Errorf("%w: %w", errReported, err)
			}

			if jsonOutput {
				return writeJSON(cmd, inv)
			}
			return buildreport.Render(cmd.OutOrStdout(), inv)
		},
	}

	cmd.Flags().StringVarP(&sourceDir, "source-dir", "s", "", "Directory holding templates and configuration files")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored messages")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Write the inventory as JSON")
	return cmd
}

// resolveSourceDir makes dir absolute against the working directory and
// follows symlinks.
func resolveSourceDir(dir string) (string, error) {
	expanded, err := config.ExpandPath(dir)
	if err != nil {
		return "", fmt.Errorf("resolve source directory: %w", err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve source directory: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve source directory %s: %w", abs, err)
	}
	return resolved, nil
}
