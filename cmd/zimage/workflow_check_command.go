package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"zimage/internal/config"
	"zimage/internal/loader"
	"zimage/internal/logging"
	"zimage/internal/report"
	"zimage/internal/workflow"
)

type workflowCheckFlags struct {
	extraChecks bool
	color       bool
	colorAlways bool
	verbose     bool
	jsonOutput  bool
	jobs        int
}

// workflowCheckSettings is the merged result of config values and flags.
type workflowCheckSettings struct {
	analysis  workflow.Options
	colorMode string
	verbose   bool
	jobs      int
}

func newWorkflowCheckCommand(ctx *commandContext) *cobra.Command {
	var flags workflowCheckFlags

	cmd := &cobra.Command{
		Use:   "workflow-check <file>...",
		Short: "Check workflow files for unpinned nodes and layout problems",
		Long: "Check ComfyUI workflow files (.json, or .png images with the workflow embedded)\n" +
			"for unpinned nodes, malformed pos/size attributes and, with --extra-checks,\n" +
			"a view that is panned away from the origin or not at 100% zoom.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd, "workflow-check")
			if err != nil {
				return err
			}
			settings := mergeWorkflowCheckSettings(cmd, cfg, flags)

			out := cmd.OutOrStdout()
			reporter := report.New(out, report.Options{
				Color:   colorEnabled(settings.colorMode, out),
				Verbose: settings.verbose,
			})
			if !loader.ImageSupport() {
				reporter.Palette().Warning(cmd.ErrOrStderr(),
					"PNG metadata support is not available in this build.",
					"Workflows embedded in images will be reported as unreadable.")
			}

			results, err := checkWorkflows(cmd.Context(), loader.New(), args, settings, logger)
			if err != nil {
				return err
			}

			if flags.jsonOutput {
				return writeJSON(cmd, results)
			}
			return reporter.WriteResults(results)
		},
	}

	cmd.Flags().BoolVarP(&flags.extraChecks, "extra-checks", "e", false, "Also check the saved view offset and zoom")
	cmd.Flags().BoolVarP(&flags.color, "color", "c", false, "Colorize output when writing to a terminal")
	cmd.Flags().BoolVar(&flags.colorAlways, "color-always", false, "Always colorize output")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "Show node details and unreadable reasons")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Write results as JSON")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 1, "Number of files to check concurrently")
	return cmd
}

// mergeWorkflowCheckSettings starts from the config file and applies only the
// flags the user set explicitly.
func mergeWorkflowCheckSettings(cmd *cobra.Command, cfg *config.Config, flags workflowCheckFlags) workflowCheckSettings {
	settings := workflowCheckSettings{
		analysis:  workflow.Options{ExtraChecks: cfg.WorkflowCheck.ExtraChecks},
		colorMode: cfg.WorkflowCheck.Color,
		verbose:   cfg.WorkflowCheck.Verbose,
		jobs:      cfg.WorkflowCheck.Jobs,
	}
	changed := cmd.Flags().Changed
	if changed("extra-checks") {
		settings.analysis.ExtraChecks = flags.extraChecks
	}
	if changed("verbose") {
		settings.verbose = flags.verbose
	}
	if changed("jobs") {
		settings.jobs = flags.jobs
	}
	switch {
	case changed("color-always") && flags.colorAlways:
		settings.colorMode = config.ColorAlways
	case changed("color") && flags.color:
		settings.colorMode = config.ColorAuto
	case changed("color") || changed("color-always"):
		settings.colorMode = config.ColorNever
	}
	if settings.jobs < 1 {
		settings.jobs = 1
	}
	return settings
}

// checkWorkflows loads and analyzes every file, at most settings.jobs at a
// time. Results keep the order of files.
func checkWorkflows(ctx context.Context, l *loader.Loader, files []string, settings workflowCheckSettings, logger *slog.Logger) ([]workflow.Result, error) {
	results := make([]workflow.Result, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(settings.jobs)
	for i, file := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = checkWorkflow(l, file, settings.analysis, logger)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkWorkflow(l *loader.Loader, file string, opts workflow.Options, logger *slog.Logger) workflow.Result {
	doc, err := l.Load(file)
	if err != nil {
		logger.Debug("workflow unreadable", logging.File(file), logging.Reason(unreadableReason(err)), logging.Error(err))
		return workflow.Unreadable(file, err)
	}
	result := workflow.Analyze(file, doc, opts)
	logger.Debug("workflow analyzed",
		logging.File(file),
		logging.Int("nodes", result.NodeCount),
		logging.Int("unpinned", len(result.Unpinned)),
		logging.Bool("clean", result.Clean()),
	)
	return result
}

// unreadableReason names the failure category for diagnostics.
func unreadableReason(err error) string {
	switch {
	case errors.Is(err, loader.ErrUnsupportedFormat):
		return "unsupported format"
	case errors.Is(err, loader.ErrImageSupportUnavailable):
		return "image support unavailable"
	case errors.Is(err, loader.ErrNoEmbeddedWorkflow):
		return "no embedded workflow"
	case errors.Is(err, fs.ErrNotExist):
		return "missing file"
	default:
		return "unparseable content"
	}
}
