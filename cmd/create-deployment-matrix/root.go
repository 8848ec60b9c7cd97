// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI entrypoint for create-deployment-matrix.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/skyhook-io/create-deployment-matrix/internal/app/generate"
	"github.com/skyhook-io/create-deployment-matrix/internal/config"
	"github.com/skyhook-io/create-deployment-matrix/internal/github"
	"github.com/skyhook-io/create-deployment-matrix/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug logging and full error chains
	verbose bool
	// dryRun prints the resolved tool command without executing it
	dryRun bool

	// rootCmd is the one and only command; the binary does a single job.
	rootCmd = &cobra.Command{
		Use:   "create-deployment-matrix",
		Short: "Generate a deployment matrix for GitHub Actions",
		Long: TitleStyle.Render("create-deployment-matrix") + SubtitleStyle.Render(" - Generate a deployment matrix for GitHub Actions") + `

Runs the skyhook discovery tool against a checked-out repository,
normalizes its JSON output, and publishes the result as the 'matrix'
step output plus a step-summary report. Outside GitHub Actions the
matrix is printed to stdout, so the binary doubles as a local CLI.

Inputs are resolved from flags, INPUT_* environment variables (the
GitHub Actions input convention), an optional repo-local
.skyhook/matrix.cue file, and defaults, in that order of precedence.

` + SubtitleStyle.Render("Examples:") + `
  create-deployment-matrix --tag v1.2.3 --github-token "$GITHUB_TOKEN"
  create-deployment-matrix --tag v1.2.3 --github-token "$GITHUB_TOKEN" --overlay production
  create-deployment-matrix --tag v1.2.3 --github-token "$GITHUB_TOKEN" --dry-run`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
)

func init() {
	flags := rootCmd.Flags()
	flags.String("overlay", "", "restrict the matrix to a single overlay environment (empty means all)")
	flags.String("branch", "main", "branch recorded in each matrix entry")
	flags.String("tag", "", "image tag stamped into each matrix entry (required)")
	flags.String("github-token", "", "GitHub credential forwarded to the discovery tool (required)")
	flags.String("repo-path", ".", "path to the checked-out repository")
	flags.String("tool-bin", "skyhook", "discovery tool binary to invoke")
	flags.String("runtime", "native", "subprocess runtime: native or virtual")
	flags.Duration("timeout", 0, "subprocess deadline (0 waits indefinitely)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVar(&dryRun, "dry-run", false, "print the resolved command without executing it")
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	logger := newLogger()
	if !github.InActions() {
		logger.Debug("not running inside GitHub Actions; outputs fall back to stdout")
	}
	pub := github.NewPublisher(logger)

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		// Resolution failed before a pipeline could exist; report here so
		// the run still ends in exactly one published outcome.
		pub.Failf("%s", err.Error())
		pub.AppendSummary((&github.RunSummary{Err: err}).Markdown())
		return failWith(err)
	}

	if dryRun {
		if err := cfg.Validate(); err != nil {
			return failWith(err)
		}
		renderDryRun(cmd.OutOrStdout(), cfg)
		return nil
	}

	pipe := generate.New(cfg, pub, logger)
	if err := pipe.Run(cmd.Context()); err != nil {
		return failWith(err)
	}
	return nil
}

// newLogger builds the run logger. Logs go to stderr so stdout stays
// reserved for the matrix in local runs.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// failWith prints the error (with issue guidance when available) and wraps
// it in an ExitError so Execute maps it to a non-zero exit status.
func failWith(err error) error {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))

	if guidance := renderIssueGuidance(err); guidance != "" {
		fmt.Fprintln(os.Stderr, guidance)
	}

	return &ExitError{Code: 1, Err: err}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderIssueGuidance looks the error up in the issue catalog and renders
// its markdown guidance. Rendering problems are swallowed; guidance is
// best-effort decoration on top of the error itself.
func renderIssueGuidance(err error) string {
	if !verbose {
		return ""
	}
	is := issue.Get(issue.Classify(err))
	if is == nil {
		return ""
	}
	rendered, rerr := is.Render()
	if rerr != nil {
		return ""
	}
	return rendered
}
