package main

import (
	"fmt"
	"os"

	"github.com/hexlab-tools/hexvalidate/app"
	"github.com/hexlab-tools/hexvalidate/domain"
	"github.com/hexlab-tools/hexvalidate/internal/constants"
	"github.com/hexlab-tools/hexvalidate/internal/execx"
	"github.com/hexlab-tools/hexvalidate/service"
	"github.com/spf13/cobra"
)

// CheckExitError carries the process exit code of a finished run
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

// runFlags holds the flag values shared by the run commands
type runFlags struct {
	scope      string
	e2e        string
	report     string
	maxWorkers int
	quiet      bool
	verbose    bool
	paths      []string
	cwd        string
}

func (f *runFlags) register(cmd *cobra.Command, defaultScope string) {
	cmd.Flags().StringVar(&f.scope, "scope", defaultScope, "File scope: staged, changed, or full")
	cmd.Flags().StringVar(&f.e2e, "e2e", "", "End-to-end mode override: auto, always, or off")
	cmd.Flags().StringVar(&f.report, "report", "", "Report format: summary, json, or junit")
	cmd.Flags().IntVar(&f.maxWorkers, "max-workers", 0, "Parallel stage workers (0 = configured default)")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "Only print the summary counts")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Include per-check durations")
	cmd.Flags().StringSliceVar(&f.paths, "paths", nil, "Restrict the run to these files or directories")
	cmd.Flags().StringVar(&f.cwd, "cwd", "", "Run as if invoked from this directory")
}

func fastCmd() *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "fast",
		Short: "Validate staged files before committing",
		Long: `Run the pipeline against the files staged in the git index.
Intended as a pre-commit hook: quick and scoped to the index.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, flags, false)
		},
	}
	flags.register(cmd, string(domain.ScopeStaged))
	return cmd
}

func fullCmd() *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "full",
		Short: "Validate the whole repository tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, flags, false)
		},
	}
	flags.register(cmd, string(domain.ScopeFull))
	return cmd
}

func ciCmd() *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "ci",
		Short: "Validate the whole tree in CI mode",
		Long: `Run the full pipeline as a continuous-integration gate. CI mode
lets e2e auto stages run and disables interactive progress output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, flags, true)
		},
	}
	flags.register(cmd, string(domain.ScopeFull))
	return cmd
}

func runValidate(cmd *cobra.Command, flags *runFlags, forceCI bool) error {
	opts := domain.RunOptions{
		Scope:      domain.Scope(flags.scope),
		CI:         forceCI || execx.Truthy(os.Getenv(constants.EnvCI)),
		MaxWorkers: flags.maxWorkers,
		Report:     domain.ReportFormat(flags.report),
		E2E:        domain.E2EMode(flags.e2e),
		Quiet:      flags.quiet,
		Verbose:    flags.verbose,
		Paths:      flags.paths,
		Cwd:        flags.cwd,
	}
	if opts.Report != "" && !domain.ValidReportFormat(opts.Report) {
		return &CheckExitError{Code: 1, Message: fmt.Sprintf("unknown report format %q", flags.report)}
	}

	// Progress bars stay off for machine-readable formats so stdout
	// and stderr never interleave in captured CI logs
	interactive := !opts.CI && !opts.Quiet && opts.Report != domain.ReportJSON && opts.Report != domain.ReportJUnit
	pm := service.NewProgressManager(interactive)
	defer pm.Close()

	useCase := app.NewValidateUseCase(pm, cmd.OutOrStdout())
	result, err := useCase.Execute(cmd.Context(), opts)
	if err != nil {
		return &CheckExitError{Code: 1, Message: err.Error()}
	}
	if !result.OK {
		return &CheckExitError{Code: 1}
	}
	return nil
}
