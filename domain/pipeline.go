package domain

// E2EMode controls whether end-to-end checks run
type E2EMode string

const (
	// E2EModeAuto runs e2e checks only under CI
	E2EModeAuto E2EMode = "auto"

	// E2EModeAlways runs e2e checks on every invocation
	E2EModeAlways E2EMode = "always"

	// E2EModeOff disables e2e checks
	E2EModeOff E2EMode = "off"
)

// ValidE2EMode reports whether m is a recognized e2e mode
func ValidE2EMode(m E2EMode) bool {
	switch m {
	case E2EModeAuto, E2EModeAlways, E2EModeOff:
		return true
	}
	return false
}

// ReportFormat selects the reporter rendering the final result
type ReportFormat string

const (
	// ReportSummary renders a human-readable terminal summary
	ReportSummary ReportFormat = "summary"

	// ReportJSON renders a single JSON document to stdout
	ReportJSON ReportFormat = "json"

	// ReportJUnit renders a JUnit XML testsuite to stdout
	ReportJUnit ReportFormat = "junit"
)

// ValidReportFormat reports whether f is a recognized report format
func ValidReportFormat(f ReportFormat) bool {
	switch f {
	case ReportSummary, ReportJSON, ReportJUnit:
		return true
	}
	return false
}

// StageSpec is one ordered group of checks with its execution policy
type StageSpec struct {
	// Name is the display name of the stage
	Name string

	// Parallel runs the stage's checks on a bounded worker pool
	Parallel bool

	// Checks holds the stage's checks in declaration order
	Checks []Check

	// FailOnWarn aborts the pipeline when any check in this stage warns
	FailOnWarn bool
}

// ValidatorConfig is the in-memory pipeline configuration the driver
// owns and every check can inspect through the context
type ValidatorConfig struct {
	// Stages holds the pipeline's stages in execution order
	Stages []StageSpec

	// E2EMode is the default end-to-end mode for this run
	E2EMode E2EMode

	// Reporters lists the default reporter names
	Reporters []string
}

// RunOptions captures the per-invocation settings resolved by the driver
type RunOptions struct {
	// Scope is the file-selection mode
	Scope Scope

	// CI marks a continuous-integration invocation
	CI bool

	// MaxWorkers caps stage parallelism; values are clamped by the scheduler
	MaxWorkers int

	// Report selects the reporter; empty falls back to the configured
	// default
	Report ReportFormat

	// E2E overrides the configured end-to-end mode; empty keeps it
	E2E E2EMode

	// Quiet limits terminal output to the summary block
	Quiet bool

	// Verbose includes per-check durations in terminal output
	Verbose bool

	// Paths optionally restricts the run to explicit files or directories
	Paths []string

	// Cwd runs the pipeline as if invoked from this directory
	Cwd string
}
