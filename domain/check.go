package domain

import "context"

// Scope selects which files a run considers
type Scope string

const (
	// ScopeStaged restricts checks to files staged in the index
	ScopeStaged Scope = "staged"

	// ScopeChanged restricts checks to files changed vs the tracked upstream
	ScopeChanged Scope = "changed"

	// ScopeFull runs checks against the whole tree
	ScopeFull Scope = "full"
)

// ValidScope reports whether s is a recognized scope value
func ValidScope(s Scope) bool {
	switch s {
	case ScopeStaged, ScopeChanged, ScopeFull:
		return true
	}
	return false
}

// CheckContext is the read-only record handed to every check.
// It is built once per run, before any stage starts, and shared
// across concurrently executing checks without locking.
type CheckContext struct {
	// Cwd is the absolute repository working directory
	Cwd string

	// CI indicates a continuous-integration invocation
	CI bool

	// Scope is the file-selection mode of this run
	Scope Scope

	// StagedFiles holds repo-relative paths staged in the index
	StagedFiles []string

	// ChangedFiles holds repo-relative paths changed vs upstream
	ChangedFiles []string

	// TreeFiles holds the full-tree file list, populated only for
	// full-scope runs so the walk happens once and is shared
	TreeFiles []string

	// TargetFiles is the explicit file override from --paths.
	// When non-empty, checks must restrict themselves to it.
	TargetFiles []string

	// Env is a snapshot of the process environment
	Env []string

	// Config is the full pipeline configuration, so a check can
	// inspect flags such as the e2e mode
	Config *ValidatorConfig
}

// ScopedFiles returns the file list a check should consider under the
// run's scope. TargetFiles, when present, overrides everything else.
func (cc *CheckContext) ScopedFiles() []string {
	if len(cc.TargetFiles) > 0 {
		return cc.TargetFiles
	}
	switch cc.Scope {
	case ScopeStaged:
		return cc.StagedFiles
	case ScopeChanged:
		return cc.ChangedFiles
	default:
		return cc.TreeFiles
	}
}

// Check is an independent validator with a stable display name and a
// single operation producing findings and a status.
//
// Contract:
//   - Run should return a skipped result when there is no work (no
//     relevant files, required external tool absent) rather than pass.
//   - Run must not mutate the context, the configuration, or shared
//     state other than the check's own cache partition.
//   - A panic or returned error is caught by the scheduler and turned
//     into a fail result so other checks continue.
type Check interface {
	// Name returns the display name of the check
	Name() string

	// Run executes the check against the given context
	Run(ctx context.Context, cc *CheckContext) (*CheckResult, error)
}
