package domain

// ProgressManager creates progress tasks for long-running stages.
// Implementations decide whether to render anything at all; under CI,
// machine-readable output, or a non-interactive terminal the manager
// is a no-op.
type ProgressManager interface {
	// StartTask begins a progress task with a description and total count
	StartTask(description string, total int) TaskProgress

	// IsInteractive returns true when progress is actually rendered
	IsInteractive() bool

	// Close cleans up all tasks
	Close()
}

// TaskProgress tracks progress of a single task
type TaskProgress interface {
	// Increment adds n to the current progress
	Increment(n int)

	// Describe updates the current item description
	Describe(description string)

	// Complete marks the task as finished
	Complete()
}
