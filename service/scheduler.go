package service

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/hexlab-tools/hexvalidate/domain"
	"github.com/hexlab-tools/hexvalidate/internal/constants"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxWorkers sizes the worker pool from the host CPU count,
// clamped to the [2, 4] band so a laptop is not saturated and a large
// CI box is not wasted on lock contention.
func DefaultMaxWorkers() int {
	n := runtime.NumCPU() - 1
	if n < 2 {
		n = 2
	}
	if n > 4 {
		n = 4
	}
	return n
}

// clampWorkers bounds a requested worker count to the supported range
func clampWorkers(requested int) int {
	if requested < constants.MinWorkers {
		return constants.MinWorkers
	}
	if requested > constants.MaxWorkerCeiling {
		return constants.MaxWorkerCeiling
	}
	return requested
}

// StageScheduler runs the configured stages in declaration order,
// fanning checks of a parallel stage across a bounded worker pool.
// A failing stage stops the pipeline after its in-flight checks have
// finished; their results are kept and later stages never start.
type StageScheduler struct {
	maxWorkers int
	progress   domain.ProgressManager
}

// NewStageScheduler creates a scheduler with the requested pool size.
// Zero or negative picks the host default.
func NewStageScheduler(maxWorkers int) *StageScheduler {
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers()
	}
	return &StageScheduler{
		maxWorkers: clampWorkers(maxWorkers),
		progress:   &NoOpProgressManager{},
	}
}

// NewStageSchedulerWithProgress creates a scheduler reporting per-stage
// progress through pm
func NewStageSchedulerWithProgress(maxWorkers int, pm domain.ProgressManager) *StageScheduler {
	s := NewStageScheduler(maxWorkers)
	if pm != nil {
		s.progress = pm
	}
	return s
}

// Run executes the stages against the shared check context. It returns
// ok == true iff every stage passed its policy, together with every
// result produced before the pipeline stopped, in declaration order.
func (s *StageScheduler) Run(ctx context.Context, cc *domain.CheckContext, stages []domain.StageSpec) (bool, []*domain.CheckResult) {
	results := []*domain.CheckResult{}

	for _, stage := range stages {
		if len(stage.Checks) == 0 {
			continue
		}

		var stageResults []*domain.CheckResult
		if stage.Parallel {
			stageResults = s.runParallel(ctx, cc, stage)
		} else {
			stageResults = s.runSequential(ctx, cc, stage)
		}
		results = append(results, stageResults...)

		if stageFailed(stageResults, stage.FailOnWarn) {
			return false, results
		}
	}

	return true, results
}

// runParallel fans the stage's checks across the worker pool. Results
// land in a slice indexed by declaration position so reporting order
// matches the configuration regardless of completion order.
func (s *StageScheduler) runParallel(ctx context.Context, cc *domain.CheckContext, stage domain.StageSpec) []*domain.CheckResult {
	task := s.progress.StartTask(fmt.Sprintf("Stage %s", stage.Name), len(stage.Checks))
	defer task.Complete()

	slots := make([]*domain.CheckResult, len(stage.Checks))

	g := &errgroup.Group{}
	g.SetLimit(s.maxWorkers)
	for i, check := range stage.Checks {
		g.Go(func() error {
			slots[i] = s.runOne(ctx, cc, stage.Name, check)
			task.Increment(1)
			return nil
		})
	}
	_ = g.Wait()

	return slots
}

func (s *StageScheduler) runSequential(ctx context.Context, cc *domain.CheckContext, stage domain.StageSpec) []*domain.CheckResult {
	task := s.progress.StartTask(fmt.Sprintf("Stage %s", stage.Name), len(stage.Checks))
	defer task.Complete()

	results := make([]*domain.CheckResult, 0, len(stage.Checks))
	for _, check := range stage.Checks {
		task.Describe(check.Name())
		results = append(results, s.runOne(ctx, cc, stage.Name, check))
		task.Increment(1)
	}
	return results
}

// runOne executes a single check, converting panics and returned
// errors into fail results so one misbehaving check cannot take down
// the pipeline. The result is stamped with its stage and duration.
func (s *StageScheduler) runOne(ctx context.Context, cc *domain.CheckContext, stageName string, check domain.Check) (result *domain.CheckResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result = failResult(check.Name(), fmt.Sprintf("check panicked: %v", r))
			result.Stderr = string(debug.Stack())
		}
		result.Stage = stageName
		result.DurationMS = time.Since(start).Milliseconds()
	}()

	res, err := check.Run(ctx, cc)
	if err != nil {
		return failResult(check.Name(), err.Error())
	}
	if res == nil {
		return failResult(check.Name(), "check returned no result")
	}
	return res
}

// failResult builds the synthetic result for a check that errored or
// panicked instead of reporting findings
func failResult(name, message string) *domain.CheckResult {
	return domain.NewResult(name, []domain.Finding{{
		Severity:   domain.SeverityError,
		Code:       "engine/check-error",
		Message:    message,
		Suggestion: "re-run with --verbose and inspect the captured output",
	}})
}

// stageFailed applies the stage policy to its results
func stageFailed(results []*domain.CheckResult, failOnWarn bool) bool {
	for _, r := range results {
		if r.Status == domain.StatusFail {
			return true
		}
		if failOnWarn && r.Status == domain.StatusWarn {
			return true
		}
	}
	return false
}
