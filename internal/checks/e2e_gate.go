package checks

import (
	"context"
	"fmt"

	"github.com/hexlab-tools/hexvalidate/domain"
	"github.com/hexlab-tools/hexvalidate/internal/config"
	"github.com/hexlab-tools/hexvalidate/internal/execx"
)

// E2EGate runs the configured end-to-end suite according to the
// pipeline's e2e mode: off never runs, auto runs only under CI,
// always runs on every invocation.
type E2EGate struct {
	cfg config.E2ECommandConfig
}

// NewE2EGate creates the end-to-end gate
func NewE2EGate(cfg config.E2ECommandConfig) *E2EGate {
	return &E2EGate{cfg: cfg}
}

// Name returns the display name of the check
func (c *E2EGate) Name() string {
	return "E2E suite"
}

// Run executes the e2e command when the mode allows it
func (c *E2EGate) Run(ctx context.Context, cc *domain.CheckContext) (*domain.CheckResult, error) {
	mode := domain.E2EModeOff
	if cc.Config != nil {
		mode = cc.Config.E2EMode
	}

	switch mode {
	case domain.E2EModeOff:
		return domain.NewSkippedResult(c.Name(), "e2e mode is off"), nil
	case domain.E2EModeAuto:
		if !cc.CI {
			return domain.NewSkippedResult(c.Name(), "e2e mode is auto and this is not a CI run"), nil
		}
	}

	if c.cfg.Command == "" {
		return domain.NewSkippedResult(c.Name(), "no e2e command configured"), nil
	}

	policy := execx.RetryPolicyFromEnv(cc.Env)
	run, err := execx.RunWithRetry(ctx, c.cfg.Command, c.cfg.Args, execx.Options{Cwd: cc.Cwd, Env: cc.Env}, policy)
	if err != nil {
		return nil, domain.NewToolError(fmt.Sprintf("failed to run %s", c.cfg.Command), err)
	}

	var findings []domain.Finding
	if run.ExitCode != 0 {
		findings = []domain.Finding{{
			Severity:   domain.SeverityError,
			Code:       "e2e/suite",
			Message:    fmt.Sprintf("end-to-end suite exited with code %d", run.ExitCode),
			Suggestion: "inspect the captured suite output",
		}}
	}

	result := domain.NewResult(c.Name(), findings)
	result.Stdout = run.Stdout
	result.Stderr = run.Stderr
	return result, nil
}
