package checks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hexlab-tools/hexvalidate/domain"
	"github.com/hexlab-tools/hexvalidate/internal/config"
	"github.com/hexlab-tools/hexvalidate/internal/execx"
	"github.com/hexlab-tools/hexvalidate/internal/toolprobe"
)

// linterFileReport is the per-file element of an eslint-style JSON
// summary; tools that emit anything else fall through to exit-code
// interpretation.
type linterFileReport struct {
	FilePath string `json:"filePath"`
	Messages []struct {
		RuleID   string `json:"ruleId"`
		Severity int    `json:"severity"`
		Message  string `json:"message"`
		Line     int    `json:"line"`
		Column   int    `json:"column"`
		Fix      *struct {
			Range []int  `json:"range"`
			Text  string `json:"text"`
		} `json:"fix"`
	} `json:"messages"`
}

// ExternalLinter shells out to a configured linter binary, probing for
// it first and skipping when it is absent
type ExternalLinter struct {
	cfg    config.LinterConfig
	prober *toolprobe.Prober
}

// NewExternalLinter creates the external linter check
func NewExternalLinter(cfg config.LinterConfig, prober *toolprobe.Prober) *ExternalLinter {
	return &ExternalLinter{cfg: cfg, prober: prober}
}

// Name returns the display name of the check
func (c *ExternalLinter) Name() string {
	return "External linter"
}

// Run probes the linter, executes it over the scoped files, and maps
// its JSON summary to findings
func (c *ExternalLinter) Run(ctx context.Context, cc *domain.CheckContext) (*domain.CheckResult, error) {
	if c.cfg.Command == "" {
		return domain.NewSkippedResult(c.Name(), "no linter command configured"), nil
	}

	info := c.prober.Probe(ctx, c.cfg.Command, cc.Cwd)
	if !info.Available {
		return domain.NewSkippedResult(c.Name(),
			fmt.Sprintf("%s not found — install it to enable linting", c.cfg.Command)), nil
	}

	files := selectSourceFiles(cc.ScopedFiles(), false)
	if len(files) == 0 {
		return domain.NewSkippedResult(c.Name(), "no source files in scope"), nil
	}

	args := append(append([]string{}, c.cfg.Args...), files...)
	policy := execx.RetryPolicyFromEnv(cc.Env)
	run, err := execx.RunWithRetry(ctx, c.cfg.Command, args, execx.Options{Cwd: cc.Cwd, Env: cc.Env}, policy)
	if err != nil {
		return nil, domain.NewToolError(fmt.Sprintf("failed to run %s", c.cfg.Command), err)
	}

	result := c.interpret(run)
	result.Artifacts = map[string]any{
		"tool":    c.cfg.Command,
		"version": info.Version,
	}
	return result, nil
}

// interpret maps the linter's output to a result: a parseable JSON
// summary wins over the exit code, and its per-message severities are
// kept as reported even when the exit status is non-zero. Only an
// unparseable summary with a non-zero exit becomes a single error
// finding naming the exit code; the captured output stays on the
// result's Stdout and Stderr.
func (c *ExternalLinter) interpret(run *execx.Result) *domain.CheckResult {
	findings, parsed := c.parseSummary(run.Stdout)

	var result *domain.CheckResult
	switch {
	case parsed:
		result = domain.NewResult(c.Name(), findings)
	case run.ExitCode != 0:
		result = domain.NewResult(c.Name(), []domain.Finding{{
			Severity:   domain.SeverityError,
			Code:       "tools/linter",
			Message:    fmt.Sprintf("%s exited with code %d", c.cfg.Command, run.ExitCode),
			Suggestion: "run the linter directly for details",
		}})
	default:
		result = domain.NewResult(c.Name(), nil)
	}

	result.Stdout = run.Stdout
	result.Stderr = run.Stderr
	return result
}

func (c *ExternalLinter) parseSummary(stdout string) ([]domain.Finding, bool) {
	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" || !strings.HasPrefix(trimmed, "[") {
		return nil, false
	}

	var reports []linterFileReport
	if err := json.Unmarshal([]byte(trimmed), &reports); err != nil {
		return nil, false
	}

	findings := []domain.Finding{}
	for _, report := range reports {
		for _, msg := range report.Messages {
			severity := domain.SeverityWarn
			if msg.Severity >= 2 {
				severity = domain.SeverityError
			}
			rule := msg.RuleID
			if rule == "" {
				rule = "linter"
			}
			findings = append(findings, domain.Finding{
				File:     report.FilePath,
				Line:     msg.Line,
				Column:   msg.Column,
				Severity: severity,
				Code:     "tools/" + rule,
				Message:  msg.Message,
				Fixable:  msg.Fix != nil,
			})
		}
	}
	return findings, true
}
