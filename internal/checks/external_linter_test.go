package checks

import (
	"context"
	"testing"

	"github.com/hexlab-tools/hexvalidate/domain"
	"github.com/hexlab-tools/hexvalidate/internal/config"
	"github.com/hexlab-tools/hexvalidate/internal/execx"
	"github.com/hexlab-tools/hexvalidate/internal/testutil"
	"github.com/hexlab-tools/hexvalidate/internal/toolprobe"
)

func TestExternalLinter_NoCommandConfigured(t *testing.T) {
	cc := hygieneContext(t, map[string]string{"src/app.ts": "const x = 1\n"})
	check := NewExternalLinter(config.LinterConfig{}, toolprobe.NewProber())

	result, err := check.Run(context.Background(), cc)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, domain.StatusSkipped, result.Status)
}

func TestExternalLinter_MissingToolSkips(t *testing.T) {
	cc := hygieneContext(t, map[string]string{"src/app.ts": "const x = 1\n"})
	check := NewExternalLinter(config.LinterConfig{Command: "no-such-linter-77ab"}, toolprobe.NewProber())

	result, err := check.Run(context.Background(), cc)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, domain.StatusSkipped, result.Status)
}

func TestExternalLinter_NoSourceFiles(t *testing.T) {
	cc := hygieneContext(t, map[string]string{"README.md": "# docs\n"})
	check := NewExternalLinter(config.LinterConfig{Command: "sh"}, toolprobe.NewProber())

	result, err := check.Run(context.Background(), cc)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, domain.StatusSkipped, result.Status)
}

func TestInterpret_ParsesJSONSummary(t *testing.T) {
	check := NewExternalLinter(config.LinterConfig{Command: "eslint"}, toolprobe.NewProber())
	stdout := `[
		{"filePath": "src/app.ts", "messages": [
			{"ruleId": "no-unused-vars", "severity": 2, "message": "x is unused", "line": 4, "column": 7},
			{"ruleId": "semi", "severity": 1, "message": "missing semicolon", "line": 9, "column": 1,
			 "fix": {"range": [120, 120], "text": ";"}}
		]}
	]`

	result := check.interpret(&execx.Result{ExitCode: 1, Stdout: stdout})
	testutil.AssertEqual(t, domain.StatusFail, result.Status)
	testutil.AssertEqual(t, 2, len(result.Findings))

	first := result.Findings[0]
	testutil.AssertEqual(t, domain.SeverityError, first.Severity)
	testutil.AssertEqual(t, "tools/no-unused-vars", first.Code)
	testutil.AssertEqual(t, 4, first.Line)

	second := result.Findings[1]
	testutil.AssertEqual(t, domain.SeverityWarn, second.Severity)
	testutil.AssertTrue(t, second.Fixable, "finding with a fix should be fixable")
}

func TestInterpret_CleanJSONSummaryPasses(t *testing.T) {
	check := NewExternalLinter(config.LinterConfig{Command: "eslint"}, toolprobe.NewProber())
	result := check.interpret(&execx.Result{ExitCode: 0, Stdout: `[{"filePath": "src/app.ts", "messages": []}]`})
	testutil.AssertEqual(t, domain.StatusPass, result.Status)
}

func TestInterpret_UnparseableOutputFallsBackToExitCode(t *testing.T) {
	check := NewExternalLinter(config.LinterConfig{Command: "eslint"}, toolprobe.NewProber())

	result := check.interpret(&execx.Result{ExitCode: 2, Stdout: "segfault in plugin"})
	testutil.AssertEqual(t, domain.StatusFail, result.Status)
	testutil.AssertEqual(t, 1, len(result.Findings))
	testutil.AssertEqual(t, "tools/linter", result.Findings[0].Code)

	result = check.interpret(&execx.Result{ExitCode: 0, Stdout: "All files pass"})
	testutil.AssertEqual(t, domain.StatusPass, result.Status)
}

func TestParseSummary_RuleIDFallback(t *testing.T) {
	check := NewExternalLinter(config.LinterConfig{Command: "eslint"}, toolprobe.NewProber())
	findings, parsed := check.parseSummary(`[{"filePath": "a.ts", "messages": [{"severity": 1, "message": "m", "line": 1}]}]`)
	testutil.AssertTrue(t, parsed, "summary should parse")
	testutil.AssertEqual(t, "tools/linter", findings[0].Code)
}
