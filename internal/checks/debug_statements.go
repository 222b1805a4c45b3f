package checks

import (
	"context"
	"regexp"
	"strings"

	"github.com/hexlab-tools/hexvalidate/domain"
	"github.com/hexlab-tools/hexvalidate/internal/config"
)

var (
	debuggerPattern = regexp.MustCompile(`(^|\s)debugger\s*;`)
	consolePattern  = regexp.MustCompile(`console\.([a-zA-Z]+)\s*\(`)
)

// NoDebugStatements flags debugger statements and disallowed console
// calls in source files
type NoDebugStatements struct {
	allowConsole map[string]bool
	allowedList  []string
}

// NewNoDebugStatements creates the debug-statement check
func NewNoDebugStatements(cfg config.HygieneConfig) *NoDebugStatements {
	allow := make(map[string]bool, len(cfg.AllowConsole))
	allowed := make([]string, 0, len(cfg.AllowConsole))
	for _, call := range cfg.AllowConsole {
		if !allow[call] {
			allowed = append(allowed, call)
		}
		allow[call] = true
	}
	return &NoDebugStatements{allowConsole: allow, allowedList: allowed}
}

// Name returns the display name of the check
func (c *NoDebugStatements) Name() string {
	return "No debug statements"
}

// Run scans source files in scope for leftover debugging aids
func (c *NoDebugStatements) Run(ctx context.Context, cc *domain.CheckContext) (*domain.CheckResult, error) {
	files := selectSourceFiles(cc.ScopedFiles(), false)
	if len(files) == 0 {
		return domain.NewSkippedResult(c.Name(), "no source files in scope"), nil
	}

	findings := []domain.Finding{}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		eachLine(cc.Cwd, file, func(line string, n int) {
			if loc := debuggerPattern.FindStringIndex(line); loc != nil {
				findings = append(findings, domain.Finding{
					File:       file,
					Line:       n,
					Column:     loc[0] + 1,
					Severity:   domain.SeverityWarn,
					Code:       "hygiene/no-debugger",
					Message:    "debugger statement left in source",
					Suggestion: "delete the debugger statement",
				})
			}
			for _, m := range consolePattern.FindAllStringSubmatchIndex(line, -1) {
				call := line[m[2]:m[3]]
				if c.allowConsole[call] {
					continue
				}
				findings = append(findings, domain.Finding{
					File:       file,
					Line:       n,
					Column:     m[0] + 1,
					Severity:   domain.SeverityWarn,
					Code:       "hygiene/no-console",
					Message:    "console." + call + " call left in source",
					Suggestion: "use the project logger or an allowed console call (" + strings.Join(c.allowedList, ", ") + ")",
				})
			}
		})
	}

	return domain.NewResult(c.Name(), findings), nil
}
