package checks

import (
	"context"
	"strings"

	"github.com/hexlab-tools/hexvalidate/domain"
	"github.com/hexlab-tools/hexvalidate/internal/hashcache"
)

// focusedPatterns mark tests that silently narrow a suite to a subset
var focusedPatterns = []string{
	"fit(",
	"fdescribe(",
	".only(",
}

// NoFocusedTests flags focused test declarations left behind in test
// files. It uses the hash cache to restrict scanning to files whose
// content changed since the last clean run.
type NoFocusedTests struct {
	cache *hashcache.Cache
}

// NewNoFocusedTests creates the focused-tests check
func NewNoFocusedTests(cache *hashcache.Cache) *NoFocusedTests {
	return &NoFocusedTests{cache: cache}
}

// Name returns the display name of the check
func (c *NoFocusedTests) Name() string {
	return "No focused tests"
}

// Run scans changed test files for focused test markers
func (c *NoFocusedTests) Run(ctx context.Context, cc *domain.CheckContext) (*domain.CheckResult, error) {
	files := selectSourceFiles(cc.ScopedFiles(), true)
	if len(files) == 0 {
		return domain.NewSkippedResult(c.Name(), "no test files in scope"), nil
	}

	changed := files
	var fresh map[string]string
	if c.cache != nil {
		changed, fresh = c.cache.Changed(c.Name(), files)
		if len(changed) == 0 {
			return domain.NewSkippedResult(c.Name(), "all test files unchanged since last clean run"), nil
		}
	}

	findings := []domain.Finding{}
	dirty := make(map[string]bool)
	for _, file := range changed {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		eachLine(cc.Cwd, file, func(line string, n int) {
			for _, pattern := range focusedPatterns {
				col := strings.Index(line, pattern)
				if col < 0 {
					continue
				}
				dirty[file] = true
				findings = append(findings, domain.Finding{
					File:       file,
					Line:       n,
					Column:     col + 1,
					Severity:   domain.SeverityError,
					Code:       "testing/no-focused-tests",
					Message:    "focused test marker " + strings.TrimSuffix(pattern, "(") + " narrows the suite",
					Suggestion: "remove the focus marker so the whole suite runs",
				})
				break
			}
		})
	}

	if c.cache != nil {
		// Record hashes only for clean files so dirty ones are rescanned
		// on the next run even when unchanged
		clean := make(map[string]string, len(fresh))
		for file, hash := range fresh {
			if !dirty[file] {
				clean[file] = hash
			}
		}
		c.cache.Update(c.Name(), clean)
	}

	return domain.NewResult(c.Name(), findings), nil
}
