package config

// Built-in check registry ids used by the default pipeline
const (
	CheckIDFocusedTests    = "no-focused-tests"
	CheckIDDebugStatements = "no-debug-statements"
	CheckIDLinter          = "external-linter"
	CheckIDE2E             = "e2e-gate"
)

// DefaultConfig returns the compiled-in pipeline used when no config
// file is discovered
func DefaultConfig() *Config {
	return &Config{
		E2E:        DefaultE2EMode,
		Reporters:  []string{"summary"},
		MaxWorkers: DefaultMaxWorkers,
		Stages: []StageConfig{
			{
				Name:     "static",
				Parallel: true,
				Checks:   []string{CheckIDFocusedTests, CheckIDDebugStatements},
			},
			{
				Name:     "tools",
				Parallel: true,
				Checks:   []string{CheckIDLinter},
			},
			{
				Name:   "e2e",
				Checks: []string{CheckIDE2E},
			},
		},
		Checks: ChecksConfig{
			Linter: LinterConfig{
				Command: "eslint",
				Args:    []string{"--format", "json"},
			},
			E2E: E2ECommandConfig{
				Command: "npm",
				Args:    []string{"run", "test:e2e"},
			},
			Hygiene: HygieneConfig{
				AllowConsole: []string{"warn", "error"},
			},
		},
	}
}
