package config

import "fmt"

// ProjectType selects the scaffolded pipeline shape
type ProjectType string

const (
	// ProjectTypeGeneric suits most single-package repositories
	ProjectTypeGeneric ProjectType = "generic"

	// ProjectTypeNode wires the external linter stage to eslint
	ProjectTypeNode ProjectType = "node"

	// ProjectTypeMonorepo wires eslint and raises the worker cap to 8
	ProjectTypeMonorepo ProjectType = "monorepo"
)

// Strictness selects how aggressively warnings fail the pipeline
type Strictness string

const (
	// StrictnessLenient never fails on warnings
	StrictnessLenient Strictness = "lenient"

	// StrictnessStandard fails on warnings in the static stage only
	StrictnessStandard Strictness = "standard"

	// StrictnessStrict fails on warnings in every stage
	StrictnessStrict Strictness = "strict"
)

const templateHeader = `# hex-validate configuration
#
# Stages run in order; within a parallel stage checks share a bounded
# worker pool. The pipeline aborts at the first failing stage.
`

const templateFull = templateHeader + `
# End-to-end mode: auto (CI only), always, off
e2e: off

# Default reporters: summary, json, junit
reporters:
  - summary

# Parallel worker cap per stage (hard ceiling is 8)
max_workers: %d

stages:
  - name: static
    parallel: true
    fail_on_warn: %t
    checks:
      - %s
      - %s
  - name: tools
    parallel: true
    fail_on_warn: %t
    checks:
      - %s
  - name: e2e
    fail_on_warn: false
    checks:
      - %s

checks:
  linter:
    command: %s
    args: ["--format", "json"]
  e2e:
    command: npm
    args: ["run", "test:e2e"]
  hygiene:
    allow_console: ["warn", "error"]
`

const templateMinimal = templateHeader + `
e2e: off
max_workers: %d

stages:
  - name: static
    parallel: true
    checks:
      - %s
      - %s
`

// GenerateTemplate renders a documented YAML config for the given
// project type and strictness
func GenerateTemplate(projectType ProjectType, strictness Strictness, minimal bool) string {
	workers := DefaultMaxWorkers
	if projectType == ProjectTypeMonorepo {
		workers = 8
	}

	if minimal {
		return fmt.Sprintf(templateMinimal, workers,
			CheckIDFocusedTests, CheckIDDebugStatements)
	}

	staticFailOnWarn := strictness != StrictnessLenient
	toolsFailOnWarn := strictness == StrictnessStrict

	linter := "eslint"
	if projectType == ProjectTypeGeneric {
		linter = "lint"
	}

	return fmt.Sprintf(templateFull, workers,
		staticFailOnWarn, CheckIDFocusedTests, CheckIDDebugStatements,
		toolsFailOnWarn, CheckIDLinter,
		CheckIDE2E,
		linter)
}
