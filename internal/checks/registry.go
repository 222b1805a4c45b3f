// Package checks provides the built-in checks and the registry that
// resolves configuration ids into constructed check values.
package checks

import (
	"fmt"
	"sort"

	"github.com/hexlab-tools/hexvalidate/domain"
	"github.com/hexlab-tools/hexvalidate/internal/config"
	"github.com/hexlab-tools/hexvalidate/internal/hashcache"
	"github.com/hexlab-tools/hexvalidate/internal/toolprobe"
)

// Deps bundles the collaborators a check constructor may capture
type Deps struct {
	// Settings is the serialized configuration with per-check options
	Settings *config.Config

	// Cache is the per-check file hash cache
	Cache *hashcache.Cache

	// Prober detects external tools
	Prober *toolprobe.Prober
}

// Constructor builds one check from its dependencies
type Constructor func(deps Deps) domain.Check

var registry = map[string]Constructor{}

// Register adds a constructor under a stable id. Later registrations
// under the same id replace earlier ones.
func Register(id string, ctor Constructor) {
	registry[id] = ctor
}

// Build resolves an id into a constructed check
func Build(id string, deps Deps) (domain.Check, error) {
	ctor, ok := registry[id]
	if !ok {
		return nil, domain.NewConfigError(fmt.Sprintf("unknown check id %q", id), nil)
	}
	return ctor(deps), nil
}

// Registered returns the known ids in sorted order
func Registered() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func init() {
	Register(config.CheckIDFocusedTests, func(deps Deps) domain.Check {
		return NewNoFocusedTests(deps.Cache)
	})
	Register(config.CheckIDDebugStatements, func(deps Deps) domain.Check {
		return NewNoDebugStatements(deps.Settings.Checks.Hygiene)
	})
	Register(config.CheckIDLinter, func(deps Deps) domain.Check {
		return NewExternalLinter(deps.Settings.Checks.Linter, deps.Prober)
	})
	Register(config.CheckIDE2E, func(deps Deps) domain.Check {
		return NewE2EGate(deps.Settings.Checks.E2E)
	})
}
