// Package workspace locates the repository root for a validation run.
package workspace

import (
	"os"
	"path/filepath"
)

// workspaceMarkers identify a multi-package workspace root
var workspaceMarkers = []string{
	"pnpm-workspace.yaml",
	"lerna.json",
	"go.work",
	"rush.json",
}

// manifestMarkers identify a generic single-package root
var manifestMarkers = []string{
	"package.json",
	"go.mod",
}

// FindRoot walks upward from start and returns the first directory
// containing a workspace marker, or failing that the first directory
// containing a generic package manifest. When neither exists up to the
// filesystem root, start is returned unchanged. FindRoot has no side
// effects and is safe to call concurrently.
func FindRoot(start string) string {
	if dir := findUpward(start, workspaceMarkers); dir != "" {
		return dir
	}
	if dir := findUpward(start, manifestMarkers); dir != "" {
		return dir
	}
	return start
}

func findUpward(start string, markers []string) string {
	dir := start
	for {
		for _, marker := range markers {
			if fileExists(filepath.Join(dir, marker)) {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
