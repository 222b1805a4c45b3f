// Package gitx resolves staged and changed file scopes by shelling out
// to git. Every operation degrades to an empty list when git is absent
// or the directory is not a repository, so the engine stays usable
// outside version-controlled trees.
package gitx

import (
	"context"
	"strings"

	"github.com/hexlab-tools/hexvalidate/internal/execx"
)

// StagedFiles returns the repo-relative paths of files added, copied,
// modified, or renamed in the index against HEAD.
func StagedFiles(ctx context.Context, cwd string) []string {
	return runNameOnly(ctx, cwd, "diff", "--name-only", "--cached", "--diff-filter=ACMR")
}

// ChangedFiles returns the repo-relative paths changed against the
// tracked upstream (symmetric difference). When no upstream is
// configured, it falls back to diffing against HEAD~1.
func ChangedFiles(ctx context.Context, cwd string) []string {
	if files, ok := tryNameOnly(ctx, cwd, "diff", "--name-only", "@{upstream}..."); ok {
		return files
	}
	return runNameOnly(ctx, cwd, "diff", "--name-only", "HEAD~1")
}

func runNameOnly(ctx context.Context, cwd string, args ...string) []string {
	files, _ := tryNameOnly(ctx, cwd, args...)
	return files
}

func tryNameOnly(ctx context.Context, cwd string, args ...string) ([]string, bool) {
	result, err := execx.Run(ctx, "git", args, execx.Options{Cwd: cwd})
	if err != nil || result.ExitCode != 0 {
		return []string{}, false
	}
	return splitLines(result.Stdout), true
}

func splitLines(out string) []string {
	files := []string{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files
}
