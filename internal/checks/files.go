package checks

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// sourceExtensions are the file types the built-in checks look at
var sourceExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".mjs": true,
	".cjs": true,
	".mts": true,
	".cts": true,
}

func isSourceFile(path string) bool {
	return sourceExtensions[strings.ToLower(filepath.Ext(path))]
}

func isTestFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	return strings.Contains(base, ".test.") || strings.Contains(base, ".spec.")
}

// selectSourceFiles filters a scoped file list down to source files,
// optionally to test files only
func selectSourceFiles(files []string, testsOnly bool) []string {
	out := []string{}
	for _, f := range files {
		if !isSourceFile(f) {
			continue
		}
		if testsOnly && !isTestFile(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// eachLine calls fn for every line of the file at root/relPath with
// its 1-based line number. Unreadable files are silently skipped; a
// missing file in a staged scope just means it was deleted since the
// list was produced.
func eachLine(root, relPath string, fn func(line string, n int)) {
	f, err := os.Open(filepath.Join(root, relPath))
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		fn(scanner.Text(), n)
	}
}
