package app

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// skipDirs are directory names never descended into
var skipDirs = map[string]bool{
	"node_modules": true,
}

// FileHelper walks the repository for the full-tree and explicit-path
// scopes. A root .gitignore, when present, filters the walk the same
// way git would.
type FileHelper struct {
	root    string
	matcher *ignore.GitIgnore
}

// NewFileHelper creates a helper rooted at the repository root
func NewFileHelper(root string) *FileHelper {
	h := &FileHelper{root: root}
	if matcher, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		h.matcher = matcher
	}
	return h
}

// CollectFiles resolves the given paths into a repository-relative
// file list. Files are included verbatim; directories are walked
// recursively, skipping dot-directories and node_modules. An empty
// path list walks the whole root. The output is deduplicated in
// first-seen order.
func (h *FileHelper) CollectFiles(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{h.root}
	}

	files := []string{}
	seen := map[string]bool{}
	add := func(rel string) {
		rel = filepath.ToSlash(rel)
		if seen[rel] {
			return
		}
		seen[rel] = true
		files = append(files, rel)
	}

	for _, path := range paths {
		abs := path
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(h.root, path)
		}

		info, err := os.Stat(abs)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			rel, err := h.relative(abs)
			if err != nil {
				return nil, err
			}
			add(rel)
			continue
		}

		err = filepath.Walk(abs, func(filePath string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := h.relative(filePath)
			if relErr != nil {
				return relErr
			}
			if info.IsDir() {
				if filePath == abs {
					return nil
				}
				name := filepath.Base(filePath)
				if skipDirs[name] || strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				if h.ignored(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if h.ignored(rel) {
				return nil
			}
			add(rel)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// FileExists checks if a regular file exists
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (h *FileHelper) relative(abs string) (string, error) {
	rel, err := filepath.Rel(h.root, abs)
	if err != nil {
		return "", err
	}
	return rel, nil
}

func (h *FileHelper) ignored(rel string) bool {
	if h.matcher == nil {
		return false
	}
	return h.matcher.MatchesPath(filepath.ToSlash(rel))
}
