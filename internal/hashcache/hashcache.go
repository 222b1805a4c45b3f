// Package hashcache persists per-check per-file content hashes so
// checks can skip unchanged work across runs.
package hashcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/hexlab-tools/hexvalidate/internal/constants"
)

// document is the on-disk cache shape:
// { "plugins": { <check-name>: { <relative-file-path>: <content-hash> } } }
type document struct {
	Plugins map[string]map[string]string `json:"plugins"`
}

// Cache is the file hash cache bound to one repository. The scheduler
// guarantees at most one check owns any partition at a time, so the
// cache needs no inter-check file locking; writes still go through an
// atomic rename to tolerate crashes mid-write.
type Cache struct {
	root string
	path string

	mu     sync.Mutex
	loaded bool
	doc    document
	warned bool
}

// New creates a cache rooted at the repository working directory.
// The backing document lives at <repo>/.cache/hexvalidate.json and is
// read lazily on first use.
func New(repoRoot string) *Cache {
	return &Cache{
		root: repoRoot,
		path: filepath.Join(repoRoot, constants.CacheDirName, constants.CacheFileName),
	}
}

// HashFile computes the content hash of one repo-relative file
func (c *Cache) HashFile(relPath string) (string, error) {
	data, err := os.ReadFile(filepath.Join(c.root, relPath))
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Partition returns a copy of the stored hashes for one check
func (c *Cache) Partition(check string) map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()

	stored := c.doc.Plugins[check]
	out := make(map[string]string, len(stored))
	for k, v := range stored {
		out[k] = v
	}
	return out
}

// Changed hashes each candidate file and returns the subset whose hash
// differs from the stored partition, plus the fresh hashes for every
// readable candidate. Unreadable files are treated as changed.
func (c *Cache) Changed(check string, files []string) ([]string, map[string]string) {
	stored := c.Partition(check)

	changed := []string{}
	fresh := make(map[string]string, len(files))
	for _, f := range files {
		hash, err := c.HashFile(f)
		if err != nil {
			changed = append(changed, f)
			continue
		}
		fresh[f] = hash
		if stored[f] != hash {
			changed = append(changed, f)
		}
	}
	return changed, fresh
}

// Update replaces one check's partition with the given hashes and
// writes the document back. The document is re-read first so a check
// running after another in the same stage does not clobber partitions
// written since our lazy load.
func (c *Cache) Update(check string, hashes map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loaded = false
	c.load()

	if c.doc.Plugins == nil {
		c.doc.Plugins = make(map[string]map[string]string)
	}
	c.doc.Plugins[check] = hashes

	if err := c.write(); err != nil {
		c.warnOnce("failed to write cache: %v", err)
	}
}

// load reads the document once; a missing or malformed file degrades
// to an empty cache with a single warning on stderr.
func (c *Cache) load() {
	if c.loaded {
		return
	}
	c.loaded = true
	c.doc = document{Plugins: make(map[string]map[string]string)}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.warnOnce("failed to read cache: %v", err)
		}
		return
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		c.warnOnce("malformed cache %s: %v", c.path, err)
		return
	}
	if doc.Plugins == nil {
		doc.Plugins = make(map[string]map[string]string)
	}
	c.doc = doc
}

func (c *Cache) write() error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(&c.doc, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, constants.CacheFileName+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, c.path); err != nil {
		// Some filesystems refuse cross-device renames; copy then unlink
		if copyErr := copyFile(tmpName, c.path); copyErr != nil {
			os.Remove(tmpName)
			return err
		}
		os.Remove(tmpName)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (c *Cache) warnOnce(format string, args ...any) {
	if c.warned {
		return
	}
	c.warned = true
	fmt.Fprintf(os.Stderr, "%s: %s\n", constants.ToolName, fmt.Sprintf(format, args...))
}
