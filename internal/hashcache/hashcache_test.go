package hashcache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hexlab-tools/hexvalidate/internal/constants"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestChanged_ColdCache(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.ts", "const a = 1")
	writeFile(t, root, "b.ts", "const b = 2")

	cache := New(root)
	changed, fresh := cache.Changed("sample", []string{"a.ts", "b.ts"})
	if len(changed) != 2 {
		t.Errorf("cold cache should report everything changed, got %v", changed)
	}
	if len(fresh) != 2 {
		t.Errorf("expected fresh hashes for both files, got %v", fresh)
	}
}

func TestChanged_AfterUpdate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.ts", "const a = 1")
	writeFile(t, root, "b.ts", "const b = 2")

	cache := New(root)
	_, fresh := cache.Changed("sample", []string{"a.ts", "b.ts"})
	cache.Update("sample", fresh)

	// A new instance forces a re-read from disk
	reloaded := New(root)
	changed, _ := reloaded.Changed("sample", []string{"a.ts", "b.ts"})
	if len(changed) != 0 {
		t.Errorf("expected no changes after update, got %v", changed)
	}

	writeFile(t, root, "a.ts", "const a = 99")
	changed, _ = reloaded.Changed("sample", []string{"a.ts", "b.ts"})
	if len(changed) != 1 || changed[0] != "a.ts" {
		t.Errorf("expected only a.ts changed, got %v", changed)
	}
}

func TestChanged_UnreadableFileIsChanged(t *testing.T) {
	root := t.TempDir()
	cache := New(root)

	changed, fresh := cache.Changed("sample", []string{"missing.ts"})
	if len(changed) != 1 {
		t.Errorf("missing file must count as changed, got %v", changed)
	}
	if len(fresh) != 0 {
		t.Errorf("missing file must not get a fresh hash, got %v", fresh)
	}
}

func TestUpdate_PartitionsAreIndependent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.ts", "const a = 1")

	cache := New(root)
	_, fresh := cache.Changed("first", []string{"a.ts"})
	cache.Update("first", fresh)
	cache.Update("second", map[string]string{"other.ts": "deadbeef"})

	reloaded := New(root)
	if got := reloaded.Partition("first"); len(got) != 1 {
		t.Errorf("first partition should survive second's update, got %v", got)
	}
	if got := reloaded.Partition("second"); got["other.ts"] != "deadbeef" {
		t.Errorf("second partition should hold its hashes, got %v", got)
	}
}

func TestLoad_MalformedFileDegrades(t *testing.T) {
	root := t.TempDir()
	cachePath := filepath.Join(root, constants.CacheDirName, constants.CacheFileName)
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cachePath, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	cache := New(root)
	if got := cache.Partition("sample"); len(got) != 0 {
		t.Errorf("malformed cache should degrade to empty, got %v", got)
	}
}

func TestWrite_DocumentShape(t *testing.T) {
	root := t.TempDir()
	cache := New(root)
	cache.Update("sample", map[string]string{"a.ts": "abc123"})

	data, err := os.ReadFile(filepath.Join(root, constants.CacheDirName, constants.CacheFileName))
	if err != nil {
		t.Fatalf("expected cache file on disk: %v", err)
	}

	var doc struct {
		Plugins map[string]map[string]string `json:"plugins"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("cache file should be valid JSON: %v", err)
	}
	if doc.Plugins["sample"]["a.ts"] != "abc123" {
		t.Errorf("unexpected document shape: %s", data)
	}
}

func TestHashFile_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.ts", "const a = 1")

	cache := New(root)
	first, err := cache.HashFile("a.ts")
	if err != nil {
		t.Fatal(err)
	}
	second, err := cache.HashFile("a.ts")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("hash should be deterministic: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("expected hex sha256, got %q", first)
	}
}
