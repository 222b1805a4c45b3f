package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMarker(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestFindRoot_ManifestMarker(t *testing.T) {
	root := t.TempDir()
	writeMarker(t, root, "package.json")

	nested := filepath.Join(root, "src", "components")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if got := FindRoot(nested); got != root {
		t.Errorf("expected %s, got %s", root, got)
	}
}

func TestFindRoot_WorkspaceMarkerWins(t *testing.T) {
	root := t.TempDir()
	writeMarker(t, root, "pnpm-workspace.yaml")

	pkg := filepath.Join(root, "packages", "web")
	if err := os.MkdirAll(pkg, 0755); err != nil {
		t.Fatal(err)
	}
	// Nested package manifest must not shadow the workspace root
	writeMarker(t, pkg, "package.json")

	if got := FindRoot(pkg); got != root {
		t.Errorf("expected workspace root %s, got %s", root, got)
	}
}

func TestFindRoot_NoMarkers(t *testing.T) {
	dir := t.TempDir()
	if got := FindRoot(dir); got != dir {
		t.Errorf("expected start dir %s back, got %s", dir, got)
	}
}

func TestFindRoot_GoModule(t *testing.T) {
	root := t.TempDir()
	writeMarker(t, root, "go.mod")

	nested := filepath.Join(root, "internal", "pkg")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if got := FindRoot(nested); got != root {
		t.Errorf("expected %s, got %s", root, got)
	}
}
