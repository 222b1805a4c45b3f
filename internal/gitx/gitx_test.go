package gitx

import (
	"context"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single", "a.ts\n", []string{"a.ts"}},
		{"blanks dropped", "a.ts\n\n  \nb.ts\n", []string{"a.ts", "b.ts"}},
		{"whitespace trimmed", "  a.ts  \n", []string{"a.ts"}},
		{"no trailing newline", "a.ts\nb.ts", []string{"a.ts", "b.ts"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLines(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("expected %v, got %v", tt.expected, got)
				}
			}
		})
	}
}

func TestStagedFiles_OutsideRepository(t *testing.T) {
	files := StagedFiles(context.Background(), t.TempDir())
	if len(files) != 0 {
		t.Errorf("expected empty list outside a repository, got %v", files)
	}
}

func TestChangedFiles_OutsideRepository(t *testing.T) {
	files := ChangedFiles(context.Background(), t.TempDir())
	if len(files) != 0 {
		t.Errorf("expected empty list outside a repository, got %v", files)
	}
}
