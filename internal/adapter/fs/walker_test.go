package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWalkerIncludesAndExcludes(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"models/quad.py":             "def f(x, a):\n    return x\n",
		"models/__pycache__/quad.py": "",
		"notes.txt":                  "",
		"top.py":                     "",
		".venv/lib/site.py":          "",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	w := NewWalker(nil, []string{"**/__pycache__/**", ".venv/**"})
	got, err := w.Walk(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(got), got)
	}
	if filepath.Base(got[0].Path) != "quad.py" || filepath.Base(got[1].Path) != "top.py" {
		t.Errorf("unexpected files: %v", got)
	}
	if got[0].Size == 0 {
		t.Error("expected non-zero size for quad.py")
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.py")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil || got != "x" {
		t.Errorf("expected %q, got %q (%v)", "x", got, err)
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.py")); err == nil {
		t.Error("expected error for missing file")
	}
}
