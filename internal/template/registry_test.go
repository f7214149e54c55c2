package template

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/resumeforge/resumeforge/internal/apperr"
	"github.com/resumeforge/resumeforge/internal/latex"
)

func TestBuiltinsAlwaysPresent(t *testing.T) {
	r, err := NewRegistry("", nil)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	styles := r.Styles()
	if len(styles) != 3 {
		t.Fatalf("styles = %v", styles)
	}
	for _, style := range []string{"academic", "classic", "modern"} {
		tpl, err := r.Get(style)
		if err != nil {
			t.Fatalf("Get(%s): %v", style, err)
		}
		if !latex.IsComplete(tpl) {
			t.Errorf("built-in %q is not a complete document", style)
		}
	}
}

func TestGetUnknownStyle(t *testing.T) {
	r, _ := NewRegistry("", nil)
	if _, err := r.Get("brutalist"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Get unknown = %v, want ErrNotFound", err)
	}
}

func TestDirectoryOverlay(t *testing.T) {
	dir := t.TempDir()
	custom := "\\documentclass{article}\n\\begin{document}\ncustom\n\\end{document}\n"
	if err := os.WriteFile(filepath.Join(dir, "modern.tex"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "minimal.tex"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}
	// Non-tex files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("skip"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewRegistry(dir, nil)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	// Disk file overrides the built-in with the same stem.
	got, err := r.Get("modern")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != custom {
		t.Error("disk template did not override built-in")
	}

	// New style from disk is available alongside the other built-ins.
	if _, err := r.Get("minimal"); err != nil {
		t.Errorf("Get(minimal): %v", err)
	}
	if len(r.Styles()) != 4 {
		t.Errorf("styles = %v", r.Styles())
	}
}

func TestReloadPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRegistry(dir, nil)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if len(r.Styles()) != 3 {
		t.Fatalf("styles = %v", r.Styles())
	}

	content := "\\documentclass{article}\n\\begin{document}\nnew\n\\end{document}\n"
	if err := os.WriteFile(filepath.Join(dir, "fresh.tex"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := r.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if _, err := r.Get("fresh"); err != nil {
		t.Errorf("Get after reload: %v", err)
	}
}

func TestMissingDirIsNotFatal(t *testing.T) {
	r, err := NewRegistry(filepath.Join(t.TempDir(), "does-not-exist"), nil)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if len(r.Styles()) != 3 {
		t.Errorf("styles = %v, want built-ins only", r.Styles())
	}
}
