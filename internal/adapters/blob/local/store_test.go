package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"petcare/internal/domain/uploads"
)

func TestStore_PutGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected directory to be created: %v", err)
	}

	ctx := context.Background()
	if err := s.Put(ctx, "cat.PNG", strings.NewReader("meow"), 4, "image/png"); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	rc, ct, err := s.Get(ctx, "cat.PNG")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	if string(b) != "meow" {
		t.Fatalf("unexpected content %q", b)
	}
	if ct != "image/png" {
		t.Fatalf("expected image/png, got %q", ct)
	}

	if _, _, err := s.Get(ctx, "missing.png"); !errors.Is(err, uploads.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_RejectsPathsOutsideRoot(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	for _, name := range []string{"../escape.png", "a/b.png", "", "."} {
		err := s.Put(context.Background(), name, strings.NewReader("x"), 1, "")
		if !errors.Is(err, ErrOutsideRoot) {
			t.Fatalf("Put(%q): expected ErrOutsideRoot, got %v", name, err)
		}
	}

	parent := filepath.Dir(s.Root())
	if _, err := os.Stat(filepath.Join(parent, "escape.png")); !os.IsNotExist(err) {
		t.Fatalf("file written outside root")
	}
}
