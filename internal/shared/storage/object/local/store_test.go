package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resume-builder/internal/shared/storage/object"
)

func TestSaveAndOpen(t *testing.T) {
	t.Parallel()

	store := New(t.TempDir())
	ctx := context.Background()

	n, err := store.Save(ctx, "exports/r1/resume.pdf", "application/pdf", strings.NewReader("%PDF-1.3 body"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if n != int64(len("%PDF-1.3 body")) {
		t.Fatalf("unexpected size %d", n)
	}

	rc, err := store.Open(ctx, "exports/r1/resume.pdf")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "%PDF-1.3 body" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestSaveRejectsEscapingKeys(t *testing.T) {
	t.Parallel()

	store := New(t.TempDir())
	for _, key := range []string{"../outside.pdf", "/abs/path.pdf", ""} {
		if _, err := store.Save(context.Background(), key, "", strings.NewReader("x")); !errors.Is(err, object.ErrInvalidKey) {
			t.Fatalf("key %q: expected ErrInvalidKey, got %v", key, err)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestSaveLeavesNothingOnFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := New(dir)

	reader := io.MultiReader(strings.NewReader("partial"), failingReader{})
	if _, err := store.Save(context.Background(), "exports/r1/resume.pdf", "application/pdf", reader); err == nil {
		t.Fatalf("expected error")
	}

	entries, err := os.ReadDir(filepath.Join(dir, "exports", "r1"))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files after failed save, found %d", len(entries))
	}
}

func TestDeleteRemovesObject(t *testing.T) {
	t.Parallel()

	store := New(t.TempDir())
	ctx := context.Background()
	if _, err := store.Save(ctx, "exports/r1/resume.doc", "application/msword", strings.NewReader("doc")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "exports/r1/resume.doc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Open(ctx, "exports/r1/resume.doc"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected object gone, got %v", err)
	}
	if err := store.Delete(ctx, "exports/r1/resume.doc"); err != nil {
		t.Fatalf("deleting a missing object should succeed, got %v", err)
	}
	if err := store.Delete(ctx, "../escape"); !errors.Is(err, object.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}
