package storage

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

func TestFileContentStore_PutAndGet(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileContentStore(dir)
	if err != nil {
		t.Fatalf("NewFileContentStore failed: %v", err)
	}

	content := []byte("print(1)\n")
	if err := store.Put("abc123xy", content); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get("abc123xy")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("round-trip mismatch: got %q, want %q", got, content)
	}
}

func TestFileContentStore_GetMissing(t *testing.T) {
	store, err := NewFileContentStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileContentStore failed: %v", err)
	}
	if _, err := store.Get("nope1234"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFileContentStore_DeleteIdempotent(t *testing.T) {
	store, err := NewFileContentStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileContentStore failed: %v", err)
	}
	if err := store.Put("gone1234", []byte("x")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Delete("gone1234"); err != nil {
		t.Errorf("first Delete failed: %v", err)
	}
	if err := store.Delete("gone1234"); err != nil {
		t.Errorf("second Delete failed: %v", err)
	}
	if err := store.Delete("never-existed"); err != nil {
		t.Errorf("Delete of absent id failed: %v", err)
	}
}

func TestFileContentStore_Stat(t *testing.T) {
	store, err := NewFileContentStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileContentStore failed: %v", err)
	}

	exists, _, err := store.Stat("missing1")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if exists {
		t.Error("expected missing content to not exist")
	}

	if err := store.Put("stat1234", []byte("hello")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	exists, size, err := store.Stat("stat1234")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !exists || size != 5 {
		t.Errorf("Stat = (%v, %d), want (true, 5)", exists, size)
	}
}

func TestFileContentStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "pastes")
	if _, err := NewFileContentStore(dir); err != nil {
		t.Fatalf("NewFileContentStore failed to create dir: %v", err)
	}
}
