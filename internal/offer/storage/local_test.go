package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLocalStore_PutGet(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	ctx := context.Background()

	key := ProjectFileKey("proj_1", "Datasheet.PDF")
	if !strings.HasPrefix(key, "projects/proj_1/") || !strings.HasSuffix(key, ".pdf") {
		t.Fatalf("unexpected key %q", key)
	}

	if err := store.Put(ctx, key, strings.NewReader("hello"), 5, "application/pdf"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	rc, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "hello" {
		t.Errorf("Expected hello, got %q", data)
	}
}

func TestLocalStore_Missing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	if _, err := store.Get(context.Background(), "projects/x/none.txt"); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("Expected ErrObjectNotFound, got %v", err)
	}
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	if err := store.Put(context.Background(), "../escape.txt", strings.NewReader("x"), 1, ""); err == nil {
		t.Fatal("Expected error for key with ..")
	}
}
