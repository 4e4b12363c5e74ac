package localfs

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveOpenRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, "model.bin", strings.NewReader("hello artifact")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	rc, err := store.Open(ctx, "model.bin")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(raw) != "hello artifact" {
		t.Fatalf("unexpected content %q", raw)
	}
}

func TestSaveOverwritesAtomically(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, "model.bin", strings.NewReader("v1")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save(ctx, "model.bin", strings.NewReader("v2")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	rc, err := store.Open(ctx, "model.bin")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()
	raw, _ := io.ReadAll(rc)
	if string(raw) != "v2" {
		t.Fatalf("expected latest version, got %q", raw)
	}
}

func TestExists(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	ok, err := store.Exists(ctx, "model.bin")
	if err != nil || ok {
		t.Fatalf("Exists() before save = %v, %v", ok, err)
	}
	if err := store.Save(ctx, "model.bin", strings.NewReader("x")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	ok, err = store.Exists(ctx, "model.bin")
	if err != nil || !ok {
		t.Fatalf("Exists() after save = %v, %v", ok, err)
	}
}
