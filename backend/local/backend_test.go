package local_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwantia/vfsh/backend/local"
	vfserrors "github.com/mwantia/vfsh/data/errors"
)

func TestLocalBackend_OpenContent(t *testing.T) {
	ctx := t.Context()
	root := t.TempDir()

	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("line\n"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	lb, err := local.NewLocalBackend(root)
	if err != nil {
		t.Fatalf("Backend init failed: %v", err)
	}
	if err := lb.Open(ctx); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	reader, err := lb.OpenContent(ctx, "notes.txt")
	if err != nil {
		t.Fatalf("OpenContent failed: %v", err)
	}
	defer reader.Close()

	got, _ := io.ReadAll(reader)
	if string(got) != "line\n" {
		t.Errorf("Expected %q, got %q", "line\n", got)
	}

	if _, err := lb.OpenContent(ctx, "missing.txt"); !errors.Is(err, vfserrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if _, err := lb.OpenContent(ctx, "../notes.txt"); !errors.Is(err, vfserrors.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestLocalBackend_OpenMissingRoot(t *testing.T) {
	lb, err := local.NewLocalBackend(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("Backend init failed: %v", err)
	}

	if err := lb.Open(t.Context()); err == nil {
		t.Error("Expected error opening missing root")
	}
}
