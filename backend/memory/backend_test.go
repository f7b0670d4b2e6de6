package memory_test

import (
	"errors"
	"io"
	"testing"

	"github.com/mwantia/vfsh/backend/memory"
	"github.com/mwantia/vfsh/data"
	vfserrors "github.com/mwantia/vfsh/data/errors"
)

func TestMemoryBackend_EntriesAreCopied(t *testing.T) {
	ctx := t.Context()
	mb := memory.NewMemoryBackend()

	entry := &data.Entry{ParentPath: "/", Kind: data.KindDirectory, Name: "etc", SelfPath: "/etc", Owner: "root"}
	if err := mb.SaveEntries(ctx, []*data.Entry{entry}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entry.Owner = "bob"

	loaded, err := mb.LoadEntries(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Owner != "root" {
		t.Errorf("Expected stored copy owned by root, got %+v", loaded)
	}
	if mb.Saves() != 1 {
		t.Errorf("Expected 1 save, got %d", mb.Saves())
	}
}

func TestMemoryBackend_Content(t *testing.T) {
	ctx := t.Context()
	mb := memory.NewMemoryBackend()
	mb.SetContent("app.log", []byte("hello"))

	reader, err := mb.OpenContent(ctx, "app.log")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer reader.Close()

	got, _ := io.ReadAll(reader)
	if string(got) != "hello" {
		t.Errorf("Expected 'hello', got %q", got)
	}

	if _, err := mb.OpenContent(ctx, "missing"); !errors.Is(err, vfserrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
