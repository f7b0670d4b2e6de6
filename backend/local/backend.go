package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwantia/vfsh/backend"
	vfserrors "github.com/mwantia/vfsh/data/errors"
)

// LocalBackend reads file content from a directory on the host.
// Content is looked up by the bare entry name, never by its virtual path.
type LocalBackend struct {
	root string
}

func NewLocalBackend(root string) (*LocalBackend, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	return &LocalBackend{
		root: abs,
	}, nil
}

// Name returns the identifier name defined for this backend
func (*LocalBackend) Name() string {
	return "local"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (lb *LocalBackend) Open(ctx context.Context) error {
	info, err := os.Stat(lb.root)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("content root '%s' is not a directory", lb.root)
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (lb *LocalBackend) Close(ctx context.Context) error {
	return nil
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (lb *LocalBackend) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities: []backend.BackendCapability{
			backend.CapabilityContent,
		},
	}
}

func (lb *LocalBackend) OpenContent(ctx context.Context, name string) (io.ReadCloser, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, vfserrors.InvalidArgument("invalid content name '%s'", name)
	}

	file, err := os.Open(filepath.Join(lb.root, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, vfserrors.EntryNotFound(name, lb.root)
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, vfserrors.PermissionDenied("open", name)
		}
		return nil, err
	}

	return file, nil
}
