package backend

import (
	"context"
	"io"

	"github.com/mwantia/vfsh/data"
)

// Backend is used as lifecycle entrypoint for other backend implementations.
type Backend interface {
	// Name returns the identifier name defined for this backend.
	Name() string
	// Open is part of the lifecycle behaviour and gets called when opening this backend.
	Open(ctx context.Context) error
	// Close is part of the lifecycle behaviour and gets called when closing this backend.
	Close(ctx context.Context) error

	// GetCapabilities returns a list of capabilities supported by this backend.
	GetCapabilities() *BackendCapabilities
}

// EntryBackend stores the full entry list.
// Entries are always loaded and saved as a whole, in insertion order.
type EntryBackend interface {
	Backend

	// LoadEntries returns every stored entry in insertion order.
	LoadEntries(ctx context.Context) ([]*data.Entry, error)
	// SaveEntries replaces the stored entry list with entries.
	SaveEntries(ctx context.Context, entries []*data.Entry) error
}

// UserBackend provides the read-only list of known users.
type UserBackend interface {
	Backend

	LoadUsers(ctx context.Context) ([]*data.User, error)
}

// UserWriter is implemented by user backends that can store a user list.
// It is only used to seed new installations.
type UserWriter interface {
	UserBackend

	SaveUsers(ctx context.Context, users []*data.User) error
}

// ContentBackend provides file content addressed by entry name.
type ContentBackend interface {
	Backend

	// OpenContent opens the content stored under name.
	// Returns errors.ErrNotFound if nothing is stored under name.
	OpenContent(ctx context.Context, name string) (io.ReadCloser, error)
}
