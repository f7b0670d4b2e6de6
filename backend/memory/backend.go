package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/mwantia/vfsh/backend"
	"github.com/mwantia/vfsh/data"
	"github.com/mwantia/vfsh/data/errors"
	"github.com/tidwall/btree"
)

// MemoryBackend keeps entries, users and content in process memory.
// Nothing survives Close, which makes it suited for tests and demos.
type MemoryBackend struct {
	mu sync.RWMutex

	entries  []*data.Entry
	users    []*data.User
	contents *btree.Map[string, []byte]

	// Number of SaveEntries calls, used by tests to observe persistence
	saves int
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		contents: btree.NewMap[string, []byte](0),
	}
}

// Name returns the identifier name defined for this backend
func (*MemoryBackend) Name() string {
	return "memory"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (mb *MemoryBackend) Open(ctx context.Context) error {
	// No initialization needed - backend is ready to use
	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (mb *MemoryBackend) Close(ctx context.Context) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.entries = nil
	mb.users = nil
	mb.contents.Clear()

	return nil
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (mb *MemoryBackend) GetCapabilities() *backend.BackendCapabilities {
	return backend.GetAllCapabilities()
}

func (mb *MemoryBackend) LoadEntries(ctx context.Context) ([]*data.Entry, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	return cloneEntries(mb.entries), nil
}

func (mb *MemoryBackend) SaveEntries(ctx context.Context, entries []*data.Entry) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.entries = cloneEntries(entries)
	mb.saves++

	return nil
}

// Saves returns how often SaveEntries has been called.
func (mb *MemoryBackend) Saves() int {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	return mb.saves
}

func (mb *MemoryBackend) LoadUsers(ctx context.Context) ([]*data.User, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	users := make([]*data.User, 0, len(mb.users))
	for _, user := range mb.users {
		users = append(users, user.Clone())
	}

	return users, nil
}

// AddUser appends user to the list returned by LoadUsers.
func (mb *MemoryBackend) AddUser(user *data.User) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.users = append(mb.users, user.Clone())
}

func (mb *MemoryBackend) OpenContent(ctx context.Context, name string) (io.ReadCloser, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	content, ok := mb.contents.Get(name)
	if !ok {
		return nil, errors.EntryNotFound(name, mb.Name())
	}

	return io.NopCloser(bytes.NewReader(content)), nil
}

// SetContent stores content under name, replacing any previous value.
func (mb *MemoryBackend) SetContent(name string, content []byte) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.contents.Set(name, bytes.Clone(content))
}

func cloneEntries(entries []*data.Entry) []*data.Entry {
	clones := make([]*data.Entry, 0, len(entries))
	for _, entry := range entries {
		clones = append(clones, entry.Clone())
	}

	return clones
}
