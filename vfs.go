package vfs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/vfsh/backend"
	"github.com/mwantia/vfsh/backend/memory"
	"github.com/mwantia/vfsh/data"
	"github.com/mwantia/vfsh/data/errors"
	"github.com/mwantia/vfsh/log"
	"github.com/mwantia/vfsh/metrics"
	"github.com/mwantia/vfsh/store"
)

// VirtualFileSystem is the namespace engine shared by all sessions.
//
// Every namespace operation holds mu for its whole duration, so operations
// never interleave even when several sessions exist.
type VirtualFileSystem struct {
	mu sync.Mutex

	store   *store.EntryStore
	content backend.ContentBackend

	users     []*data.User
	usersByID map[string]*data.User

	backends []backend.Backend
	logger   *log.Logger
	fatal    func(err error)
	now      func() time.Time
}

// NewVirtualFileSystem opens the configured backends and loads users and
// entries once. Backends that are not configured fall back to an empty
// memory backend.
func NewVirtualFileSystem(ctx context.Context, options ...VirtualFileSystemOption) (*VirtualFileSystem, error) {
	opts := newDefaultVirtualFileSystemOptions()
	for _, opt := range options {
		if err := opt(opts); err != nil {
			return nil, err
		}
	}

	if opts.Entries == nil || opts.Users == nil || opts.Content == nil {
		fallback := memory.NewMemoryBackend()
		if opts.Entries == nil {
			opts.Entries = fallback
		}
		if opts.Users == nil {
			opts.Users = fallback
		}
		if opts.Content == nil {
			opts.Content = fallback
		}
	}

	v := &VirtualFileSystem{
		content:   opts.Content,
		usersByID: make(map[string]*data.User),
		logger:    opts.Logger,
		fatal:     opts.FatalHandler,
		now:       opts.Clock,
	}

	if v.fatal == nil {
		v.fatal = func(err error) {
			v.logger.Fatal("Unable to persist entries, stopping: %v", err)
		}
	}

	if err := v.open(ctx, opts); err != nil {
		v.Close(ctx)
		return nil, err
	}

	return v, nil
}

func (v *VirtualFileSystem) open(ctx context.Context, opts *VirtualFileSystemOptions) error {
	required := []struct {
		backend    backend.Backend
		capability backend.BackendCapability
	}{
		{opts.Entries, backend.CapabilityEntries},
		{opts.Users, backend.CapabilityUsers},
		{opts.Content, backend.CapabilityContent},
	}

	for _, r := range required {
		if err := backend.Require(r.backend, r.capability); err != nil {
			return err
		}

		if v.isOpen(r.backend) {
			continue
		}

		if err := r.backend.Open(ctx); err != nil {
			return err
		}
		v.backends = append(v.backends, r.backend)
		v.logger.Debug("Opened backend '%s' for %s", r.backend.Name(), r.capability)
	}

	users, err := opts.Users.LoadUsers(ctx)
	if err != nil {
		return err
	}

	for _, user := range users {
		if _, exists := v.usersByID[user.ID]; exists {
			v.logger.Warn("Ignoring duplicate user '%s'", user.ID)
			continue
		}

		v.users = append(v.users, user)
		v.usersByID[user.ID] = user
	}

	v.store = store.NewEntryStore(opts.Entries,
		store.WithCapacity(opts.Capacity),
		store.WithLogger(v.logger.Named("store")))

	if err := v.store.Load(ctx); err != nil {
		return err
	}

	v.logger.Info("Loaded %d/%d entries from '%s' and %d users",
		v.store.Len(), v.store.Capacity(), v.store.BackendName(), len(v.users))
	return nil
}

func (v *VirtualFileSystem) isOpen(b backend.Backend) bool {
	for _, opened := range v.backends {
		if opened == b {
			return true
		}
	}

	return false
}

// Close closes every backend opened by NewVirtualFileSystem.
func (v *VirtualFileSystem) Close(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	var errs errors.Errors
	for i := len(v.backends) - 1; i >= 0; i-- {
		errs.Add(v.backends[i].Close(ctx))
	}
	v.backends = nil

	return errs.Errors()
}

// Login starts a new session for the user with the given id.
// Sessions always start at the root directory.
func (v *VirtualFileSystem) Login(ctx context.Context, id string) (*Session, error) {
	user, ok := v.LookupUser(id)
	metrics.RecordLogin(ok)

	if !ok {
		v.logger.Warn("Login failed for unknown user '%s'", id)
		return nil, errors.UnknownUser(id)
	}

	sessionID := uuid.Must(uuid.NewV7()).String()
	v.logger.Info("User '%s' logged in with session '%s'", user.ID, sessionID)

	return &Session{
		id:      sessionID,
		user:    user,
		current: data.RootPath,
		vfs:     v,
		logger:  v.logger.Named("session").With("session", sessionID).With("user", user.ID),
	}, nil
}

// LookupUser returns a copy of the user with the given id.
func (v *VirtualFileSystem) LookupUser(id string) (*data.User, bool) {
	user, ok := v.usersByID[id]
	if !ok {
		return nil, false
	}

	return user.Clone(), true
}

// Users returns copies of all known users in load order.
func (v *VirtualFileSystem) Users() []*data.User {
	users := make([]*data.User, 0, len(v.users))
	for _, user := range v.users {
		users = append(users, user.Clone())
	}

	return users
}

// Entries returns copies of every stored entry in insertion order.
func (v *VirtualFileSystem) Entries() []*data.Entry {
	return v.store.Entries()
}

// persist rewrites the entry set. A failure means memory and storage have
// diverged, so the fatal handler is invoked before the error is returned.
func (v *VirtualFileSystem) persist(ctx context.Context) error {
	if err := v.store.Persist(ctx); err != nil {
		v.logger.Error("Failed to persist entries: %v", err)
		v.fatal(err)

		return err
	}

	return nil
}
