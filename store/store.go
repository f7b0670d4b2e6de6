package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/mwantia/vfsh/backend"
	"github.com/mwantia/vfsh/data"
	"github.com/mwantia/vfsh/data/errors"
	"github.com/mwantia/vfsh/log"
	"github.com/mwantia/vfsh/metrics"
	"github.com/tidwall/btree"
)

// DefaultCapacity is the maximum number of entries held by a store.
const DefaultCapacity = 256

// EntryStore owns the in-memory entry set and keeps it in sync with an
// EntryBackend.
//
// Entries are kept in insertion order, which is also the order they are
// persisted in. Lookups go through three indexes:
//
//	selfPaths: selfPath -> entries (ordered, btree)
//	children:  parentPath -> entries
//	names:     (parentPath, name) -> entries
//
// Loaded data is not required to be well formed, so every index maps to a
// list and lookups return the first match in insertion order.
type EntryStore struct {
	mu sync.RWMutex

	backend  backend.EntryBackend
	logger   *log.Logger
	capacity int

	entries   []*data.Entry
	selfPaths *btree.Map[string, []*data.Entry]
	children  map[string][]*data.Entry
	names     map[nameKey][]*data.Entry
}

type nameKey struct {
	dir  string
	name string
}

type EntryStoreOption func(*EntryStore)

func WithCapacity(capacity int) EntryStoreOption {
	return func(es *EntryStore) {
		if capacity > 0 {
			es.capacity = capacity
		}
	}
}

func WithLogger(logger *log.Logger) EntryStoreOption {
	return func(es *EntryStore) {
		if logger != nil {
			es.logger = logger
		}
	}
}

func NewEntryStore(backend backend.EntryBackend, opts ...EntryStoreOption) *EntryStore {
	es := &EntryStore{
		backend:  backend,
		logger:   log.Discard(),
		capacity: DefaultCapacity,
	}

	for _, opt := range opts {
		opt(es)
	}

	es.reset()
	return es
}

func (es *EntryStore) reset() {
	es.entries = make([]*data.Entry, 0)
	es.selfPaths = btree.NewMap[string, []*data.Entry](0)
	es.children = make(map[string][]*data.Entry)
	es.names = make(map[nameKey][]*data.Entry)
}

// Load replaces the in-memory set with the entries stored in the backend.
func (es *EntryStore) Load(ctx context.Context) error {
	es.mu.Lock()
	defer es.mu.Unlock()

	entries, err := es.backend.LoadEntries(ctx)
	if err != nil {
		return err
	}

	if len(entries) > es.capacity {
		return errors.CapacityExceeded(es.capacity)
	}

	es.reset()
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return errors.InvalidArgument("%v", err)
		}
		es.index(entry)
	}

	metrics.SetStoreEntries(len(es.entries))
	es.logger.Debug("Loaded %d entries from backend '%s'", len(es.entries), es.backend.Name())

	return nil
}

func (es *EntryStore) index(entry *data.Entry) {
	es.entries = append(es.entries, entry)

	bySelf, _ := es.selfPaths.Get(entry.SelfPath)
	es.selfPaths.Set(entry.SelfPath, append(bySelf, entry))

	es.children[entry.ParentPath] = append(es.children[entry.ParentPath], entry)

	key := nameKey{dir: entry.ParentPath, name: entry.Name}
	es.names[key] = append(es.names[key], entry)
}

// FindByPath returns copies of all entries whose parentPath equals path.
func (es *EntryStore) FindByPath(path string) []*data.Entry {
	es.mu.RLock()
	defer es.mu.RUnlock()

	children := es.children[path]

	result := make([]*data.Entry, 0, len(children))
	for _, entry := range children {
		result = append(result, entry.Clone())
	}

	return result
}

// HasChildren reports whether any entry declares path as its parentPath.
// If kinds are given, only entries of those kinds count.
func (es *EntryStore) HasChildren(path string, kinds ...data.EntryKind) bool {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return first(es.children[path], kinds) != nil
}

// FindBySelfPath returns a copy of the first entry addressed by path.
// If kinds are given, only entries of those kinds match.
func (es *EntryStore) FindBySelfPath(path string, kinds ...data.EntryKind) *data.Entry {
	es.mu.RLock()
	defer es.mu.RUnlock()

	entries, _ := es.selfPaths.Get(path)
	return first(entries, kinds).Clone()
}

// FindByNameInDir returns a copy of the first entry called name whose
// parentPath is dir. If kinds are given, only entries of those kinds match.
func (es *EntryStore) FindByNameInDir(name, dir string, kinds ...data.EntryKind) *data.Entry {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return first(es.names[nameKey{dir: dir, name: name}], kinds).Clone()
}

func first(entries []*data.Entry, kinds []data.EntryKind) *data.Entry {
	for _, entry := range entries {
		if len(kinds) == 0 || slices.Contains(kinds, entry.Kind) {
			return entry
		}
	}

	return nil
}

// Insert appends a copy of entry. Entries must be unique by parentPath,
// name and kind.
func (es *EntryStore) Insert(entry *data.Entry) error {
	if err := entry.Validate(); err != nil {
		return errors.InvalidArgument("%v", err)
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	if first(es.names[nameKey{dir: entry.ParentPath, name: entry.Name}], []data.EntryKind{entry.Kind}) != nil {
		if entry.IsDir() {
			return errors.DirectoryExists(entry.Name, entry.ParentPath)
		}
		return errors.FileExists(entry.Name, entry.ParentPath)
	}

	if len(es.entries) >= es.capacity {
		return errors.CapacityExceeded(es.capacity)
	}

	es.index(entry.Clone())
	metrics.SetStoreEntries(len(es.entries))

	return nil
}

// Update applies update to the stored entry identified by the parentPath,
// name and kind of entry. Returns whether anything changed.
func (es *EntryStore) Update(entry *data.Entry, update *data.EntryUpdate) (bool, error) {
	es.mu.Lock()
	defer es.mu.Unlock()

	target := first(es.names[nameKey{dir: entry.ParentPath, name: entry.Name}], []data.EntryKind{entry.Kind})
	if target == nil {
		return false, errors.EntryNotFound(entry.Name, entry.ParentPath)
	}

	return update.Apply(target), nil
}

// Persist rewrites the full entry set to the backend in insertion order.
// Failures are wrapped with errors.ErrPersist.
func (es *EntryStore) Persist(ctx context.Context) error {
	es.mu.RLock()
	snapshot := make([]*data.Entry, 0, len(es.entries))
	for _, entry := range es.entries {
		snapshot = append(snapshot, entry.Clone())
	}
	es.mu.RUnlock()

	start := time.Now()
	err := es.backend.SaveEntries(ctx, snapshot)
	metrics.RecordPersist(es.backend.Name(), err == nil, time.Since(start))

	if err != nil {
		return errors.PersistFailed(err, es.backend.Name())
	}

	es.logger.Debug("Persisted %d entries to backend '%s'", len(snapshot), es.backend.Name())
	return nil
}

// Entries returns copies of all entries in insertion order.
func (es *EntryStore) Entries() []*data.Entry {
	es.mu.RLock()
	defer es.mu.RUnlock()

	result := make([]*data.Entry, 0, len(es.entries))
	for _, entry := range es.entries {
		result = append(result, entry.Clone())
	}

	return result
}

// SelfPaths returns every distinct selfPath in lexical order.
func (es *EntryStore) SelfPaths() []string {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return es.selfPaths.Keys()
}

func (es *EntryStore) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return len(es.entries)
}

// Capacity returns the maximum number of entries the store accepts.
func (es *EntryStore) Capacity() int {
	return es.capacity
}

// BackendName returns the name of the backend entries are persisted to.
func (es *EntryStore) BackendName() string {
	return es.backend.Name()
}
