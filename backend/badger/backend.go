package badger

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/mwantia/vfsh/backend"
	"github.com/mwantia/vfsh/data"
)

var entryPrefix = []byte("e:")

// BadgerBackend persists the entry list in an embedded BadgerDB.
//
// Each entry is stored under "e:" followed by its big endian position, so
// a prefix scan returns entries in insertion order.
type BadgerBackend struct {
	mu sync.RWMutex
	db *badger.DB

	config *BadgerBackendConfig
}

// BadgerBackendConfig contains configuration options for the badger backend
type BadgerBackendConfig struct {
	// Directory of the database, ignored when InMemory is set
	Path string `mapstructure:"path"`

	// Keep the database in memory only
	InMemory bool `mapstructure:"in_memory"`
}

func NewBadgerBackend(config *BadgerBackendConfig) *BadgerBackend {
	if config == nil {
		config = &BadgerBackendConfig{InMemory: true}
	}

	return &BadgerBackend{
		config: config,
	}
}

// Name returns the identifier name defined for this backend
func (*BadgerBackend) Name() string {
	return "badger"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (bb *BadgerBackend) Open(ctx context.Context) error {
	bb.mu.Lock()
	defer bb.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	opts := badger.DefaultOptions(bb.config.Path)
	if bb.config.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}

	// Entries are tiny, compression is not worth it
	opts = opts.WithLoggingLevel(badger.WARNING).WithCompression(options.None)

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("failed to open BadgerDB at %s: %w", bb.config.Path, err)
	}

	bb.db = db
	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (bb *BadgerBackend) Close(ctx context.Context) error {
	bb.mu.Lock()
	defer bb.mu.Unlock()

	if bb.db == nil {
		return nil
	}

	err := bb.db.Close()
	bb.db = nil
	return err
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (bb *BadgerBackend) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities: []backend.BackendCapability{
			backend.CapabilityEntries,
		},
	}
}

func (bb *BadgerBackend) LoadEntries(ctx context.Context) ([]*data.Entry, error) {
	bb.mu.RLock()
	defer bb.mu.RUnlock()

	entries := make([]*data.Entry, 0)
	err := bb.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = entryPrefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var entry data.Entry
				if err := json.Unmarshal(val, &entry); err != nil {
					return err
				}

				entries = append(entries, &entry)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})

	return entries, err
}

func (bb *BadgerBackend) SaveEntries(ctx context.Context, entries []*data.Entry) error {
	bb.mu.Lock()
	defer bb.mu.Unlock()

	return bb.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = entryPrefix
		opts.PrefetchValues = false

		stale := make([][]byte, 0)
		it := txn.NewIterator(opts)
		for it.Rewind(); it.Valid(); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}

		for i, entry := range entries {
			value, err := json.Marshal(entry)
			if err != nil {
				return err
			}

			if err := txn.Set(entryKey(i), value); err != nil {
				return err
			}
		}

		return nil
	})
}

func entryKey(index int) []byte {
	key := make([]byte, len(entryPrefix)+8)
	copy(key, entryPrefix)
	binary.BigEndian.PutUint64(key[len(entryPrefix):], uint64(index))

	return key
}
