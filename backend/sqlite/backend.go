package sqlite

import (
	"context"
	"database/sql"
	"sync"

	"github.com/mwantia/vfsh/backend"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteBackend persists entries and users in SQLite.
//
// Entries keep their insertion order through the seq column, which is
// rewritten together with the rows on every save.
type SQLiteBackend struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteBackend creates a new SQLite-backed entry and user backend.
// The dbPath can be ":memory:" for an in-memory database or a file path.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Every connection to ":memory:" would open a separate database
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}

	backend := &SQLiteBackend{
		db: db,
	}

	if err := backend.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return backend, nil
}

// initSchema creates the database schema.
func (sb *SQLiteBackend) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS vfs_entries (
		seq INTEGER PRIMARY KEY,
		parent_path TEXT NOT NULL,
		kind TEXT NOT NULL,
		name TEXT NOT NULL,
		size INTEGER NOT NULL DEFAULT 0,
		mode INTEGER NOT NULL,
		owner TEXT NOT NULL,
		created_at TEXT NOT NULL,
		hidden INTEGER NOT NULL DEFAULT 0,
		self_path TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_vfs_entries_parent ON vfs_entries(parent_path);

	CREATE TABLE IF NOT EXISTS vfs_users (
		seq INTEGER PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		uid INTEGER NOT NULL,
		gid INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		home_path TEXT NOT NULL
	);
	`

	_, err := sb.db.Exec(schema)
	return err
}

// Name returns the identifier name defined for this backend
func (*SQLiteBackend) Name() string {
	return "sqlite"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (sb *SQLiteBackend) Open(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	// Verify database connection
	return sb.db.PingContext(ctx)
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (sb *SQLiteBackend) Close(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	return sb.db.Close()
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (sb *SQLiteBackend) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities: []backend.BackendCapability{
			backend.CapabilityEntries,
			backend.CapabilityUsers,
		},
	}
}
