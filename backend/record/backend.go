package record

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mwantia/vfsh/backend"
	"github.com/mwantia/vfsh/data"
)

const (
	DefaultEntriesFile = "system.txt"
	DefaultUsersFile   = "User.txt"
)

// RecordBackend stores entries and users as plain text record files.
//
// Every line of the entries file holds one entry:
//
//	parentPath kind name size mode owner timestamp hidden selfPath
//
// Every line of the users file holds one user:
//
//	id uid gid year month day hour minute second homePath
//
// The entries file is rewritten completely on every save.
type RecordBackend struct {
	mu sync.RWMutex

	config *RecordBackendConfig
}

// RecordBackendConfig contains configuration options for the record backend
type RecordBackendConfig struct {
	// Directory containing both record files (default: ".")
	Directory string `mapstructure:"directory"`

	// File name of the entry records (default: "system.txt")
	EntriesFile string `mapstructure:"entries_file"`

	// File name of the user records (default: "User.txt")
	UsersFile string `mapstructure:"users_file"`

	// Create record files on Open if they are missing.
	// A created users file holds a single root user.
	CreateMissing bool `mapstructure:"create_missing"`
}

func NewRecordBackend(config *RecordBackendConfig) *RecordBackend {
	if config == nil {
		config = &RecordBackendConfig{}
	}

	// Set defaults
	if config.Directory == "" {
		config.Directory = "."
	}
	if config.EntriesFile == "" {
		config.EntriesFile = DefaultEntriesFile
	}
	if config.UsersFile == "" {
		config.UsersFile = DefaultUsersFile
	}

	return &RecordBackend{
		config: config,
	}
}

// Name returns the identifier name defined for this backend
func (*RecordBackend) Name() string {
	return "record"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (rb *RecordBackend) Open(ctx context.Context) error {
	if _, err := rb.createMissing(rb.entriesPath()); err != nil {
		return err
	}

	created, err := rb.createMissing(rb.usersPath())
	if err != nil {
		return err
	}

	if created {
		return rb.SaveUsers(ctx, []*data.User{data.NewRootUser(time.Now())})
	}

	return nil
}

// createMissing creates an empty record file at path if CreateMissing is set.
func (rb *RecordBackend) createMissing(path string) (bool, error) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) || !rb.config.CreateMissing {
		return false, fmt.Errorf("failed to open record file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, err
	}

	return true, os.WriteFile(path, nil, 0644)
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (rb *RecordBackend) Close(ctx context.Context) error {
	// Files are only held open during a single load or save
	return nil
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (rb *RecordBackend) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities: []backend.BackendCapability{
			backend.CapabilityEntries,
			backend.CapabilityUsers,
		},
	}
}

func (rb *RecordBackend) LoadEntries(ctx context.Context) ([]*data.Entry, error) {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	entries := make([]*data.Entry, 0)
	err := readRecords(rb.entriesPath(), func(line string) error {
		entry, err := data.ParseEntryRecord(line)
		if err != nil {
			return err
		}

		entries = append(entries, entry)
		return nil
	})

	return entries, err
}

func (rb *RecordBackend) SaveEntries(ctx context.Context, entries []*data.Entry) error {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	path := rb.entriesPath()
	temp := path + ".tmp"

	file, err := os.Create(temp)
	if err != nil {
		return err
	}

	if err := writeRecords(file, entries); err != nil {
		file.Close()
		os.Remove(temp)
		return err
	}

	if err := file.Close(); err != nil {
		os.Remove(temp)
		return err
	}

	return os.Rename(temp, path)
}

func (rb *RecordBackend) LoadUsers(ctx context.Context) ([]*data.User, error) {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	users := make([]*data.User, 0)
	err := readRecords(rb.usersPath(), func(line string) error {
		user, err := data.ParseUserRecord(line)
		if err != nil {
			return err
		}

		users = append(users, user)
		return nil
	})

	return users, err
}

// SaveUsers rewrites the users file. Only used to seed new installations.
func (rb *RecordBackend) SaveUsers(ctx context.Context, users []*data.User) error {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	var sb strings.Builder
	for _, user := range users {
		sb.WriteString(user.MarshalRecord())
		sb.WriteByte('\n')
	}

	return os.WriteFile(rb.usersPath(), []byte(sb.String()), 0644)
}

func (rb *RecordBackend) entriesPath() string {
	return filepath.Join(rb.config.Directory, rb.config.EntriesFile)
}

func (rb *RecordBackend) usersPath() string {
	return filepath.Join(rb.config.Directory, rb.config.UsersFile)
}

func readRecords(path string, fn func(line string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	number := 0
	for scanner.Scan() {
		number++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if err := fn(line); err != nil {
			return fmt.Errorf("%s:%d: %w", filepath.Base(path), number, err)
		}
	}

	return scanner.Err()
}

func writeRecords(w io.Writer, entries []*data.Entry) error {
	writer := bufio.NewWriter(w)
	for _, entry := range entries {
		if _, err := writer.WriteString(entry.MarshalRecord() + "\n"); err != nil {
			return err
		}
	}

	return writer.Flush()
}
