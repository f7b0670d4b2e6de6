package config

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/mwantia/vfsh/backend"
	"github.com/mwantia/vfsh/backend/badger"
	"github.com/mwantia/vfsh/backend/consul"
	"github.com/mwantia/vfsh/backend/local"
	"github.com/mwantia/vfsh/backend/memory"
	"github.com/mwantia/vfsh/backend/postgres"
	"github.com/mwantia/vfsh/backend/record"
	"github.com/mwantia/vfsh/backend/s3"
	"github.com/mwantia/vfsh/backend/sqlite"
	"github.com/mwantia/vfsh/data"
)

// Backends holds the backends selected by a configuration.
// The same instance may serve several roles.
type Backends struct {
	Entries backend.EntryBackend
	Users   backend.UserBackend
	Content backend.ContentBackend
}

// memoryConfig seeds a memory backend with user ids and file content
// keyed by entry name.
type memoryConfig struct {
	Users []string          `mapstructure:"users"`
	Files map[string]string `mapstructure:"files"`
}

// CreateBackends creates every backend named by cfg.
// If the users type equals the store type, the entry backend is reused.
func CreateBackends(ctx context.Context, cfg *Config) (*Backends, error) {
	entries, err := CreateEntryBackend(ctx, &cfg.Store)
	if err != nil {
		return nil, err
	}

	var users backend.UserBackend
	if shared, ok := entries.(backend.UserBackend); ok && cfg.Users.Type == cfg.Store.Type {
		users = shared
	} else {
		users, err = CreateUserBackend(ctx, &cfg.Users)
		if err != nil {
			return nil, err
		}
	}

	content, err := CreateContentBackend(ctx, &cfg.Content)
	if err != nil {
		return nil, err
	}

	if err := backend.Require(users, backend.CapabilityUsers); err != nil {
		return nil, err
	}

	return &Backends{
		Entries: entries,
		Users:   users,
		Content: content,
	}, nil
}

// CreateEntryBackend creates the backend holding the entry set.
func CreateEntryBackend(ctx context.Context, cfg *StoreConfig) (backend.EntryBackend, error) {
	switch cfg.Type {
	case "record":
		return createRecordBackend(cfg.Record)
	case "memory":
		return createMemoryBackend(cfg.Memory)
	case "sqlite":
		return createSQLiteBackend(cfg.SQLite)
	case "postgres":
		return createPostgresBackend(ctx, cfg.Postgres)
	case "consul":
		return createConsulBackend(cfg.Consul)
	case "badger":
		return createBadgerBackend(cfg.Badger)
	default:
		return nil, fmt.Errorf("unknown store type: %q", cfg.Type)
	}
}

// CreateUserBackend creates the backend providing the user list.
func CreateUserBackend(ctx context.Context, cfg *UsersConfig) (backend.UserBackend, error) {
	switch cfg.Type {
	case "record":
		return createRecordBackend(cfg.Record)
	case "memory":
		return createMemoryBackend(cfg.Memory)
	case "sqlite":
		return createSQLiteBackend(cfg.SQLite)
	case "consul":
		return createConsulBackend(cfg.Consul)
	default:
		return nil, fmt.Errorf("unknown users type: %q", cfg.Type)
	}
}

// CreateContentBackend creates the backend file content is read from.
func CreateContentBackend(ctx context.Context, cfg *ContentConfig) (backend.ContentBackend, error) {
	switch cfg.Type {
	case "local":
		return createLocalBackend(cfg.Local)
	case "memory":
		return createMemoryBackend(cfg.Memory)
	case "s3":
		return createS3Backend(cfg.S3)
	default:
		return nil, fmt.Errorf("unknown content type: %q", cfg.Type)
	}
}

func createRecordBackend(options map[string]any) (*record.RecordBackend, error) {
	var recordCfg record.RecordBackendConfig
	if err := mapstructure.Decode(options, &recordCfg); err != nil {
		return nil, fmt.Errorf("failed to decode record config: %w", err)
	}

	return record.NewRecordBackend(&recordCfg), nil
}

func createMemoryBackend(options map[string]any) (*memory.MemoryBackend, error) {
	var memoryCfg memoryConfig
	if err := mapstructure.Decode(options, &memoryCfg); err != nil {
		return nil, fmt.Errorf("failed to decode memory config: %w", err)
	}

	mb := memory.NewMemoryBackend()
	for _, id := range memoryCfg.Users {
		mb.AddUser(&data.User{ID: id, HomePath: data.Join("/home", id)})
	}
	for name, content := range memoryCfg.Files {
		mb.SetContent(name, []byte(content))
	}

	return mb, nil
}

func createSQLiteBackend(options map[string]any) (*sqlite.SQLiteBackend, error) {
	var sqliteCfg struct {
		Path string `mapstructure:"path"`
	}
	if err := mapstructure.Decode(options, &sqliteCfg); err != nil {
		return nil, fmt.Errorf("failed to decode sqlite config: %w", err)
	}

	if sqliteCfg.Path == "" {
		return nil, fmt.Errorf("sqlite backend: path is required")
	}

	sb, err := sqlite.NewSQLiteBackend(sqliteCfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return sb, nil
}

func createPostgresBackend(ctx context.Context, options map[string]any) (*postgres.PostgresBackend, error) {
	var postgresCfg struct {
		ConnectionString string `mapstructure:"connection_string"`
	}
	if err := mapstructure.Decode(options, &postgresCfg); err != nil {
		return nil, fmt.Errorf("failed to decode postgres config: %w", err)
	}

	if postgresCfg.ConnectionString == "" {
		return nil, fmt.Errorf("postgres backend: connection_string is required")
	}

	return postgres.NewPostgresBackend(ctx, postgresCfg.ConnectionString)
}

func createConsulBackend(options map[string]any) (*consul.ConsulBackend, error) {
	var consulCfg consul.ConsulBackendConfig
	if err := mapstructure.Decode(options, &consulCfg); err != nil {
		return nil, fmt.Errorf("failed to decode consul config: %w", err)
	}

	return consul.NewConsulBackend(&consulCfg)
}

func createBadgerBackend(options map[string]any) (*badger.BadgerBackend, error) {
	var badgerCfg badger.BadgerBackendConfig
	if err := mapstructure.Decode(options, &badgerCfg); err != nil {
		return nil, fmt.Errorf("failed to decode badger config: %w", err)
	}

	if badgerCfg.Path == "" && !badgerCfg.InMemory {
		return nil, fmt.Errorf("badger backend: path is required unless in_memory is set")
	}

	return badger.NewBadgerBackend(&badgerCfg), nil
}

func createLocalBackend(options map[string]any) (*local.LocalBackend, error) {
	var localCfg struct {
		Path string `mapstructure:"path"`
	}
	if err := mapstructure.Decode(options, &localCfg); err != nil {
		return nil, fmt.Errorf("failed to decode local config: %w", err)
	}

	if localCfg.Path == "" {
		return nil, fmt.Errorf("local backend: path is required")
	}

	return local.NewLocalBackend(localCfg.Path)
}

func createS3Backend(options map[string]any) (*s3.S3Backend, error) {
	var s3Cfg s3.S3BackendConfig
	if err := mapstructure.Decode(options, &s3Cfg); err != nil {
		return nil, fmt.Errorf("failed to decode s3 config: %w", err)
	}

	return s3.NewS3Backend(&s3Cfg)
}
