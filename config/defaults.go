package config

import (
	"strings"

	"github.com/mwantia/vfsh/store"
)

// ApplyDefaults sets default values for any unspecified configuration fields.
// Explicit values are preserved.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyStoreDefaults(&cfg.Store)
	applyUsersDefaults(&cfg.Users)
	applyContentDefaults(&cfg.Content)
	applyMetricsDefaults(&cfg.Metrics)
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	cfg.Format = strings.ToLower(cfg.Format)

	if cfg.Rotation.MaxSize == 0 {
		cfg.Rotation.MaxSize = 128
	}
	if cfg.Rotation.MaxBackups == 0 {
		cfg.Rotation.MaxBackups = 5
	}
	if cfg.Rotation.MaxAge == 0 {
		cfg.Rotation.MaxAge = 16
	}
}

func applyStoreDefaults(cfg *StoreConfig) {
	if cfg.Type == "" {
		cfg.Type = "record"
	}
	if cfg.Capacity == 0 {
		cfg.Capacity = store.DefaultCapacity
	}

	if cfg.Record == nil {
		cfg.Record = make(map[string]any)
	}
	if _, ok := cfg.Record["directory"]; !ok {
		cfg.Record["directory"] = "."
	}
}

func applyUsersDefaults(cfg *UsersConfig) {
	if cfg.Type == "" {
		cfg.Type = "record"
	}

	if cfg.Record == nil {
		cfg.Record = make(map[string]any)
	}
	if _, ok := cfg.Record["directory"]; !ok {
		cfg.Record["directory"] = "."
	}
}

func applyContentDefaults(cfg *ContentConfig) {
	if cfg.Type == "" {
		cfg.Type = "local"
	}

	if cfg.Local == nil {
		cfg.Local = make(map[string]any)
	}
	if _, ok := cfg.Local["path"]; !ok {
		cfg.Local["path"] = "."
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Address == "" {
		cfg.Address = ":9090"
	}
}

// GetDefaultConfig returns a configuration with all defaults applied.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)

	return cfg
}
