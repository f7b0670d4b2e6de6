package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwantia/vfsh/log"
	"github.com/spf13/viper"
)

// Config represents the complete vfsh configuration.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (VFSH_*)
//  2. Configuration file (YAML)
//  3. Default values
//
// Each backend section names a type and carries one map per type. Only the
// map matching the selected type is decoded, by the factory of that type.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Store   StoreConfig   `mapstructure:"store" yaml:"store"`
	Users   UsersConfig   `mapstructure:"users" yaml:"users"`
	Content ContentConfig `mapstructure:"content" yaml:"content"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Minimum level to output (DEBUG, INFO, WARN, ERROR, FATAL)
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=DEBUG INFO WARN WARNING ERROR FATAL"`

	// Output format, text or json
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=text json"`

	// Optional log file, rotated according to Rotation
	File string `mapstructure:"file" yaml:"file"`

	// Disables output to stdout, only useful together with File
	NoTerminal bool `mapstructure:"no_terminal" yaml:"no_terminal"`

	Rotation log.LoggerRotation `mapstructure:"rotation" yaml:"rotation"`
}

// StoreConfig selects the backend holding the entry set.
type StoreConfig struct {
	Type string `mapstructure:"type" yaml:"type" validate:"required,oneof=record memory sqlite postgres consul badger"`

	// Maximum number of entries
	Capacity int `mapstructure:"capacity" yaml:"capacity" validate:"gt=0"`

	Record   map[string]any `mapstructure:"record" yaml:"record,omitempty"`
	Memory   map[string]any `mapstructure:"memory" yaml:"memory,omitempty"`
	SQLite   map[string]any `mapstructure:"sqlite" yaml:"sqlite,omitempty"`
	Postgres map[string]any `mapstructure:"postgres" yaml:"postgres,omitempty"`
	Consul   map[string]any `mapstructure:"consul" yaml:"consul,omitempty"`
	Badger   map[string]any `mapstructure:"badger" yaml:"badger,omitempty"`
}

// UsersConfig selects the backend providing the user list.
// If Type equals the store type, the store backend is shared.
type UsersConfig struct {
	Type string `mapstructure:"type" yaml:"type" validate:"required,oneof=record memory sqlite consul"`

	Record map[string]any `mapstructure:"record" yaml:"record,omitempty"`
	Memory map[string]any `mapstructure:"memory" yaml:"memory,omitempty"`
	SQLite map[string]any `mapstructure:"sqlite" yaml:"sqlite,omitempty"`
	Consul map[string]any `mapstructure:"consul" yaml:"consul,omitempty"`
}

// ContentConfig selects where file content is read from.
type ContentConfig struct {
	Type string `mapstructure:"type" yaml:"type" validate:"required,oneof=local memory s3"`

	Local  map[string]any `mapstructure:"local" yaml:"local,omitempty"`
	Memory map[string]any `mapstructure:"memory" yaml:"memory,omitempty"`
	S3     map[string]any `mapstructure:"s3" yaml:"s3,omitempty"`
}

// MetricsConfig controls the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Address string `mapstructure:"address" yaml:"address" validate:"required_if=Enabled true"`
}

// Load loads configuration from file, environment, and defaults.
// A missing configuration file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setupViper(v *viper.Viper, configPath string) {
	// Example: VFSH_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("VFSH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper already knows
	for _, key := range []string{
		"logging.level", "logging.format", "logging.file", "logging.no_terminal",
		"store.type", "store.capacity",
		"users.type",
		"content.type",
		"metrics.enabled", "metrics.address",
	} {
		_ = v.BindEnv(key)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}

	v.AddConfigPath(getConfigDir())
	v.AddConfigPath(".")
	v.SetConfigName("vfsh")
	v.SetConfigType("yaml")
}

func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// getConfigDir returns $XDG_CONFIG_HOME/vfsh, falling back to ~/.config/vfsh.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "vfsh")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "vfsh")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "vfsh.yaml")
}
