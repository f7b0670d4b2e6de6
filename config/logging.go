package config

import "github.com/mwantia/vfsh/log"

// NewLogger creates the root logger described by cfg.
func NewLogger(name string, cfg *LoggingConfig) (*log.Logger, error) {
	level, err := log.Parse(cfg.Level)
	if err != nil {
		return nil, err
	}

	rotation := cfg.Rotation
	opts := []log.LoggerOption{
		log.WithRotation(&rotation),
	}

	if cfg.File != "" {
		opts = append(opts, log.WithFile(cfg.File))
	}
	if cfg.NoTerminal {
		opts = append(opts, log.WithoutTerminal())
	}
	if cfg.Format == "json" {
		opts = append(opts, log.WithJSON())
	}

	return log.NewLogger(name, level, opts...), nil
}
