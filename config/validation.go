package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate validates the configuration using struct tags and the rules
// that cannot be expressed in tags.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	return validateCustomRules(cfg)
}

func validateCustomRules(cfg *Config) error {
	if cfg.Logging.NoTerminal && cfg.Logging.File == "" {
		return fmt.Errorf("logging: no_terminal requires a log file")
	}

	switch cfg.Store.Type {
	case "postgres":
		if _, ok := cfg.Store.Postgres["connection_string"]; !ok {
			return fmt.Errorf("store.postgres: connection_string is required")
		}
	case "sqlite":
		if _, ok := cfg.Store.SQLite["path"]; !ok {
			return fmt.Errorf("store.sqlite: path is required")
		}
	}

	if cfg.Content.Type == "s3" {
		if _, ok := cfg.Content.S3["bucket"]; !ok {
			return fmt.Errorf("content.s3: bucket is required")
		}
	}

	return nil
}

// formatValidationError converts validator errors into readable messages.
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
		e := validationErrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
			e.Namespace(), e.Tag(), e.Value())
	}

	return err
}
