package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors and inconsistencies.
// Returns nil if valid, or an error describing every problem found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.StatsRoot == "" {
		errs = append(errs, ValidationError{
			Field:   "stats_root",
			Message: "stats root directory is required",
		})
	}

	if cfg.SocketDir == "" && (cfg.GetState || cfg.TUIEnabled) {
		errs = append(errs, ValidationError{
			Field:   "socket_dir",
			Message: "socket directory is required for getstate queries",
		})
	}

	// A date format, when given, must be a usable Go layout. Formatting a
	// reference time with a bogus layout just echoes the layout back, so
	// require a parse round trip instead.
	if cfg.DateFormat != "" {
		ref := time.Date(2026, time.January, 2, 15, 4, 5, 0, time.UTC)
		if _, err := time.Parse(cfg.DateFormat, ref.Format(cfg.DateFormat)); err != nil {
			errs = append(errs, ValidationError{
				Field:   "date_format",
				Message: fmt.Sprintf("not a valid Go time layout: %q", cfg.DateFormat),
			})
		}
	}

	if cfg.TotalsDate != "" {
		if _, err := time.Parse("2006-01-02", cfg.TotalsDate); err != nil {
			errs = append(errs, ValidationError{
				Field:   "totals_date",
				Message: fmt.Sprintf("must be YYYY-MM-DD, got %q", cfg.TotalsDate),
			})
		}
	}

	if cfg.GetState {
		if cfg.AgentID == "" {
			errs = append(errs, ValidationError{
				Field:   "agent",
				Message: "agent ID is required with -getstate",
			})
		}
		if cfg.Daemon == "" {
			errs = append(errs, ValidationError{
				Field:   "daemon",
				Message: "daemon name is required with -getstate",
			})
		}
	}

	if cfg.AgentList != "" {
		if cfg.Daemon == "" {
			errs = append(errs, ValidationError{
				Field:   "daemon",
				Message: "daemon name is required with -agents",
			})
		}
		if cfg.KeysFile == "" {
			errs = append(errs, ValidationError{
				Field:   "keys_file",
				Message: "keys file is required with -agents",
			})
		}
	}

	if cfg.SocketTimeout < 0 {
		errs = append(errs, ValidationError{
			Field:   "socket_timeout",
			Message: "must not be negative",
		})
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "json", "text":
	default:
		errs = append(errs, ValidationError{
			Field:   "log_format",
			Message: fmt.Sprintf(`must be "json" or "text", got %q`, cfg.LogFormat),
		})
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("unknown log level %q", cfg.LogLevel),
		})
	}

	if cfg.TUIEnabled && cfg.TUIRefresh < 100*time.Millisecond {
		errs = append(errs, ValidationError{
			Field:   "tui_refresh",
			Message: "must be at least 100ms",
		})
	}

	return errors.Join(errs...)
}
