package config

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// issueCollector accumulates validation issues.
type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

const maxAdvanceDelayMS = 60_000

// Validate checks a normalized config.
func Validate(cfg *Config) error {
	collector := &issueCollector{}
	if cfg.Version != currentVersion {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}
	switch cfg.Store.Backend {
	case "file", "duckdb":
		if strings.TrimSpace(cfg.Store.Path) == "" {
			collector.add("store.path", "is required for the "+cfg.Store.Backend+" backend")
		}
	case "memory":
	default:
		collector.add("store.backend", fmt.Sprintf("must be one of file, duckdb, memory (got %q)", cfg.Store.Backend))
	}
	if strings.TrimSpace(cfg.Store.Key) != cfg.Store.Key {
		collector.add("store.key", "must not have surrounding whitespace")
	}
	if cfg.Player.AdvanceDelayMS < 0 || cfg.Player.AdvanceDelayMS > maxAdvanceDelayMS {
		collector.add("player.advance_delay_ms", fmt.Sprintf("must be between 0 and %d", maxAdvanceDelayMS))
	}
	switch cfg.Player.UI {
	case "auto", "live", "plain":
	default:
		collector.add("player.ui", fmt.Sprintf("must be one of auto, live, plain (got %q)", cfg.Player.UI))
	}
	return collector.result()
}
