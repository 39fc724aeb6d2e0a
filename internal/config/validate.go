package config

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// Error reports an invalid configuration value.
type Error struct {
	Key     string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Key, e.Message)
}

func quote(s string) string {
	return strconv.Quote(s)
}

// Validate checks the configuration before any plugin is loaded.
func (c *Config) Validate() error {
	for i, spec := range c.Plugins {
		if spec.Path == "" {
			return &Error{Key: fmt.Sprintf("plugins[%d].path", i), Message: "path is required"}
		}
	}
	for id, name := range c.Lints {
		if id == "" {
			return &Error{Key: "lints", Message: "empty lint id"}
		}
		if _, ok := lint.ParseLevel(name); !ok {
			return &Error{Key: "lints." + id, Message: "unknown level " + quote(name)}
		}
	}
	switch c.Output {
	case OutputAuto, OutputText, OutputMarkdown, OutputJSON:
	default:
		return &Error{Key: "output", Message: fmt.Sprintf("must be one of auto, text, markdown, json; got %s", quote(c.Output))}
	}
	return nil
}
