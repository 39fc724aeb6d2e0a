package lint

import (
	"maps"
	"slices"
)

// LevelConfig overrides lint levels by identifier.
type LevelConfig struct {
	overrides map[string]Level
}

// NewLevelConfig creates a configuration that keeps every default.
func NewLevelConfig() *LevelConfig {
	return &LevelConfig{overrides: make(map[string]Level)}
}

// SetLevel overrides the level for a lint.
func (c *LevelConfig) SetLevel(id string, level Level) *LevelConfig {
	c.overrides[id] = level
	return c
}

// Allow silences a lint.
func (c *LevelConfig) Allow(id string) *LevelConfig {
	return c.SetLevel(id, Allow)
}

// Effective returns the level for a lint, applying any override. A lint
// declared Forbid stays Forbid.
func (c *LevelConfig) Effective(l *Lint) Level {
	if l.DefaultLevel() == Forbid {
		return Forbid
	}
	if c != nil {
		if level, ok := c.overrides[l.Name()]; ok {
			return level
		}
	}
	return l.DefaultLevel()
}

// IDs returns the overridden lint identifiers in sorted order.
func (c *LevelConfig) IDs() []string {
	if c == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.overrides))
}
