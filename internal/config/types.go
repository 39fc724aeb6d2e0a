// Package config loads leaplint configuration.
//
// Values are layered, lowest precedence first: built-in defaults, the
// leaplint.yaml (or leaplint.yml) file, LEAPLINT_ environment variables and
// finally command-line flags.
package config

import (
	"github.com/leapstack-labs/leaplint/internal/plugin"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// Config file names, in lookup order.
const (
	ConfigFileName    = "leaplint.yaml"
	ConfigFileNameAlt = "leaplint.yml"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LEAPLINT_"

// EnvPlugins holds a ';'-separated list of plugin library paths. It replaces
// the plugins list of the config file.
const EnvPlugins = EnvPrefix + "PLUGINS"

// Output modes.
const (
	OutputAuto     = "auto" // text on a terminal, markdown otherwise
	OutputText     = "text"
	OutputMarkdown = "markdown"
	OutputJSON     = "json"
)

// DefaultOutput is the output mode when none is configured.
const DefaultOutput = OutputAuto

// Config holds all leaplint configuration.
type Config struct {
	Plugins     []plugin.Spec             `koanf:"plugins"`
	BuildFlags  []string                  `koanf:"build_flags"`
	Lints       map[string]string         `koanf:"lints"`
	LintOptions map[string]map[string]any `koanf:"lint_options"`
	Output      string                    `koanf:"output"`
	Verbose     bool                      `koanf:"verbose"`

	// FileUsed is the config file that was read, if any.
	FileUsed string `koanf:"-"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{Output: DefaultOutput}
}

// Environment returns the plugin set to load.
func (c *Config) Environment() plugin.Environment {
	return plugin.Environment{
		Plugins:    append([]plugin.Spec(nil), c.Plugins...),
		BuildFlags: append([]string(nil), c.BuildFlags...),
	}
}

// Levels builds the per-lint level overrides. Unknown level names are an
// error; Validate reports them up front.
func (c *Config) Levels() (*lint.LevelConfig, error) {
	levels := lint.NewLevelConfig()
	for id, name := range c.Lints {
		level, ok := lint.ParseLevel(name)
		if !ok {
			return nil, &Error{Key: "lints." + id, Message: "unknown level " + quote(name)}
		}
		levels.SetLevel(id, level)
	}
	return levels, nil
}

// Options returns the per-lint options keyed by lint identifier.
func (c *Config) Options() map[string]lint.Options {
	if len(c.LintOptions) == 0 {
		return nil
	}
	out := make(map[string]lint.Options, len(c.LintOptions))
	for id, opts := range c.LintOptions {
		out[id] = lint.Options(opts)
	}
	return out
}
