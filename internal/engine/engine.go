// Package engine runs one lint pass over a crate: it loads the configured
// plugins, walks the crate and turns plugin findings into a sorted report.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/leapstack-labs/leaplint/internal/dispatch"
	"github.com/leapstack-labs/leaplint/internal/plugin"
	"github.com/leapstack-labs/leaplint/internal/session"
	"github.com/leapstack-labs/leaplint/pkg/ast"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// ErrAlreadyRan is returned by a second Run. Plugin instances keep state for
// exactly one run.
var ErrAlreadyRan = errors.New("engine already ran")

// Engine owns the plugins of one run.
type Engine struct {
	registry *plugin.Registry
	levels   *lint.LevelConfig
	options  map[string]lint.Options
	flags    []string
	logger   *slog.Logger
	ran      bool
}

// Config holds engine configuration.
type Config struct {
	// Environment lists the plugins to load
	Environment plugin.Environment
	// Levels overrides lint levels (optional)
	Levels *lint.LevelConfig
	// Options holds per-lint options keyed by lint identifier (optional)
	Options map[string]lint.Options
	// Opener opens plugin libraries (optional, uses Go plugins if nil)
	Opener plugin.Opener
	// Registry skips loading and uses these plugins instead (optional)
	Registry *plugin.Registry
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New loads every configured plugin. Any load failure is returned as a
// *plugin.LoadError and no engine is created.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	levels := cfg.Levels
	if levels == nil {
		levels = lint.NewLevelConfig()
	}

	logger.Debug("initializing engine",
		"plugins", len(cfg.Environment.Plugins),
		"build_flags", cfg.Environment.BuildFlags)

	reg := cfg.Registry
	if reg == nil {
		opts := []plugin.LoadOption{plugin.WithLogger(logger)}
		if cfg.Opener != nil {
			opts = append(opts, plugin.WithOpener(cfg.Opener))
		}
		var err error
		reg, err = plugin.LoadFromEnvironment(cfg.Environment, opts...)
		if err != nil {
			return nil, err
		}
	}

	for _, id := range levels.IDs() {
		if _, ok := reg.Lookup(id); !ok {
			logger.Warn("level configured for unknown lint", "lint", id)
		}
	}

	return &Engine{
		registry: reg,
		levels:   levels,
		options:  maps.Clone(cfg.Options),
		flags:    slices.Clone(cfg.Environment.BuildFlags),
		logger:   logger,
	}, nil
}

// Registry returns the loaded plugins.
func (e *Engine) Registry() *plugin.Registry {
	return e.registry
}

// Lints returns metadata for every registered lint.
func (e *Engine) Lints() []lint.LintInfo {
	return e.registry.LintInfos()
}

// Run walks crate once with every loaded plugin. A failed run returns the
// error and no result.
func (e *Engine) Run(ctx context.Context, crate *ast.Crate) (*Result, error) {
	if e.ran {
		return nil, ErrAlreadyRan
	}
	e.ran = true

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	cx := session.New(crate, session.Config{
		Levels:  e.levels,
		Options: e.options,
	})
	logger := e.logger.With("run_id", cx.RunID())
	logger.Info("starting run",
		"crate", crate.Symbol(crate.Name()),
		"plugins", e.registry.Len(),
		"nodes", crate.NodeCount(),
		"build_flags", e.flags)

	stats, err := dispatch.New(e.registry, logger).ProcessCrate(cx, crate)
	if err != nil {
		logger.Error("run failed", "error", err)
		return nil, fmt.Errorf("run %s: %w", cx.RunID(), err)
	}

	raw, err := e.registry.Diagnostics()
	if err != nil {
		logger.Error("collecting diagnostics failed", "error", err)
		return nil, fmt.Errorf("run %s: %w", cx.RunID(), err)
	}

	res := &Result{
		RunID:       cx.RunID(),
		Crate:       crate.Symbol(crate.Name()),
		BuildFlags:  slices.Clone(e.flags),
		Diagnostics: e.finish(cx, raw, logger),
		Stats:       stats,
		Duration:    time.Since(start),
	}
	logger.Info("run completed",
		"visited", stats.Total(),
		"diagnostics", len(res.Diagnostics),
		"failed", res.Failed(),
		"duration", res.Duration.Round(time.Millisecond))
	return res, nil
}

// finish re-levels plugin findings, drops allowed and undeclared ones and
// sorts the rest by position.
func (e *Engine) finish(cx *session.Context, raw []lint.Diagnostic, logger *slog.Logger) []Diagnostic {
	out := make([]Diagnostic, 0, len(raw))
	for _, d := range raw {
		if d.Lint == nil {
			logger.Warn("dropping diagnostic without lint", "message", d.Message)
			continue
		}
		declared, ok := e.registry.Lookup(d.Lint.Name())
		if !ok || declared != d.Lint {
			logger.Warn("dropping diagnostic for undeclared lint", "lint", d.Lint.Name())
			continue
		}
		level := e.levels.Effective(d.Lint)
		if level == lint.Allow {
			continue
		}
		owner, _ := e.registry.Owner(d.Lint.Name())
		span, _ := cx.Span(d.Span)
		out = append(out, Diagnostic{
			Lint:    d.Lint.Name(),
			Plugin:  owner,
			Level:   level,
			Message: d.Message,
			Span:    span,
			Node:    d.Node,
			Notes:   d.Notes,
		})
	}
	sortDiagnostics(out)
	return out
}
