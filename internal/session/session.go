// Package session provides the host side of lint.AstContext.
package session

import (
	"maps"

	"github.com/google/uuid"

	"github.com/leapstack-labs/leaplint/pkg/ast"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Config holds the run-scoped settings exposed to passes.
type Config struct {
	// RunID identifies the run. Empty generates a random one.
	RunID string

	// Levels overrides lint levels. Nil keeps every default.
	Levels *lint.LevelConfig

	// Options holds per-lint options keyed by lint identifier.
	Options map[string]lint.Options
}

// Context answers pass queries about one crate. It is never modified after
// New returns.
type Context struct {
	runID   string
	crate   *ast.Crate
	levels  *lint.LevelConfig
	options map[string]lint.Options
}

var _ lint.AstContext = (*Context)(nil)

// New creates the context for one run over crate.
func New(crate *ast.Crate, cfg Config) *Context {
	runID := cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	options := make(map[string]lint.Options, len(cfg.Options))
	for id, opts := range cfg.Options {
		options[id] = maps.Clone(opts)
	}
	return &Context{
		runID:   runID,
		crate:   crate,
		levels:  cfg.Levels,
		options: options,
	}
}

func (c *Context) RunID() string { return c.runID }

func (c *Context) Crate() *ast.Crate { return c.crate }

func (c *Context) Symbol(id ast.SymbolID) string { return c.crate.Symbol(id) }

func (c *Context) Span(id ast.SpanID) (token.Span, bool) { return c.crate.SpanOf(id) }

func (c *Context) Parent(id ast.NodeID) ast.Option[ast.NodeID] { return c.crate.Parent(id) }

func (c *Context) ResolveTy(id ast.TyID) ast.Option[ast.ItemID] { return c.crate.TyDef(id) }

// LintLevel applies configured overrides to the lint's default level.
func (c *Context) LintLevel(l *lint.Lint) lint.Level {
	return c.levels.Effective(l)
}

// LintOptions returns a copy of the lint's options so passes cannot change
// what other passes see.
func (c *Context) LintOptions(l *lint.Lint) lint.Options {
	opts := maps.Clone(c.options[l.Name()])
	if opts == nil {
		opts = lint.Options{}
	}
	return opts
}
