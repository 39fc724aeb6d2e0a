package lint

import (
	"github.com/leapstack-labs/leaplint/pkg/ast"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// AstContext is the read-only query handle shared by every callback of one
// run. The host owns it; passes must not retain it past the run.
type AstContext interface {
	// RunID identifies the run.
	RunID() string
	// Crate returns the crate being analyzed.
	Crate() *ast.Crate
	// Symbol resolves an interned name. Unknown IDs yield "".
	Symbol(id ast.SymbolID) string
	// Span resolves a span reference.
	Span(id ast.SpanID) (token.Span, bool)
	// Parent returns the enclosing node, absent for the crate root.
	Parent(id ast.NodeID) ast.Option[ast.NodeID]
	// ResolveTy returns the item a type refers to, if the producer resolved it.
	ResolveTy(id ast.TyID) ast.Option[ast.ItemID]
	// LintLevel returns the configured level of a lint.
	LintLevel(l *Lint) Level
	// LintOptions returns the configured options of a lint, never nil.
	LintOptions(l *Lint) Options
}
