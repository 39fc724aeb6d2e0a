package lint

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/ast"
)

// Diagnostic represents a lint finding.
type Diagnostic struct {
	Lint    *Lint
	Level   Level
	Message string
	Span    ast.SpanID
	Node    ast.NodeID
	Notes   []string // Optional: extra context lines
}

// Collector accumulates diagnostics for a pass. Embedding it gives the pass
// a DiagnosticSource implementation.
type Collector struct {
	diags []Diagnostic
}

// Report records a finding at the lint's configured level. Findings for
// allowed lints are dropped.
func (c *Collector) Report(cx AstContext, l *Lint, node ast.NodeID, span ast.SpanID, format string, args ...any) {
	level := cx.LintLevel(l)
	if level == Allow {
		return
	}
	c.diags = append(c.diags, Diagnostic{
		Lint:    l,
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
		Node:    node,
	})
}

// Note attaches a note to the most recent finding.
func (c *Collector) Note(format string, args ...any) {
	if len(c.diags) == 0 {
		return
	}
	last := &c.diags[len(c.diags)-1]
	last.Notes = append(last.Notes, fmt.Sprintf(format, args...))
}

// Diagnostics returns a copy of the findings so far.
func (c *Collector) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}
