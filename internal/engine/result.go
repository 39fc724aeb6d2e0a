package engine

import (
	"cmp"
	"slices"
	"time"

	"github.com/leapstack-labs/leaplint/internal/dispatch"
	"github.com/leapstack-labs/leaplint/pkg/ast"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Diagnostic is a finding as reported to the user.
type Diagnostic struct {
	Lint    string     `json:"lint"`
	Plugin  string     `json:"plugin"`
	Level   lint.Level `json:"level"`
	Message string     `json:"message"`
	Span    token.Span `json:"span"`
	Node    ast.NodeID `json:"node"`
	Notes   []string   `json:"notes,omitempty"`
}

// Result is the outcome of a completed run.
type Result struct {
	RunID       string         `json:"run_id"`
	Crate       string         `json:"crate"`
	BuildFlags  []string       `json:"build_flags,omitempty"`
	Diagnostics []Diagnostic   `json:"diagnostics"`
	Stats       dispatch.Stats `json:"-"`
	Duration    time.Duration  `json:"-"`
}

// Visited returns the number of nodes handed to plugins.
func (r *Result) Visited() int {
	return r.Stats.Total()
}

// Failed reports whether any diagnostic is at Deny or Forbid.
func (r *Result) Failed() bool {
	return slices.ContainsFunc(r.Diagnostics, func(d Diagnostic) bool {
		return d.Level.IsError()
	})
}

// Count returns the number of diagnostics at level.
func (r *Result) Count(level lint.Level) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Level == level {
			n++
		}
	}
	return n
}

func sortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		switch {
		case a.Span.Before(b.Span):
			return -1
		case b.Span.Before(a.Span):
			return 1
		}
		return cmp.Compare(a.Lint, b.Lint)
	})
}
