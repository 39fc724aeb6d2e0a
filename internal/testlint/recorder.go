package testlint

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/ast"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// Event is one callback invocation.
type Event struct {
	Plugin   string
	Callback string
	Node     ast.NodeID
}

func (e Event) String() string {
	return fmt.Sprintf("%s.%s(%d)", e.Plugin, e.Callback, e.Node)
}

// Log is shared by recorders so tests see calls interleaved across plugins.
type Log struct {
	Events []Event
}

// Callbacks returns the callback names recorded for one plugin.
func (l *Log) Callbacks(plugin string) []string {
	var out []string
	for _, e := range l.Events {
		if e.Plugin == plugin {
			out = append(out, e.Callback)
		}
	}
	return out
}

// Nodes returns the nodes recorded for one plugin, in call order.
func (l *Log) Nodes(plugin string) []ast.NodeID {
	var out []ast.NodeID
	for _, e := range l.Events {
		if e.Plugin == plugin {
			out = append(out, e.Node)
		}
	}
	return out
}

// Count returns how often a callback fired across all plugins.
func (l *Log) Count(callback string) int {
	n := 0
	for _, e := range l.Events {
		if e.Callback == callback {
			n++
		}
	}
	return n
}

// Recorder implements every callback and appends each call to a Log.
type Recorder struct {
	name    string
	log     *Log
	lints   []*lint.Lint
	panicOn string
}

// NewRecorder creates a recorder declaring the given lints.
func NewRecorder(name string, log *Log, lints ...*lint.Lint) *Recorder {
	return &Recorder{name: name, log: log, lints: lints}
}

// PanicOn makes the recorder panic when the named callback fires.
func (r *Recorder) PanicOn(callback string) *Recorder {
	r.panicOn = callback
	return r
}

// Export wraps the recorder as a plugin export.
func (r *Recorder) Export() lint.Export {
	return lint.Export{Name: r.name, Pass: r, Lints: r.lints}
}

func (r *Recorder) Name() string { return r.name }

func (r *Recorder) record(callback string, node ast.NodeID) {
	r.log.Events = append(r.log.Events, Event{Plugin: r.name, Callback: callback, Node: node})
	if callback == r.panicOn {
		panic(fmt.Sprintf("%s failed on node %d", r.name, node))
	}
}

func (r *Recorder) CheckCrate(_ lint.AstContext, c *ast.Crate) { r.record("CheckCrate", c.ID()) }
func (r *Recorder) CheckItem(_ lint.AstContext, it ast.Item)   { r.record("CheckItem", it.ID) }

func (r *Recorder) CheckMod(_ lint.AstContext, it ast.Item, _ ast.ModItem) {
	r.record("CheckMod", it.ID)
}

func (r *Recorder) CheckExternCrate(_ lint.AstContext, it ast.Item, _ ast.ExternCrateItem) {
	r.record("CheckExternCrate", it.ID)
}

func (r *Recorder) CheckUseDecl(_ lint.AstContext, it ast.Item, _ ast.UseItem) {
	r.record("CheckUseDecl", it.ID)
}

func (r *Recorder) CheckStaticItem(_ lint.AstContext, it ast.Item, _ ast.StaticItem) {
	r.record("CheckStaticItem", it.ID)
}

func (r *Recorder) CheckConstItem(_ lint.AstContext, it ast.Item, _ ast.ConstItem) {
	r.record("CheckConstItem", it.ID)
}

func (r *Recorder) CheckFn(_ lint.AstContext, it ast.Item, _ ast.FnItem) {
	r.record("CheckFn", it.ID)
}

func (r *Recorder) CheckStruct(_ lint.AstContext, it ast.Item, _ ast.StructItem) {
	r.record("CheckStruct", it.ID)
}

func (r *Recorder) CheckEnum(_ lint.AstContext, it ast.Item, _ ast.EnumItem) {
	r.record("CheckEnum", it.ID)
}

func (r *Recorder) CheckField(_ lint.AstContext, f ast.Field)     { r.record("CheckField", f.ID) }
func (r *Recorder) CheckVariant(_ lint.AstContext, v ast.Variant) { r.record("CheckVariant", v.ID) }
func (r *Recorder) CheckStmt(_ lint.AstContext, s ast.Stmt)       { r.record("CheckStmt", s.ID) }
func (r *Recorder) CheckExpr(_ lint.AstContext, e ast.Expr)       { r.record("CheckExpr", e.ID) }
