// Package dispatch walks a crate once and hands every node to the loaded
// lint passes.
//
// The walk is pre-order and depth-first. Each item gets CheckItem, then its
// kind callback, then its children: struct fields, enum variants (each
// followed by its own fields and discriminant), static and const
// initializers, function bodies and module members. Statements get
// CheckStmt before their expressions; expressions get CheckExpr before
// their operands. Items declared inside function bodies are not walked.
package dispatch

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leaplint/pkg/ast"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// ErrMalformedCrate is returned when the crate references a node that does
// not exist or reaches a node twice.
var ErrMalformedCrate = errors.New("malformed crate")

// Target receives the callbacks of one walk. *plugin.Registry implements it.
type Target interface {
	CheckCrate(cx lint.AstContext, c *ast.Crate) error
	CheckItem(cx lint.AstContext, it ast.Item) error
	CheckMod(cx lint.AstContext, it ast.Item, x ast.ModItem) error
	CheckExternCrate(cx lint.AstContext, it ast.Item, x ast.ExternCrateItem) error
	CheckUseDecl(cx lint.AstContext, it ast.Item, x ast.UseItem) error
	CheckStaticItem(cx lint.AstContext, it ast.Item, x ast.StaticItem) error
	CheckConstItem(cx lint.AstContext, it ast.Item, x ast.ConstItem) error
	CheckFn(cx lint.AstContext, it ast.Item, x ast.FnItem) error
	CheckStruct(cx lint.AstContext, it ast.Item, x ast.StructItem) error
	CheckEnum(cx lint.AstContext, it ast.Item, x ast.EnumItem) error
	CheckField(cx lint.AstContext, f ast.Field) error
	CheckVariant(cx lint.AstContext, v ast.Variant) error
	CheckStmt(cx lint.AstContext, s ast.Stmt) error
	CheckExpr(cx lint.AstContext, e ast.Expr) error
}

// Stats counts the nodes handed to the target.
type Stats struct {
	Items    int
	Fields   int
	Variants int
	Stmts    int
	Exprs    int
}

// Total returns the number of visited nodes, the crate root included.
func (s Stats) Total() int {
	return 1 + s.Items + s.Fields + s.Variants + s.Stmts + s.Exprs
}

// Dispatcher drives walks against one target.
type Dispatcher struct {
	target Target
	logger *slog.Logger
}

// New creates a dispatcher. A nil logger discards output.
func New(target Target, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{target: target, logger: logger}
}

// ProcessCrate walks crate once. The first error from the target or from the
// crate itself stops the walk.
func (d *Dispatcher) ProcessCrate(cx lint.AstContext, crate *ast.Crate) (Stats, error) {
	w := &walker{
		t:    d.target,
		cx:   cx,
		c:    crate,
		seen: make([]bool, crate.NodeCount()+1),
	}
	err := w.crate()
	d.logger.Debug("walk finished",
		"crate", crate.Symbol(crate.Name()),
		"items", w.stats.Items,
		"stmts", w.stats.Stmts,
		"exprs", w.stats.Exprs,
		"error", err)
	return w.stats, err
}

type walker struct {
	t     Target
	cx    lint.AstContext
	c     *ast.Crate
	seen  []bool
	stats Stats
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedCrate, fmt.Sprintf(format, args...))
}

// enter marks a node as visited.
func (w *walker) enter(id ast.NodeID) error {
	if !id.IsValid() || int(id) >= len(w.seen) {
		return malformed("node %d out of range", id)
	}
	if w.seen[id] {
		return malformed("node %d reached twice", id)
	}
	w.seen[id] = true
	return nil
}

func (w *walker) crate() error {
	if err := w.enter(w.c.ID()); err != nil {
		return err
	}
	if err := w.t.CheckCrate(w.cx, w.c); err != nil {
		return err
	}
	for _, id := range w.c.Items() {
		if err := w.item(id); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) item(id ast.ItemID) error {
	it, ok := w.c.Item(id)
	if !ok {
		return malformed("item %d does not exist", id)
	}
	if err := w.enter(it.ID); err != nil {
		return err
	}
	w.stats.Items++
	if err := w.t.CheckItem(w.cx, it); err != nil {
		return err
	}

	switch it.Kind {
	case ast.ItemMod:
		x, ok := w.c.Mod(it)
		if !ok {
			return malformed("mod %d has no payload", it.ID)
		}
		if err := w.t.CheckMod(w.cx, it, x); err != nil {
			return err
		}
		for _, child := range x.Items {
			if err := w.item(child); err != nil {
				return err
			}
		}

	case ast.ItemExternCrate:
		x, ok := w.c.ExternCrate(it)
		if !ok {
			return malformed("extern crate %d has no payload", it.ID)
		}
		return w.t.CheckExternCrate(w.cx, it, x)

	case ast.ItemUse:
		x, ok := w.c.Use(it)
		if !ok {
			return malformed("use %d has no payload", it.ID)
		}
		return w.t.CheckUseDecl(w.cx, it, x)

	case ast.ItemStatic:
		x, ok := w.c.Static(it)
		if !ok {
			return malformed("static %d has no payload", it.ID)
		}
		if err := w.t.CheckStaticItem(w.cx, it, x); err != nil {
			return err
		}
		return w.optExpr(x.Init)

	case ast.ItemConst:
		x, ok := w.c.Const(it)
		if !ok {
			return malformed("const %d has no payload", it.ID)
		}
		if err := w.t.CheckConstItem(w.cx, it, x); err != nil {
			return err
		}
		return w.optExpr(x.Init)

	case ast.ItemFn:
		x, ok := w.c.Fn(it)
		if !ok {
			return malformed("fn %d has no payload", it.ID)
		}
		if err := w.t.CheckFn(w.cx, it, x); err != nil {
			return err
		}
		if body, ok := x.Body.Get(); ok {
			return w.body(body)
		}

	case ast.ItemStruct:
		x, ok := w.c.Struct(it)
		if !ok {
			return malformed("struct %d has no payload", it.ID)
		}
		if err := w.t.CheckStruct(w.cx, it, x); err != nil {
			return err
		}
		return w.fields(x.Fields)

	case ast.ItemEnum:
		x, ok := w.c.Enum(it)
		if !ok {
			return malformed("enum %d has no payload", it.ID)
		}
		if err := w.t.CheckEnum(w.cx, it, x); err != nil {
			return err
		}
		for _, v := range x.Variants {
			if err := w.variant(v); err != nil {
				return err
			}
		}

	case ast.ItemTypeAlias:
		// No kind callback; the aliased type is not a walked node.

	default:
		return malformed("item %d has unknown kind %d", it.ID, it.Kind)
	}
	return nil
}

func (w *walker) fields(ids []ast.FieldID) error {
	for _, id := range ids {
		f, ok := w.c.Field(id)
		if !ok {
			return malformed("field %d does not exist", id)
		}
		if err := w.enter(f.ID); err != nil {
			return err
		}
		w.stats.Fields++
		if err := w.t.CheckField(w.cx, f); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) variant(id ast.VariantID) error {
	v, ok := w.c.Variant(id)
	if !ok {
		return malformed("variant %d does not exist", id)
	}
	if err := w.enter(v.ID); err != nil {
		return err
	}
	w.stats.Variants++
	if err := w.t.CheckVariant(w.cx, v); err != nil {
		return err
	}
	if err := w.fields(v.Fields); err != nil {
		return err
	}
	return w.optExpr(v.Discriminant)
}

// body walks statements and the trailing expression. The body node itself
// has no callback.
func (w *walker) body(id ast.BodyID) error {
	b, ok := w.c.Body(id)
	if !ok {
		return malformed("body %d does not exist", id)
	}
	if err := w.enter(b.ID); err != nil {
		return err
	}
	for _, s := range b.Stmts {
		if err := w.stmt(s); err != nil {
			return err
		}
	}
	return w.optExpr(b.Expr)
}

func (w *walker) stmt(id ast.StmtID) error {
	s, ok := w.c.Stmt(id)
	if !ok {
		return malformed("statement %d does not exist", id)
	}
	if err := w.enter(s.ID); err != nil {
		return err
	}
	w.stats.Stmts++
	if err := w.t.CheckStmt(w.cx, s); err != nil {
		return err
	}

	switch s.Kind {
	case ast.StmtLet:
		x, ok := w.c.Let(s)
		if !ok {
			return malformed("let %d has no payload", s.ID)
		}
		if err := w.optExpr(x.Init); err != nil {
			return err
		}
		return w.optExpr(x.Else)
	case ast.StmtItem:
		// Local items are not walked.
		return nil
	case ast.StmtExpr:
		e, ok := w.c.StmtExpr(s)
		if !ok {
			return malformed("expression statement %d has no payload", s.ID)
		}
		return w.expr(e)
	default:
		return malformed("statement %d has unknown kind %d", s.ID, s.Kind)
	}
}

func (w *walker) optExpr(o ast.Option[ast.ExprID]) error {
	if id, ok := o.Get(); ok {
		return w.expr(id)
	}
	return nil
}

func (w *walker) exprs(ids ...ast.ExprID) error {
	for _, id := range ids {
		if err := w.expr(id); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) expr(id ast.ExprID) error {
	e, ok := w.c.Expr(id)
	if !ok {
		return malformed("expression %d does not exist", id)
	}
	if err := w.enter(e.ID); err != nil {
		return err
	}
	w.stats.Exprs++
	if err := w.t.CheckExpr(w.cx, e); err != nil {
		return err
	}

	switch e.Kind {
	case ast.ExprLit, ast.ExprPath:
		return nil
	case ast.ExprUnary:
		if x, ok := w.c.Unary(e); ok {
			return w.expr(x.Operand)
		}
	case ast.ExprBinary:
		if x, ok := w.c.Binary(e); ok {
			return w.exprs(x.Lhs, x.Rhs)
		}
	case ast.ExprCall:
		if x, ok := w.c.Call(e); ok {
			if err := w.expr(x.Callee); err != nil {
				return err
			}
			return w.exprs(x.Args...)
		}
	case ast.ExprField:
		if x, ok := w.c.FieldAccess(e); ok {
			return w.expr(x.Operand)
		}
	case ast.ExprBlock:
		if x, ok := w.c.Block(e); ok {
			return w.body(x.Body)
		}
	case ast.ExprIf:
		if x, ok := w.c.If(e); ok {
			if err := w.expr(x.Cond); err != nil {
				return err
			}
			if err := w.body(x.Then); err != nil {
				return err
			}
			return w.optExpr(x.Else)
		}
	case ast.ExprClosure:
		if x, ok := w.c.Closure(e); ok {
			return w.expr(x.Body)
		}
	case ast.ExprReturn:
		if x, ok := w.c.Return(e); ok {
			return w.optExpr(x.Value)
		}
	default:
		return malformed("expression %d has unknown kind %d", e.ID, e.Kind)
	}
	return malformed("%s expression %d has no payload", e.Kind, e.ID)
}
