package ast

import "github.com/leapstack-labs/leaplint/pkg/token"

// Header carries the fields shared by every item.
type Header struct {
	Span SpanID
	Name string
	Vis  Visibility
}

// Builder constructs a Crate bottom-up: children are created first and
// handed to their parent, which records the parent links.
type Builder struct {
	c    *Crate
	syms map[string]SymbolID
}

// NewBuilder starts a crate named name.
func NewBuilder(name string) *Builder {
	b := &Builder{
		c:    &Crate{},
		syms: make(map[string]SymbolID),
	}
	b.c.d.ID = b.node()
	b.c.d.Name = b.Sym(name)
	return b
}

// node allocates a fresh identity token. Parents is indexed by NodeID,
// so the allocation index is the token.
func (b *Builder) node() NodeID {
	return NodeID(b.c.d.Parents.Alloc(NoNodeID))
}

func (b *Builder) adopt(parent NodeID, children ...NodeID) {
	for _, child := range children {
		if child.IsValid() {
			b.c.d.Parents.set(uint32(child), parent)
		}
	}
}

// Sym interns s.
func (b *Builder) Sym(s string) SymbolID {
	if id, ok := b.syms[s]; ok {
		return id
	}
	id := SymbolID(b.c.d.Symbols.Alloc(s))
	b.syms[s] = id
	return id
}

// OptSym interns s, mapping "" to an absent symbol.
func (b *Builder) OptSym(s string) Option[SymbolID] {
	if s == "" {
		return None[SymbolID]()
	}
	return Some(b.Sym(s))
}

// Span records a source span.
func (b *Builder) Span(s token.Span) SpanID {
	return SpanID(b.c.d.Spans.Alloc(s))
}

// Types

// Ty records a type. Unresolved until ResolveTy is called.
func (b *Builder) Ty(span SpanID, kind TyKind, path []string, args ...TyID) TyID {
	segs := make([]SymbolID, len(path))
	for i, p := range path {
		segs[i] = b.Sym(p)
	}
	id := TyID(b.c.d.Tys.Alloc(Ty{Kind: kind, Span: span, Path: segs, Args: args}))
	ty, _ := b.c.d.Tys.Get(uint32(id))
	ty.ID = id
	b.c.d.Tys.set(uint32(id), ty)
	b.c.d.TyDefs.Alloc(NoItemID)
	return id
}

// RefTy records a reference type `&inner` or `&mut inner`.
func (b *Builder) RefTy(span SpanID, mutable bool, inner TyID) TyID {
	id := b.Ty(span, TyRef, nil, inner)
	ty, _ := b.c.d.Tys.Get(uint32(id))
	ty.Mutable = mutable
	b.c.d.Tys.set(uint32(id), ty)
	return id
}

// PathTy is shorthand for a TyPath type written as dotted segments.
func (b *Builder) PathTy(span SpanID, segments ...string) TyID {
	return b.Ty(span, TyPath, segments)
}

// ResolveTy records that ty names the item def.
func (b *Builder) ResolveTy(ty TyID, def ItemID) {
	b.c.d.TyDefs.set(uint32(ty), def)
}

// Expressions

func (b *Builder) expr(kind ExprKind, span SpanID, payload uint32, children ...NodeID) ExprID {
	id := b.node()
	b.adopt(id, children...)
	return ExprID(b.c.d.ExprNodes.Alloc(Expr{ID: id, Kind: kind, Span: span, Payload: payload}))
}

func (b *Builder) exprNode(id ExprID) NodeID {
	e, _ := b.c.d.ExprNodes.Get(uint32(id))
	return e.ID
}

func (b *Builder) optExprNode(o Option[ExprID]) NodeID {
	if id, ok := o.Get(); ok {
		return b.exprNode(id)
	}
	return NoNodeID
}

func (b *Builder) bodyNode(id BodyID) NodeID {
	body, _ := b.c.d.Bodies.Get(uint32(id))
	return body.ID
}

func (b *Builder) Lit(span SpanID, kind LitKind, text string) ExprID {
	p := b.c.d.Lits.Alloc(LitExpr{Kind: kind, Value: b.Sym(text)})
	return b.expr(ExprLit, span, p)
}

func (b *Builder) PathExpr(span SpanID, segments ...string) ExprID {
	segs := make([]SymbolID, len(segments))
	for i, s := range segments {
		segs[i] = b.Sym(s)
	}
	p := b.c.d.Paths.Alloc(PathExpr{Segments: segs})
	return b.expr(ExprPath, span, p)
}

func (b *Builder) Unary(span SpanID, x UnaryExpr) ExprID {
	p := b.c.d.Unaries.Alloc(x)
	return b.expr(ExprUnary, span, p, b.exprNode(x.Operand))
}

func (b *Builder) Binary(span SpanID, x BinaryExpr) ExprID {
	p := b.c.d.Binaries.Alloc(x)
	return b.expr(ExprBinary, span, p, b.exprNode(x.Lhs), b.exprNode(x.Rhs))
}

func (b *Builder) Call(span SpanID, x CallExpr) ExprID {
	p := b.c.d.Calls.Alloc(x)
	children := []NodeID{b.exprNode(x.Callee)}
	for _, arg := range x.Args {
		children = append(children, b.exprNode(arg))
	}
	return b.expr(ExprCall, span, p, children...)
}

func (b *Builder) FieldAccess(span SpanID, operand ExprID, field string) ExprID {
	p := b.c.d.FieldExps.Alloc(FieldExpr{Operand: operand, Field: b.Sym(field)})
	return b.expr(ExprField, span, p, b.exprNode(operand))
}

func (b *Builder) Block(span SpanID, body BodyID) ExprID {
	p := b.c.d.Blocks.Alloc(BlockExpr{Body: body})
	return b.expr(ExprBlock, span, p, b.bodyNode(body))
}

func (b *Builder) If(span SpanID, x IfExpr) ExprID {
	p := b.c.d.Ifs.Alloc(x)
	return b.expr(ExprIf, span, p, b.exprNode(x.Cond), b.bodyNode(x.Then), b.optExprNode(x.Else))
}

func (b *Builder) Closure(span SpanID, x ClosureExpr) ExprID {
	p := b.c.d.Closures.Alloc(x)
	return b.expr(ExprClosure, span, p, b.exprNode(x.Body))
}

func (b *Builder) Return(span SpanID, value Option[ExprID]) ExprID {
	p := b.c.d.Returns.Alloc(ReturnExpr{Value: value})
	return b.expr(ExprReturn, span, p, b.optExprNode(value))
}

// Statements and bodies

func (b *Builder) stmt(kind StmtKind, span SpanID, payload uint32, children ...NodeID) StmtID {
	id := b.node()
	b.adopt(id, children...)
	return StmtID(b.c.d.StmtNodes.Alloc(Stmt{ID: id, Kind: kind, Span: span, Payload: payload}))
}

func (b *Builder) Let(span SpanID, x LetStmt) StmtID {
	p := b.c.d.Lets.Alloc(x)
	return b.stmt(StmtLet, span, p, b.optExprNode(x.Init), b.optExprNode(x.Else))
}

// ItemStmt declares a local item. The item is owned by the statement.
func (b *Builder) ItemStmt(span SpanID, item ItemID) StmtID {
	it, _ := b.c.d.ItemNodes.Get(uint32(item))
	return b.stmt(StmtItem, span, uint32(item), it.ID)
}

func (b *Builder) ExprStmt(span SpanID, expr ExprID) StmtID {
	return b.stmt(StmtExpr, span, uint32(expr), b.exprNode(expr))
}

// Body groups statements and an optional trailing expression.
func (b *Builder) Body(span SpanID, stmts []StmtID, tail Option[ExprID]) BodyID {
	id := b.node()
	for _, s := range stmts {
		st, _ := b.c.d.StmtNodes.Get(uint32(s))
		b.adopt(id, st.ID)
	}
	b.adopt(id, b.optExprNode(tail))
	return BodyID(b.c.d.Bodies.Alloc(Body{ID: id, Span: span, Stmts: stmts, Expr: tail}))
}

// Fields and variants

// Field records a field. An empty name makes a tuple field.
func (b *Builder) Field(span SpanID, name string, vis Visibility, ty TyID) FieldID {
	id := b.node()
	return FieldID(b.c.d.Fields.Alloc(Field{ID: id, Span: span, Name: b.OptSym(name), Vis: vis, Ty: ty}))
}

func (b *Builder) fieldNodes(parent NodeID, fields []FieldID) {
	for _, f := range fields {
		fd, _ := b.c.d.Fields.Get(uint32(f))
		b.adopt(parent, fd.ID)
	}
}

func (b *Builder) Variant(span SpanID, name string, kind StructKind, fields []FieldID, discriminant Option[ExprID]) VariantID {
	id := b.node()
	b.fieldNodes(id, fields)
	b.adopt(id, b.optExprNode(discriminant))
	return VariantID(b.c.d.Variants.Alloc(Variant{
		ID:           id,
		Span:         span,
		Name:         b.Sym(name),
		Kind:         kind,
		Fields:       fields,
		Discriminant: discriminant,
	}))
}

// Items

func (b *Builder) item(kind ItemKind, h Header, payload uint32, children ...NodeID) ItemID {
	id := b.node()
	b.adopt(id, children...)
	return ItemID(b.c.d.ItemNodes.Alloc(Item{
		ID:      id,
		Kind:    kind,
		Vis:     h.Vis,
		Span:    h.Span,
		Name:    b.Sym(h.Name),
		Payload: payload,
	}))
}

func (b *Builder) itemNodes(items []ItemID) []NodeID {
	out := make([]NodeID, 0, len(items))
	for _, i := range items {
		it, _ := b.c.d.ItemNodes.Get(uint32(i))
		out = append(out, it.ID)
	}
	return out
}

func (b *Builder) Mod(h Header, items ...ItemID) ItemID {
	p := b.c.d.Mods.Alloc(ModItem{Items: items})
	return b.item(ItemMod, h, p, b.itemNodes(items)...)
}

func (b *Builder) ExternCrate(h Header, x ExternCrateItem) ItemID {
	p := b.c.d.ExternCrates.Alloc(x)
	return b.item(ItemExternCrate, h, p)
}

func (b *Builder) Use(h Header, x UseItem) ItemID {
	p := b.c.d.Uses.Alloc(x)
	return b.item(ItemUse, h, p)
}

func (b *Builder) Static(h Header, x StaticItem) ItemID {
	p := b.c.d.Statics.Alloc(x)
	return b.item(ItemStatic, h, p, b.optExprNode(x.Init))
}

func (b *Builder) Const(h Header, x ConstItem) ItemID {
	p := b.c.d.Consts.Alloc(x)
	return b.item(ItemConst, h, p, b.optExprNode(x.Init))
}

func (b *Builder) Fn(h Header, x FnItem) ItemID {
	p := b.c.d.Fns.Alloc(x)
	var body NodeID
	if id, ok := x.Body.Get(); ok {
		body = b.bodyNode(id)
	}
	return b.item(ItemFn, h, p, body)
}

func (b *Builder) Struct(h Header, x StructItem) ItemID {
	p := b.c.d.Structs.Alloc(x)
	id := b.item(ItemStruct, h, p)
	it, _ := b.c.d.ItemNodes.Get(uint32(id))
	b.fieldNodes(it.ID, x.Fields)
	return id
}

func (b *Builder) Enum(h Header, x EnumItem) ItemID {
	p := b.c.d.Enums.Alloc(x)
	id := b.item(ItemEnum, h, p)
	it, _ := b.c.d.ItemNodes.Get(uint32(id))
	for _, v := range x.Variants {
		vd, _ := b.c.d.Variants.Get(uint32(v))
		b.adopt(it.ID, vd.ID)
	}
	return id
}

func (b *Builder) TypeAlias(h Header, x TypeAliasItem) ItemID {
	p := b.c.d.TypeAliases.Alloc(x)
	return b.item(ItemTypeAlias, h, p)
}

// Finish sets the crate's top-level items and returns the crate.
// The builder must not be used afterwards.
func (b *Builder) Finish(span SpanID, items ...ItemID) *Crate {
	b.c.d.Span = span
	b.c.d.Items = items
	b.adopt(b.c.d.ID, b.itemNodes(items)...)
	c := b.c
	b.c = nil
	return c
}
