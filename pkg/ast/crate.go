package ast

import "github.com/leapstack-labs/leaplint/pkg/token"

// Crate is the root of one analyzed program and the owner of all its nodes.
// A crate is read-only once built; accessors return deep copies.
type Crate struct {
	d crateData
}

// crateData holds every arena. Its field order is part of the snapshot format.
type crateData struct {
	ID    NodeID   `msgpack:"id"`
	Name  SymbolID `msgpack:"name"`
	Span  SpanID   `msgpack:"span"`
	Items []ItemID `msgpack:"items"`

	Symbols Arena[string]     `msgpack:"symbols"`
	Spans   Arena[token.Span] `msgpack:"spans"`
	// Parents is indexed by NodeID.
	Parents Arena[NodeID] `msgpack:"parents"`
	// TyDefs is indexed by TyID; NoItemID means unresolved.
	TyDefs Arena[ItemID] `msgpack:"ty_defs"`

	ItemNodes    Arena[Item]            `msgpack:"item_nodes"`
	Mods         Arena[ModItem]         `msgpack:"mods"`
	ExternCrates Arena[ExternCrateItem] `msgpack:"extern_crates"`
	Uses         Arena[UseItem]         `msgpack:"uses"`
	Statics      Arena[StaticItem]      `msgpack:"statics"`
	Consts       Arena[ConstItem]       `msgpack:"consts"`
	Fns          Arena[FnItem]          `msgpack:"fns"`
	Structs      Arena[StructItem]      `msgpack:"structs"`
	Enums        Arena[EnumItem]        `msgpack:"enums"`
	TypeAliases  Arena[TypeAliasItem]   `msgpack:"type_aliases"`
	Fields       Arena[Field]           `msgpack:"fields"`
	Variants     Arena[Variant]         `msgpack:"variants"`
	Bodies       Arena[Body]            `msgpack:"bodies"`

	StmtNodes Arena[Stmt]    `msgpack:"stmt_nodes"`
	Lets      Arena[LetStmt] `msgpack:"lets"`

	ExprNodes Arena[Expr]        `msgpack:"expr_nodes"`
	Lits      Arena[LitExpr]     `msgpack:"lits"`
	Paths     Arena[PathExpr]    `msgpack:"paths"`
	Unaries   Arena[UnaryExpr]   `msgpack:"unaries"`
	Binaries  Arena[BinaryExpr]  `msgpack:"binaries"`
	Calls     Arena[CallExpr]    `msgpack:"calls"`
	FieldExps Arena[FieldExpr]   `msgpack:"field_exprs"`
	Blocks    Arena[BlockExpr]   `msgpack:"blocks"`
	Ifs       Arena[IfExpr]      `msgpack:"ifs"`
	Closures  Arena[ClosureExpr] `msgpack:"closures"`
	Returns   Arena[ReturnExpr]  `msgpack:"returns"`

	Tys Arena[Ty] `msgpack:"tys"`
}

// ID returns the crate's identity token.
func (c *Crate) ID() NodeID { return c.d.ID }

// Name returns the crate name symbol.
func (c *Crate) Name() SymbolID { return c.d.Name }

// Span returns the crate span.
func (c *Crate) Span() SpanID { return c.d.Span }

// Items returns the top-level items in declaration order.
func (c *Crate) Items() []ItemID {
	out := make([]ItemID, len(c.d.Items))
	copy(out, c.d.Items)
	return out
}

// NodeCount returns the number of identity tokens allocated in this crate.
func (c *Crate) NodeCount() int { return c.d.Parents.Len() }

// Symbol returns the interned string for id, or "" if id is invalid.
func (c *Crate) Symbol(id SymbolID) string {
	s, _ := c.d.Symbols.Get(uint32(id))
	return s
}

// SpanOf returns the source span for id.
func (c *Crate) SpanOf(id SpanID) (token.Span, bool) {
	return c.d.Spans.Get(uint32(id))
}

// Parent returns the identity token of the node that owns id.
// The crate itself has no parent.
func (c *Crate) Parent(id NodeID) Option[NodeID] {
	p, ok := c.d.Parents.Get(uint32(id))
	if !ok || !p.IsValid() {
		return None[NodeID]()
	}
	return Some(p)
}

// TyDef returns the item a path type resolves to, if the producer resolved it.
func (c *Crate) TyDef(id TyID) Option[ItemID] {
	def, ok := c.d.TyDefs.Get(uint32(id))
	if !ok || !def.IsValid() {
		return None[ItemID]()
	}
	return Some(def)
}

func (c *Crate) Item(id ItemID) (Item, bool)          { return c.d.ItemNodes.Get(uint32(id)) }
func (c *Crate) Field(id FieldID) (Field, bool)       { return c.d.Fields.Get(uint32(id)) }
func (c *Crate) Variant(id VariantID) (Variant, bool) { return c.d.Variants.Get(uint32(id)) }
func (c *Crate) Body(id BodyID) (Body, bool)          { return c.d.Bodies.Get(uint32(id)) }
func (c *Crate) Stmt(id StmtID) (Stmt, bool)          { return c.d.StmtNodes.Get(uint32(id)) }
func (c *Crate) Expr(id ExprID) (Expr, bool)          { return c.d.ExprNodes.Get(uint32(id)) }
func (c *Crate) Ty(id TyID) (Ty, bool)                { return c.d.Tys.Get(uint32(id)) }

func payload[T any](a *Arena[T], tag, want uint8, index uint32) (T, bool) {
	if tag != want {
		var zero T
		return zero, false
	}
	return a.Get(index)
}

// Payload accessors. Each returns false when the node's tag does not match.

func (c *Crate) Mod(it Item) (ModItem, bool) {
	return payload(&c.d.Mods, uint8(it.Kind), uint8(ItemMod), it.Payload)
}

func (c *Crate) ExternCrate(it Item) (ExternCrateItem, bool) {
	return payload(&c.d.ExternCrates, uint8(it.Kind), uint8(ItemExternCrate), it.Payload)
}

func (c *Crate) Use(it Item) (UseItem, bool) {
	return payload(&c.d.Uses, uint8(it.Kind), uint8(ItemUse), it.Payload)
}

func (c *Crate) Static(it Item) (StaticItem, bool) {
	return payload(&c.d.Statics, uint8(it.Kind), uint8(ItemStatic), it.Payload)
}

func (c *Crate) Const(it Item) (ConstItem, bool) {
	return payload(&c.d.Consts, uint8(it.Kind), uint8(ItemConst), it.Payload)
}

func (c *Crate) Fn(it Item) (FnItem, bool) {
	return payload(&c.d.Fns, uint8(it.Kind), uint8(ItemFn), it.Payload)
}

func (c *Crate) Struct(it Item) (StructItem, bool) {
	return payload(&c.d.Structs, uint8(it.Kind), uint8(ItemStruct), it.Payload)
}

func (c *Crate) Enum(it Item) (EnumItem, bool) {
	return payload(&c.d.Enums, uint8(it.Kind), uint8(ItemEnum), it.Payload)
}

func (c *Crate) TypeAlias(it Item) (TypeAliasItem, bool) {
	return payload(&c.d.TypeAliases, uint8(it.Kind), uint8(ItemTypeAlias), it.Payload)
}

func (c *Crate) Let(s Stmt) (LetStmt, bool) {
	return payload(&c.d.Lets, uint8(s.Kind), uint8(StmtLet), s.Payload)
}

// StmtItem returns the local item declared by an item statement.
func (c *Crate) StmtItem(s Stmt) (ItemID, bool) {
	if s.Kind != StmtItem {
		return NoItemID, false
	}
	return ItemID(s.Payload), true
}

// StmtExpr returns the expression of an expression statement.
func (c *Crate) StmtExpr(s Stmt) (ExprID, bool) {
	if s.Kind != StmtExpr {
		return NoExprID, false
	}
	return ExprID(s.Payload), true
}

func (c *Crate) Lit(e Expr) (LitExpr, bool) {
	return payload(&c.d.Lits, uint8(e.Kind), uint8(ExprLit), e.Payload)
}

func (c *Crate) Path(e Expr) (PathExpr, bool) {
	return payload(&c.d.Paths, uint8(e.Kind), uint8(ExprPath), e.Payload)
}

func (c *Crate) Unary(e Expr) (UnaryExpr, bool) {
	return payload(&c.d.Unaries, uint8(e.Kind), uint8(ExprUnary), e.Payload)
}

func (c *Crate) Binary(e Expr) (BinaryExpr, bool) {
	return payload(&c.d.Binaries, uint8(e.Kind), uint8(ExprBinary), e.Payload)
}

func (c *Crate) Call(e Expr) (CallExpr, bool) {
	return payload(&c.d.Calls, uint8(e.Kind), uint8(ExprCall), e.Payload)
}

func (c *Crate) FieldAccess(e Expr) (FieldExpr, bool) {
	return payload(&c.d.FieldExps, uint8(e.Kind), uint8(ExprField), e.Payload)
}

func (c *Crate) Block(e Expr) (BlockExpr, bool) {
	return payload(&c.d.Blocks, uint8(e.Kind), uint8(ExprBlock), e.Payload)
}

func (c *Crate) If(e Expr) (IfExpr, bool) {
	return payload(&c.d.Ifs, uint8(e.Kind), uint8(ExprIf), e.Payload)
}

func (c *Crate) Closure(e Expr) (ClosureExpr, bool) {
	return payload(&c.d.Closures, uint8(e.Kind), uint8(ExprClosure), e.Payload)
}

func (c *Crate) Return(e Expr) (ReturnExpr, bool) {
	return payload(&c.d.Returns, uint8(e.Kind), uint8(ExprReturn), e.Payload)
}
