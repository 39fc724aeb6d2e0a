package ast

// ItemKind tags the payload of an Item.
type ItemKind uint8

const (
	ItemMod ItemKind = iota + 1
	ItemExternCrate
	ItemUse
	ItemStatic
	ItemConst
	ItemFn
	ItemStruct
	ItemEnum
	ItemTypeAlias
)

var itemKindNames = [...]string{
	ItemMod:         "mod",
	ItemExternCrate: "extern crate",
	ItemUse:         "use",
	ItemStatic:      "static",
	ItemConst:       "const",
	ItemFn:          "fn",
	ItemStruct:      "struct",
	ItemEnum:        "enum",
	ItemTypeAlias:   "type",
}

func (k ItemKind) String() string {
	if int(k) < len(itemKindNames) && itemKindNames[k] != "" {
		return itemKindNames[k]
	}
	return "unknown"
}

// Visibility of an item or field.
type Visibility uint8

const (
	VisPrivate Visibility = iota
	VisPublic
	VisCrate
)

// Item is the common header of every item. Payload indexes the arena
// selected by Kind.
type Item struct {
	ID      NodeID
	Kind    ItemKind
	Vis     Visibility
	Span    SpanID
	Name    SymbolID
	Payload uint32
}

// ModItem is an inline module: `mod name { ... }`.
type ModItem struct {
	Items []ItemID
}

// ExternCrateItem is `extern crate name [as rename];`.
type ExternCrateItem struct {
	Crate  SymbolID
	Rename Option[SymbolID]
}

// UseItem is `use a::b::c [as rename];` or `use a::b::*;`.
type UseItem struct {
	Path   []SymbolID
	Rename Option[SymbolID]
	Glob   bool
}

// StaticItem is `static [mut] NAME: Ty [= init];`.
type StaticItem struct {
	Ty      TyID
	Mutable bool
	Init    Option[ExprID]
}

// ConstItem is `const NAME: Ty [= init];`. Init is absent in trait declarations.
type ConstItem struct {
	Ty   TyID
	Init Option[ExprID]
}

// Param is a function or closure parameter.
type Param struct {
	Span SpanID
	Name SymbolID
	Ty   Option[TyID]
}

// FnItem is a function. Body is absent for declarations without a body.
type FnItem struct {
	Params []Param
	Return Option[TyID]
	Body   Option[BodyID]
	Const  bool
	Unsafe bool
}

// StructKind distinguishes the field syntax of structs and variants.
type StructKind uint8

const (
	StructNamed StructKind = iota
	StructTuple
	StructUnit
)

// StructItem is a struct definition.
type StructItem struct {
	Kind   StructKind
	Fields []FieldID
}

// EnumItem is an enum definition.
type EnumItem struct {
	Variants []VariantID
}

// TypeAliasItem is `type Name = Ty;`. Ty is absent for associated type declarations.
type TypeAliasItem struct {
	Ty Option[TyID]
}

// Field is a struct or variant field. Tuple fields have no name.
type Field struct {
	ID   NodeID
	Span SpanID
	Name Option[SymbolID]
	Vis  Visibility
	Ty   TyID
}

// Variant is an enum variant.
type Variant struct {
	ID           NodeID
	Span         SpanID
	Name         SymbolID
	Kind         StructKind
	Fields       []FieldID
	Discriminant Option[ExprID]
}

// Body is a block of statements with an optional trailing expression.
type Body struct {
	ID    NodeID
	Span  SpanID
	Stmts []StmtID
	Expr  Option[ExprID]
}
