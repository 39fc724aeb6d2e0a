package ast

type (
	// NodeID is the identity token of a walkable node within one crate.
	NodeID uint32

	ItemID    uint32
	FieldID   uint32
	VariantID uint32
	BodyID    uint32
	StmtID    uint32
	ExprID    uint32
	TyID      uint32

	// SymbolID indexes the crate's interned strings.
	SymbolID uint32
	// SpanID indexes the crate's span table.
	SpanID uint32
)

const (
	NoNodeID    NodeID    = 0
	NoItemID    ItemID    = 0
	NoFieldID   FieldID   = 0
	NoVariantID VariantID = 0
	NoBodyID    BodyID    = 0
	NoStmtID    StmtID    = 0
	NoExprID    ExprID    = 0
	NoTyID      TyID      = 0
	NoSymbolID  SymbolID  = 0
	NoSpanID    SpanID    = 0
)

func (id NodeID) IsValid() bool    { return id != NoNodeID }
func (id ItemID) IsValid() bool    { return id != NoItemID }
func (id FieldID) IsValid() bool   { return id != NoFieldID }
func (id VariantID) IsValid() bool { return id != NoVariantID }
func (id BodyID) IsValid() bool    { return id != NoBodyID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id TyID) IsValid() bool      { return id != NoTyID }
func (id SymbolID) IsValid() bool  { return id != NoSymbolID }
func (id SpanID) IsValid() bool    { return id != NoSpanID }
