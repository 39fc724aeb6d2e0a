package ast

// StmtKind tags the payload of a Stmt.
type StmtKind uint8

const (
	// StmtLet payload is a LetStmt index.
	StmtLet StmtKind = iota + 1
	// StmtItem payload is an ItemID. Local items are not walked by the dispatcher.
	StmtItem
	// StmtExpr payload is an ExprID.
	StmtExpr
)

func (k StmtKind) String() string {
	switch k {
	case StmtLet:
		return "let"
	case StmtItem:
		return "item"
	case StmtExpr:
		return "expr"
	default:
		return "unknown"
	}
}

// Stmt is a statement header.
type Stmt struct {
	ID      NodeID
	Kind    StmtKind
	Span    SpanID
	Payload uint32
}

// LetStmt is `let [mut] name[: Ty] [= init] [else { ... }];`.
type LetStmt struct {
	Name    SymbolID
	Mutable bool
	Ty      Option[TyID]
	Init    Option[ExprID]
	Else    Option[ExprID]
}
