package ast

// ExprKind tags the payload of an Expr.
type ExprKind uint8

const (
	ExprLit ExprKind = iota + 1
	ExprPath
	ExprUnary
	ExprBinary
	ExprCall
	ExprField
	ExprBlock
	ExprIf
	ExprClosure
	ExprReturn
)

var exprKindNames = [...]string{
	ExprLit:     "lit",
	ExprPath:    "path",
	ExprUnary:   "unary",
	ExprBinary:  "binary",
	ExprCall:    "call",
	ExprField:   "field",
	ExprBlock:   "block",
	ExprIf:      "if",
	ExprClosure: "closure",
	ExprReturn:  "return",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) && exprKindNames[k] != "" {
		return exprKindNames[k]
	}
	return "unknown"
}

// Expr is an expression header.
type Expr struct {
	ID      NodeID
	Kind    ExprKind
	Span    SpanID
	Payload uint32
}

// LitKind is the kind of a literal.
type LitKind uint8

const (
	LitInt LitKind = iota + 1
	LitFloat
	LitStr
	LitChar
	LitBool
)

// LitExpr keeps the literal's source text.
type LitExpr struct {
	Kind  LitKind
	Value SymbolID
}

type PathExpr struct {
	Segments []SymbolID
}

// UnaryOp is a prefix operator.
type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota + 1
	UnaryNot
	UnaryDeref
	UnaryRef
)

type UnaryExpr struct {
	Op      UnaryOp
	Operand ExprID
}

// BinaryOp is an infix operator.
type BinaryOp uint8

const (
	BinAdd BinaryOp = iota + 1
	BinSub
	BinMul
	BinDiv
	BinRem
	BinAnd
	BinOr
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinAssign
)

var binaryOpNames = [...]string{
	BinAdd: "+", BinSub: "-", BinMul: "*", BinDiv: "/", BinRem: "%",
	BinAnd: "&&", BinOr: "||", BinEq: "==", BinNe: "!=",
	BinLt: "<", BinLe: "<=", BinGt: ">", BinGe: ">=", BinAssign: "=",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) && binaryOpNames[op] != "" {
		return binaryOpNames[op]
	}
	return "?"
}

// ParseBinaryOp maps an operator token such as "<=" to its BinaryOp.
func ParseBinaryOp(s string) (BinaryOp, bool) {
	for op, name := range binaryOpNames {
		if name != "" && name == s {
			return BinaryOp(op), true
		}
	}
	return 0, false
}

type BinaryExpr struct {
	Op  BinaryOp
	Lhs ExprID
	Rhs ExprID
}

type CallExpr struct {
	Callee ExprID
	Args   []ExprID
}

// FieldExpr is `operand.field`.
type FieldExpr struct {
	Operand ExprID
	Field   SymbolID
}

type BlockExpr struct {
	Body BodyID
}

type IfExpr struct {
	Cond ExprID
	Then BodyID
	Else Option[ExprID]
}

// ClosureExpr is `|params| body`. Items declared inside the body are not walked.
type ClosureExpr struct {
	Params []Param
	Body   ExprID
}

type ReturnExpr struct {
	Value Option[ExprID]
}
