package fixture

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/ast"
)

var litKinds = map[string]ast.LitKind{
	"int":   ast.LitInt,
	"float": ast.LitFloat,
	"str":   ast.LitStr,
	"char":  ast.LitChar,
	"bool":  ast.LitBool,
}

var unaryOps = map[string]ast.UnaryOp{
	"-": ast.UnaryNeg,
	"!": ast.UnaryNot,
	"*": ast.UnaryDeref,
	"&": ast.UnaryRef,
}

func (c *converter) optExpr(e *Expr) (ast.Option[ast.ExprID], error) {
	if e == nil {
		return ast.None[ast.ExprID](), nil
	}
	id, err := c.expr(e)
	if err != nil {
		return ast.None[ast.ExprID](), err
	}
	return ast.Some(id), nil
}

func (e *Expr) setCount() int {
	n := 0
	for _, ok := range []bool{
		e.Lit != nil, e.Path != "", e.Unary != nil, e.Binary != nil, e.Call != nil,
		e.Field != nil, e.Block != nil, e.If != nil, e.Closure != nil, e.Return != nil,
	} {
		if ok {
			n++
		}
	}
	return n
}

// required builds an operand that must be present.
func (c *converter) required(e *Expr, what string) (ast.ExprID, error) {
	if e == nil {
		return 0, fmt.Errorf("%s is missing", what)
	}
	return c.expr(e)
}

func (c *converter) expr(e *Expr) (ast.ExprID, error) {
	if n := e.setCount(); n != 1 {
		return 0, fmt.Errorf("expression must set exactly one kind, got %d", n)
	}
	sp := c.here()

	switch {
	case e.Lit != nil:
		kind, ok := litKinds[e.Lit.Kind]
		if !ok {
			return 0, fmt.Errorf("unknown literal kind %q", e.Lit.Kind)
		}
		return c.b.Lit(sp, kind, e.Lit.Value), nil

	case e.Path != "":
		return c.b.PathExpr(sp, strings.Split(e.Path, "::")...), nil

	case e.Unary != nil:
		op, ok := unaryOps[e.Unary.Op]
		if !ok {
			return 0, fmt.Errorf("unknown unary operator %q", e.Unary.Op)
		}
		operand, err := c.required(e.Unary.Expr, "unary operand")
		if err != nil {
			return 0, err
		}
		return c.b.Unary(sp, ast.UnaryExpr{Op: op, Operand: operand}), nil

	case e.Binary != nil:
		op, ok := ast.ParseBinaryOp(e.Binary.Op)
		if !ok {
			return 0, fmt.Errorf("unknown binary operator %q", e.Binary.Op)
		}
		lhs, err := c.required(e.Binary.Lhs, "left operand")
		if err != nil {
			return 0, err
		}
		rhs, err := c.required(e.Binary.Rhs, "right operand")
		if err != nil {
			return 0, err
		}
		return c.b.Binary(sp, ast.BinaryExpr{Op: op, Lhs: lhs, Rhs: rhs}), nil

	case e.Call != nil:
		callee, err := c.required(e.Call.Callee, "callee")
		if err != nil {
			return 0, err
		}
		args := make([]ast.ExprID, 0, len(e.Call.Args))
		for i := range e.Call.Args {
			arg, err := c.expr(&e.Call.Args[i])
			if err != nil {
				return 0, fmt.Errorf("argument %d: %w", i, err)
			}
			args = append(args, arg)
		}
		return c.b.Call(sp, ast.CallExpr{Callee: callee, Args: args}), nil

	case e.Field != nil:
		if e.Field.Name == "" {
			return 0, fmt.Errorf("field access has no name")
		}
		operand, err := c.required(e.Field.Expr, "field operand")
		if err != nil {
			return 0, err
		}
		return c.b.FieldAccess(sp, operand, e.Field.Name), nil

	case e.Block != nil:
		body, err := c.body(e.Block)
		if err != nil {
			return 0, err
		}
		return c.b.Block(sp, body), nil

	case e.If != nil:
		cond, err := c.required(e.If.Cond, "condition")
		if err != nil {
			return 0, err
		}
		then, err := c.body(&e.If.Then)
		if err != nil {
			return 0, err
		}
		els, err := c.optExpr(e.If.Else)
		if err != nil {
			return 0, err
		}
		return c.b.If(sp, ast.IfExpr{Cond: cond, Then: then, Else: els}), nil

	case e.Closure != nil:
		params, err := c.params(e.Closure.Params)
		if err != nil {
			return 0, err
		}
		body, err := c.required(e.Closure.Body, "closure body")
		if err != nil {
			return 0, err
		}
		return c.b.Closure(sp, ast.ClosureExpr{Params: params, Body: body}), nil

	default:
		value, err := c.optExpr(e.Return.Value)
		if err != nil {
			return 0, err
		}
		return c.b.Return(sp, value), nil
	}
}
