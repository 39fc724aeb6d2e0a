package fixture

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/ast"
)

// ty parses a type written in source syntax: paths with generic arguments,
// references, slices, tuples, `!` and `_`.
func (c *converter) ty(s string) (ast.TyID, error) {
	s = strings.TrimSpace(s)
	sp := c.here()
	switch {
	case s == "":
		return 0, fmt.Errorf("missing type")
	case s == "!":
		return c.b.Ty(sp, ast.TyNever, nil), nil
	case s == "_":
		return c.b.Ty(sp, ast.TyInfer, nil), nil
	case strings.HasPrefix(s, "&mut "):
		inner, err := c.ty(s[len("&mut "):])
		if err != nil {
			return 0, err
		}
		return c.b.RefTy(sp, true, inner), nil
	case strings.HasPrefix(s, "&"):
		inner, err := c.ty(s[1:])
		if err != nil {
			return 0, err
		}
		return c.b.RefTy(sp, false, inner), nil
	case strings.HasPrefix(s, "["):
		if !strings.HasSuffix(s, "]") {
			return 0, fmt.Errorf("unterminated slice type %q", s)
		}
		inner, err := c.ty(s[1 : len(s)-1])
		if err != nil {
			return 0, err
		}
		return c.b.Ty(sp, ast.TySlice, nil, inner), nil
	case strings.HasPrefix(s, "("):
		if !strings.HasSuffix(s, ")") {
			return 0, fmt.Errorf("unterminated tuple type %q", s)
		}
		args, err := c.tyList(s[1 : len(s)-1])
		if err != nil {
			return 0, err
		}
		return c.b.Ty(sp, ast.TyTuple, nil, args...), nil
	}

	path, rest, generic := strings.Cut(s, "<")
	var args []ast.TyID
	if generic {
		if !strings.HasSuffix(rest, ">") {
			return 0, fmt.Errorf("unterminated generic arguments in %q", s)
		}
		var err error
		if args, err = c.tyList(rest[:len(rest)-1]); err != nil {
			return 0, err
		}
	}
	segs := strings.Split(path, "::")
	for _, seg := range segs {
		if seg == "" || strings.ContainsAny(seg, " ,()[]&<>") {
			return 0, fmt.Errorf("invalid type path %q", s)
		}
	}
	id := c.b.Ty(sp, ast.TyPath, segs, args...)
	c.pending = append(c.pending, pendingTy{ty: id, path: path, scope: slices.Clone(c.scope)})
	return id, nil
}

// tyList parses comma-separated types, splitting only at the top level.
func (c *converter) tyList(s string) ([]ast.TyID, error) {
	var out []ast.TyID
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
		case ',':
			if depth == 0 {
				id, err := c.ty(s[start:i])
				if err != nil {
					return nil, err
				}
				out = append(out, id)
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(s[start:]); last != "" {
		id, err := c.ty(last)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// resolve links path types to the items they name. A name is looked up in
// the enclosing modules first, innermost out.
func (c *converter) resolve() {
	for _, p := range c.pending {
		for depth := len(p.scope); depth >= 0; depth-- {
			key := strings.Join(append(p.scope[:depth:depth], p.path), "::")
			if def, ok := c.names[key]; ok {
				c.b.ResolveTy(p.ty, def)
				break
			}
		}
	}
}
