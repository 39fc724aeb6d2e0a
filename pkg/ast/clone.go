package ast

import "slices"

// cloner is implemented by nodes that hold slices. Arena reads go through it
// so values handed out never share backing arrays with the crate.
type cloner[T any] interface {
	Clone() T
}

func cloneValue[T any](v T) T {
	if c, ok := any(v).(cloner[T]); ok {
		return c.Clone()
	}
	return v
}

// Clone returns a deep copy of m.
func (m ModItem) Clone() ModItem {
	m.Items = slices.Clone(m.Items)
	return m
}

// Clone returns a deep copy of u.
func (u UseItem) Clone() UseItem {
	u.Path = slices.Clone(u.Path)
	return u
}

// Clone returns a deep copy of f.
func (f FnItem) Clone() FnItem {
	f.Params = slices.Clone(f.Params)
	return f
}

// Clone returns a deep copy of s.
func (s StructItem) Clone() StructItem {
	s.Fields = slices.Clone(s.Fields)
	return s
}

// Clone returns a deep copy of e.
func (e EnumItem) Clone() EnumItem {
	e.Variants = slices.Clone(e.Variants)
	return e
}

// Clone returns a deep copy of v.
func (v Variant) Clone() Variant {
	v.Fields = slices.Clone(v.Fields)
	return v
}

// Clone returns a deep copy of b.
func (b Body) Clone() Body {
	b.Stmts = slices.Clone(b.Stmts)
	return b
}

// Clone returns a deep copy of p.
func (p PathExpr) Clone() PathExpr {
	p.Segments = slices.Clone(p.Segments)
	return p
}

// Clone returns a deep copy of c.
func (c CallExpr) Clone() CallExpr {
	c.Args = slices.Clone(c.Args)
	return c
}

// Clone returns a deep copy of c.
func (c ClosureExpr) Clone() ClosureExpr {
	c.Params = slices.Clone(c.Params)
	return c
}

// Clone returns a deep copy of t.
func (t Ty) Clone() Ty {
	t.Path = slices.Clone(t.Path)
	t.Args = slices.Clone(t.Args)
	return t
}
