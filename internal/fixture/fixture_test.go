package fixture

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/leaplint/pkg/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, name string) *ast.Crate {
	t.Helper()
	c, err := Load(filepath.Join("testdata", name))
	require.NoError(t, err)
	return c
}

// byName finds a top-level or module item by name.
func byName(t *testing.T, c *ast.Crate, path ...string) ast.Item {
	t.Helper()
	ids := c.Items()
	var found ast.Item
	for i, name := range path {
		ok := false
		for _, id := range ids {
			it, _ := c.Item(id)
			if c.Symbol(it.Name) == name {
				found, ok = it, true
				break
			}
		}
		require.True(t, ok, "item %s not found", strings.Join(path[:i+1], "::"))
		if m, isMod := c.Mod(found); isMod {
			ids = m.Items
		}
	}
	return found
}

func TestLoad_SingleStatic(t *testing.T) {
	c := load(t, "single_static.yaml")

	assert.Equal(t, "single", c.Symbol(c.Name()))
	require.Len(t, c.Items(), 1)

	it := byName(t, c, "LIMIT")
	assert.Equal(t, ast.ItemStatic, it.Kind)
	st, ok := c.Static(it)
	require.True(t, ok)
	assert.False(t, st.Mutable)

	init, ok := c.Expr(st.Init.MustGet())
	require.True(t, ok)
	lit, ok := c.Lit(init)
	require.True(t, ok)
	assert.Equal(t, ast.LitInt, lit.Kind)
	assert.Equal(t, "10", c.Symbol(lit.Value))

	sp, ok := c.SpanOf(it.Span)
	require.True(t, ok)
	assert.Equal(t, "single.rs", sp.File)
	assert.Equal(t, 1, sp.Start.Line)
}

func TestLoad_DefaultsFromFileName(t *testing.T) {
	c := load(t, "nested_fn.yaml")
	outer := byName(t, c, "outer")
	inner := byName(t, c, "outer", "inner")

	assert.Equal(t, ast.ItemMod, outer.Kind)
	assert.Equal(t, ast.ItemFn, inner.Kind)
	assert.Equal(t, ast.Some(outer.ID), c.Parent(inner.ID))

	sp, _ := c.SpanOf(inner.Span)
	assert.Equal(t, filepath.Join("testdata", "nested_fn.yaml"), sp.File)
	assert.Equal(t, 2, sp.Start.Line)
}

func TestLoad_Shapes(t *testing.T) {
	c := load(t, "shapes.yaml")

	alloc := byName(t, c, "alloc")
	ext, ok := c.ExternCrate(alloc)
	require.True(t, ok)
	assert.Equal(t, "heap", c.Symbol(ext.Rename.MustGet()))

	fmtUse := byName(t, c, "fmt")
	use, ok := c.Use(fmtUse)
	require.True(t, ok)
	assert.Len(t, use.Path, 2)

	counter, ok := c.Static(byName(t, c, "COUNTER"))
	require.True(t, ok)
	assert.True(t, counter.Mutable)
	sum, _ := c.Expr(counter.Init.MustGet())
	bin, ok := c.Binary(sum)
	require.True(t, ok)
	assert.Equal(t, ast.BinAdd, bin.Op)

	point := byName(t, c, "Point")
	assert.Equal(t, ast.VisPublic, point.Vis)
	st, _ := c.Struct(point)
	require.Len(t, st.Fields, 2)
	x, _ := c.Field(st.Fields[0])
	assert.Equal(t, ast.VisPublic, x.Vis)
	assert.Equal(t, "x", c.Symbol(x.Name.MustGet()))

	shape := byName(t, c, "Shape")
	enum, _ := c.Enum(shape)
	require.Len(t, enum.Variants, 3)
	circle, _ := c.Variant(enum.Variants[0])
	square, _ := c.Variant(enum.Variants[1])
	empty, _ := c.Variant(enum.Variants[2])
	assert.Equal(t, ast.StructTuple, circle.Kind)
	assert.Equal(t, ast.StructNamed, square.Kind)
	assert.Equal(t, ast.StructUnit, empty.Kind)
	assert.True(t, square.Discriminant.IsSome())
	assert.True(t, circle.Discriminant.IsNone())

	circleField, _ := c.Field(circle.Fields[0])
	assert.True(t, circleField.Name.IsNone())
	assert.Equal(t, ast.Some(byNameID(c, point)), c.TyDef(circleField.Ty), "Point resolves to the struct")

	area := byName(t, c, "area")
	sp, _ := c.SpanOf(area.Span)
	assert.Equal(t, 20, sp.Start.Line)
	fn, ok := c.Fn(area)
	require.True(t, ok)
	body, _ := c.Body(fn.Body.MustGet())
	require.Len(t, body.Stmts, 4)
	kinds := make([]ast.StmtKind, 0, 4)
	for _, sid := range body.Stmts {
		s, _ := c.Stmt(sid)
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []ast.StmtKind{ast.StmtLet, ast.StmtItem, ast.StmtExpr, ast.StmtLet}, kinds)
	assert.True(t, body.Expr.IsSome())

	param, _ := c.Ty(fn.Params[0].Ty.MustGet())
	assert.Equal(t, ast.TyRef, param.Kind)
	assert.False(t, param.Mutable)
	assert.Equal(t, ast.Some(byNameID(c, shape)), c.TyDef(param.Args[0]))
}

func TestLoad_ModuleScopedTypes(t *testing.T) {
	c := load(t, "shapes.yaml")
	alias := byName(t, c, "outer", "Alias")
	local := byName(t, c, "outer", "Local")
	inner := byName(t, c, "outer", "inner")

	aliasItem, _ := c.TypeAlias(alias)
	assert.Equal(t, ast.Some(byNameID(c, byName(t, c, "Point"))), c.TyDef(aliasItem.Ty.MustGet()),
		"outer scope is searched after the module")

	fn, _ := c.Fn(inner)
	require.Len(t, fn.Params, 2)

	ref, _ := c.Ty(fn.Params[0].Ty.MustGet())
	assert.Equal(t, ast.TyRef, ref.Kind)
	assert.True(t, ref.Mutable)
	slice, _ := c.Ty(ref.Args[0])
	assert.Equal(t, ast.TySlice, slice.Kind)
	assert.Equal(t, ast.Some(byNameID(c, alias)), c.TyDef(slice.Args[0]))

	tuple, _ := c.Ty(fn.Params[1].Ty.MustGet())
	assert.Equal(t, ast.TyTuple, tuple.Kind)
	require.Len(t, tuple.Args, 2)
	assert.Equal(t, ast.Some(byNameID(c, local)), c.TyDef(tuple.Args[0]))
	vec, _ := c.Ty(tuple.Args[1])
	require.Len(t, vec.Args, 1)
	assert.True(t, c.TyDef(tuple.Args[1]).IsNone(), "Vec is not defined in the crate")
	assert.Equal(t, ast.Some(byNameID(c, local)), c.TyDef(vec.Args[0]))

	never, _ := c.Ty(fn.Return.MustGet())
	assert.Equal(t, ast.TyNever, never.Kind)
}

func TestParse_LocalItemsDoNotResolve(t *testing.T) {
	const src = `
items:
  - kind: fn
    name: f
    body:
      stmts:
        - item: {kind: struct, name: Hidden, shape: unit}
  - kind: static
    name: S
    type: Hidden
`
	c, err := Parse([]byte(src), "local.yaml")
	require.NoError(t, err)
	assert.Equal(t, "local", c.Symbol(c.Name()))

	st, ok := c.Static(byName(t, c, "S"))
	require.True(t, ok)
	assert.True(t, c.TyDef(st.Ty).IsNone())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"empty", "", "empty fixture"},
		{"unknown key", "crate: x\nitemz: []\n", "field itemz not found"},
		{"unknown kind", "items: [{kind: trait, name: T}]\n", `items[0]: unknown item kind "trait"`},
		{"missing kind", "items: [{name: T}]\n", "has no kind"},
		{"missing name", "items: [{kind: fn}]\n", "fn item has no name"},
		{"two expression kinds", "items: [{kind: const, name: C, type: u8, init: {path: a, lit: {kind: int, value: '1'}}}]\n", "exactly one kind, got 2"},
		{"empty statement", "items: [{kind: fn, name: f, body: {stmts: [{}]}}]\n", "exactly one of let, item, expr"},
		{"bad type", "items: [{kind: static, name: S, type: '[u8'}]\n", "unterminated slice"},
		{"bad operator", "items: [{kind: const, name: C, type: u8, init: {binary: {op: '**', lhs: {path: a}, rhs: {path: b}}}}]\n", `unknown binary operator "**"`},
		{"missing operand", "items: [{kind: const, name: C, type: u8, init: {unary: {op: '-'}}}]\n", "unary operand is missing"},
		{"bad visibility", "items: [{kind: struct, name: S, vis: public}]\n", `unknown visibility "public"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), "bad.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, strings.HasPrefix(err.Error(), "bad.yaml: "), err.Error())

			var pe *ParseError
			assert.ErrorAs(t, err, &pe)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.yaml"))
	assert.Error(t, err)
}

func byNameID(c *ast.Crate, it ast.Item) ast.ItemID {
	var walk func(ids []ast.ItemID) ast.ItemID
	walk = func(ids []ast.ItemID) ast.ItemID {
		for _, id := range ids {
			cur, _ := c.Item(id)
			if cur.ID == it.ID {
				return id
			}
			if m, ok := c.Mod(cur); ok {
				if found := walk(m.Items); found.IsValid() {
					return found
				}
			}
		}
		return ast.NoItemID
	}
	return walk(c.Items())
}
