package fixture

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/ast"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Build converts a decoded fixture into a crate. Path types naming a struct,
// enum or type alias of the fixture are resolved to that item.
func Build(f *File) (*ast.Crate, error) {
	c := &converter{
		b:     ast.NewBuilder(f.Crate),
		file:  f.File,
		names: make(map[string]ast.ItemID),
	}
	start := c.span(1, 1)
	items, err := c.items(f.Items, "items", true)
	if err != nil {
		return nil, err
	}
	c.resolve()
	return c.b.Finish(start, items...), nil
}

type pendingTy struct {
	ty    ast.TyID
	path  string
	scope []string
}

type converter struct {
	b    *ast.Builder
	file string
	line int
	col  int

	// names maps module-qualified item names ("outer::Point") to items
	names   map[string]ast.ItemID
	pending []pendingTy
	scope   []string
}

// next moves the cursor to line, or to the next line when line is 0.
func (c *converter) next(line int) int {
	if line > 0 {
		c.line = line
	} else {
		c.line++
	}
	c.col = 1
	return c.line
}

func (c *converter) span(line, col int) ast.SpanID {
	off := (line-1)*120 + col - 1
	return c.b.Span(token.Span{
		File:  c.file,
		Start: token.Position{Line: line, Column: col, Offset: off},
		End:   token.Position{Line: line, Column: col + 1, Offset: off + 1},
	})
}

// here returns a span at the cursor and advances the column.
func (c *converter) here() ast.SpanID {
	sp := c.span(max(c.line, 1), c.col)
	c.col += 2
	return sp
}

func (c *converter) items(specs []Item, where string, register bool) ([]ast.ItemID, error) {
	out := make([]ast.ItemID, 0, len(specs))
	for i := range specs {
		id, err := c.item(&specs[i], register)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", where, i, err)
		}
		out = append(out, id)
	}
	return out, nil
}

func visibility(s string) (ast.Visibility, error) {
	switch s {
	case "", "private":
		return ast.VisPrivate, nil
	case "pub":
		return ast.VisPublic, nil
	case "crate", "pub(crate)":
		return ast.VisCrate, nil
	}
	return 0, fmt.Errorf("unknown visibility %q", s)
}

func structKind(s string) (ast.StructKind, error) {
	switch s {
	case "", "named":
		return ast.StructNamed, nil
	case "tuple":
		return ast.StructTuple, nil
	case "unit":
		return ast.StructUnit, nil
	}
	return 0, fmt.Errorf("unknown struct shape %q", s)
}

// item builds one item. Structs, enums and type aliases outside function
// bodies are registered for type resolution.
func (c *converter) item(it *Item, register bool) (ast.ItemID, error) {
	if it.Name == "" && it.Kind != "use" {
		return 0, fmt.Errorf("%s item has no name", it.Kind)
	}
	vis, err := visibility(it.Vis)
	if err != nil {
		return 0, err
	}
	h := ast.Header{Span: c.span(c.next(it.Line), 1), Name: it.Name, Vis: vis}

	var id ast.ItemID
	switch it.Kind {
	case "mod":
		c.scope = append(c.scope, it.Name)
		children, err := c.items(it.Items, it.Name, register)
		c.scope = c.scope[:len(c.scope)-1]
		if err != nil {
			return 0, err
		}
		id = c.b.Mod(h, children...)

	case "extern crate":
		crate := it.Crate
		if crate == "" {
			crate = it.Name
		}
		id = c.b.ExternCrate(h, ast.ExternCrateItem{Crate: c.b.Sym(crate), Rename: c.b.OptSym(it.Rename)})

	case "use":
		if it.Path == "" {
			return 0, fmt.Errorf("use item has no path")
		}
		segs := strings.Split(it.Path, "::")
		path := make([]ast.SymbolID, len(segs))
		for i, seg := range segs {
			path[i] = c.b.Sym(seg)
		}
		if h.Name == "" && !it.Glob {
			h.Name = segs[len(segs)-1]
		}
		id = c.b.Use(h, ast.UseItem{Path: path, Rename: c.b.OptSym(it.Rename), Glob: it.Glob})

	case "static":
		ty, err := c.ty(it.Type)
		if err != nil {
			return 0, err
		}
		init, err := c.optExpr(it.Init)
		if err != nil {
			return 0, err
		}
		id = c.b.Static(h, ast.StaticItem{Ty: ty, Mutable: it.Mutable, Init: init})

	case "const":
		ty, err := c.ty(it.Type)
		if err != nil {
			return 0, err
		}
		init, err := c.optExpr(it.Init)
		if err != nil {
			return 0, err
		}
		id = c.b.Const(h, ast.ConstItem{Ty: ty, Init: init})

	case "fn":
		fn, err := c.fn(it)
		if err != nil {
			return 0, fmt.Errorf("fn %s: %w", it.Name, err)
		}
		id = c.b.Fn(h, fn)

	case "struct":
		kind, err := structKind(it.Shape)
		if err != nil {
			return 0, err
		}
		fields, err := c.fields(it.Fields)
		if err != nil {
			return 0, fmt.Errorf("struct %s: %w", it.Name, err)
		}
		id = c.b.Struct(h, ast.StructItem{Kind: kind, Fields: fields})

	case "enum":
		variants := make([]ast.VariantID, 0, len(it.Variants))
		for i := range it.Variants {
			v, err := c.variant(&it.Variants[i])
			if err != nil {
				return 0, fmt.Errorf("enum %s: %w", it.Name, err)
			}
			variants = append(variants, v)
		}
		id = c.b.Enum(h, ast.EnumItem{Variants: variants})

	case "type":
		alias := ast.TypeAliasItem{}
		if it.Type != "" {
			ty, err := c.ty(it.Type)
			if err != nil {
				return 0, err
			}
			alias.Ty = ast.Some(ty)
		}
		id = c.b.TypeAlias(h, alias)

	case "":
		return 0, fmt.Errorf("item %q has no kind", it.Name)
	default:
		return 0, fmt.Errorf("unknown item kind %q", it.Kind)
	}

	if register && definesType(it.Kind) {
		c.names[strings.Join(append(c.scope[:len(c.scope):len(c.scope)], it.Name), "::")] = id
	}
	return id, nil
}

func definesType(kind string) bool {
	return kind == "struct" || kind == "enum" || kind == "type"
}

func (c *converter) fn(it *Item) (ast.FnItem, error) {
	params, err := c.params(it.Params)
	if err != nil {
		return ast.FnItem{}, err
	}
	fn := ast.FnItem{Params: params, Const: it.Const, Unsafe: it.Unsafe}
	if it.Returns != "" {
		ret, err := c.ty(it.Returns)
		if err != nil {
			return ast.FnItem{}, err
		}
		fn.Return = ast.Some(ret)
	}
	if it.Body != nil {
		body, err := c.body(it.Body)
		if err != nil {
			return ast.FnItem{}, err
		}
		fn.Body = ast.Some(body)
	}
	return fn, nil
}

func (c *converter) params(specs []Param) ([]ast.Param, error) {
	out := make([]ast.Param, 0, len(specs))
	for _, p := range specs {
		param := ast.Param{Span: c.here(), Name: c.b.Sym(p.Name)}
		if p.Type != "" {
			ty, err := c.ty(p.Type)
			if err != nil {
				return nil, fmt.Errorf("param %s: %w", p.Name, err)
			}
			param.Ty = ast.Some(ty)
		}
		out = append(out, param)
	}
	return out, nil
}

func (c *converter) fields(specs []Field) ([]ast.FieldID, error) {
	out := make([]ast.FieldID, 0, len(specs))
	for i, f := range specs {
		vis, err := visibility(f.Vis)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		ty, err := c.ty(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		out = append(out, c.b.Field(c.here(), f.Name, vis, ty))
	}
	return out, nil
}

func (c *converter) variant(v *Variant) (ast.VariantID, error) {
	if v.Name == "" {
		return 0, fmt.Errorf("variant has no name")
	}
	kind, err := structKind(v.Shape)
	if err != nil {
		return 0, err
	}
	if v.Shape == "" && len(v.Fields) > 0 && v.Fields[0].Name == "" {
		kind = ast.StructTuple
	}
	if v.Shape == "" && len(v.Fields) == 0 {
		kind = ast.StructUnit
	}
	sp := c.here()
	fields, err := c.fields(v.Fields)
	if err != nil {
		return 0, fmt.Errorf("variant %s: %w", v.Name, err)
	}
	disc, err := c.optExpr(v.Discriminant)
	if err != nil {
		return 0, fmt.Errorf("variant %s: %w", v.Name, err)
	}
	return c.b.Variant(sp, v.Name, kind, fields, disc), nil
}

func (c *converter) body(b *Body) (ast.BodyID, error) {
	sp := c.here()
	stmts := make([]ast.StmtID, 0, len(b.Stmts))
	for i := range b.Stmts {
		s, err := c.stmt(&b.Stmts[i])
		if err != nil {
			return 0, fmt.Errorf("stmts[%d]: %w", i, err)
		}
		stmts = append(stmts, s)
	}
	tail, err := c.optExpr(b.Tail)
	if err != nil {
		return 0, fmt.Errorf("tail: %w", err)
	}
	return c.b.Body(sp, stmts, tail), nil
}

func (c *converter) stmt(s *Stmt) (ast.StmtID, error) {
	set := 0
	for _, ok := range []bool{s.Let != nil, s.Item != nil, s.Expr != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return 0, fmt.Errorf("statement must set exactly one of let, item, expr")
	}

	sp := c.span(c.next(s.Line), 1)
	c.col = 5
	switch {
	case s.Let != nil:
		let := ast.LetStmt{Name: c.b.Sym(s.Let.Name), Mutable: s.Let.Mutable}
		if s.Let.Type != "" {
			ty, err := c.ty(s.Let.Type)
			if err != nil {
				return 0, err
			}
			let.Ty = ast.Some(ty)
		}
		var err error
		if let.Init, err = c.optExpr(s.Let.Init); err != nil {
			return 0, err
		}
		if let.Else, err = c.optExpr(s.Let.Else); err != nil {
			return 0, err
		}
		return c.b.Let(sp, let), nil

	case s.Item != nil:
		saved := c.scope
		c.scope = nil
		it, err := c.item(s.Item, false)
		c.scope = saved
		if err != nil {
			return 0, err
		}
		return c.b.ItemStmt(sp, it), nil

	default:
		e, err := c.expr(s.Expr)
		if err != nil {
			return 0, err
		}
		return c.b.ExprStmt(sp, e), nil
	}
}
