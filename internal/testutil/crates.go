package testutil

import (
	"github.com/leapstack-labs/leaplint/pkg/ast"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Sample is a crate built for tests, with its interesting items by name.
type Sample struct {
	Crate *ast.Crate
	Items map[string]ast.ItemID
}

// Item returns a named item header.
func (s Sample) Item(name string) ast.Item {
	it, _ := s.Crate.Item(s.Items[name])
	return it
}

// Node returns the identity token of a named item.
func (s Sample) Node(name string) ast.NodeID {
	return s.Item(name).ID
}

type spans struct {
	b    *ast.Builder
	file string
}

// at records a span of n bytes at line:col. Offsets assume 100-byte lines.
func (s spans) at(line, col, n int) ast.SpanID {
	off := (line-1)*100 + col - 1
	return s.b.Span(token.Span{
		File:  s.file,
		Start: token.Position{Line: line, Column: col, Offset: off},
		End:   token.Position{Line: line, Column: col + n, Offset: off + n},
	})
}

// StaticCrate builds a crate holding exactly one item:
//
//	static LIMIT: u32 = 10;
func StaticCrate() Sample {
	b := ast.NewBuilder("single")
	sp := spans{b: b, file: "single.rs"}

	ty := b.PathTy(sp.at(1, 15, 3), "u32")
	ten := b.Lit(sp.at(1, 21, 2), ast.LitInt, "10")
	limit := b.Static(ast.Header{Span: sp.at(1, 1, 23), Name: "LIMIT"}, ast.StaticItem{
		Ty:   ty,
		Init: ast.Some(ten),
	})

	return Sample{
		Crate: b.Finish(sp.at(1, 1, 23), limit),
		Items: map[string]ast.ItemID{"LIMIT": limit},
	}
}

// NestedFnCrate builds a module holding one function:
//
//	mod outer { fn inner() {} }
func NestedFnCrate() Sample {
	b := ast.NewBuilder("nested")
	sp := spans{b: b, file: "nested.rs"}

	body := b.Body(sp.at(1, 22, 2), nil, ast.None[ast.ExprID]())
	inner := b.Fn(ast.Header{Span: sp.at(1, 13, 11), Name: "inner"}, ast.FnItem{Body: ast.Some(body)})
	outer := b.Mod(ast.Header{Span: sp.at(1, 1, 25), Name: "outer"}, inner)

	return Sample{
		Crate: b.Finish(sp.at(1, 1, 25), outer),
		Items: map[string]ast.ItemID{"outer": outer, "inner": inner},
	}
}

// RichCrate builds a crate exercising every item, statement and expression
// kind:
//
//	extern crate alloc as heap;
//	use std::fmt;
//	const MAX: u32 = 8;
//	static mut COUNTER: u32 = MAX + 1;
//	pub struct Point { pub x: i32, y: i32 }
//	struct Pair(u8, u8);
//	enum Shape { Circle(Point), Square { side: u32 } = -1 }
//	fn area(s: Shape) -> u32 {
//	    let n: u32 = MAX else { return };
//	    fn helper() {}
//	    if n > 0 { tally(n) } else { return 0 };
//	    let f = |p| p.x;
//	    { n }
//	}
//	mod outer {
//	    type Alias = Point;
//	    fn inner() {}
//	}
//
// Items holds every item by name, including the local "helper".
func RichCrate() Sample {
	b := ast.NewBuilder("rich")
	sp := spans{b: b, file: "rich.rs"}
	items := make(map[string]ast.ItemID)
	none := ast.None[ast.ExprID]()

	items["alloc"] = b.ExternCrate(ast.Header{Span: sp.at(1, 1, 27), Name: "alloc"}, ast.ExternCrateItem{
		Crate:  b.Sym("alloc"),
		Rename: ast.Some(b.Sym("heap")),
	})
	items["fmt"] = b.Use(ast.Header{Span: sp.at(2, 1, 13), Name: "fmt"}, ast.UseItem{
		Path: []ast.SymbolID{b.Sym("std"), b.Sym("fmt")},
	})

	u32Ty := b.PathTy(sp.at(3, 12, 3), "u32")
	items["MAX"] = b.Const(ast.Header{Span: sp.at(3, 1, 19), Name: "MAX"}, ast.ConstItem{
		Ty:   u32Ty,
		Init: ast.Some(b.Lit(sp.at(3, 18, 1), ast.LitInt, "8")),
	})

	sum := b.Binary(sp.at(4, 27, 7), ast.BinaryExpr{
		Op:  ast.BinAdd,
		Lhs: b.PathExpr(sp.at(4, 27, 3), "MAX"),
		Rhs: b.Lit(sp.at(4, 33, 1), ast.LitInt, "1"),
	})
	items["COUNTER"] = b.Static(ast.Header{Span: sp.at(4, 1, 34), Name: "COUNTER"}, ast.StaticItem{
		Ty:      b.PathTy(sp.at(4, 21, 3), "u32"),
		Mutable: true,
		Init:    ast.Some(sum),
	})

	x := b.Field(sp.at(5, 20, 10), "x", ast.VisPublic, b.PathTy(sp.at(5, 27, 3), "i32"))
	y := b.Field(sp.at(5, 32, 6), "y", ast.VisPrivate, b.PathTy(sp.at(5, 35, 3), "i32"))
	items["Point"] = b.Struct(ast.Header{Span: sp.at(5, 1, 39), Name: "Point", Vis: ast.VisPublic}, ast.StructItem{
		Kind:   ast.StructNamed,
		Fields: []ast.FieldID{x, y},
	})

	p0 := b.Field(sp.at(6, 13, 2), "", ast.VisPrivate, b.PathTy(sp.at(6, 13, 2), "u8"))
	p1 := b.Field(sp.at(6, 17, 2), "", ast.VisPrivate, b.PathTy(sp.at(6, 17, 2), "u8"))
	items["Pair"] = b.Struct(ast.Header{Span: sp.at(6, 1, 20), Name: "Pair"}, ast.StructItem{
		Kind:   ast.StructTuple,
		Fields: []ast.FieldID{p0, p1},
	})

	pointTy := b.PathTy(sp.at(7, 21, 5), "Point")
	b.ResolveTy(pointTy, items["Point"])
	circle := b.Variant(sp.at(7, 14, 13), "Circle", ast.StructTuple,
		[]ast.FieldID{b.Field(sp.at(7, 21, 5), "", ast.VisPrivate, pointTy)}, none)
	neg := b.Unary(sp.at(7, 52, 2), ast.UnaryExpr{Op: ast.UnaryNeg, Operand: b.Lit(sp.at(7, 53, 1), ast.LitInt, "1")})
	square := b.Variant(sp.at(7, 29, 25), "Square", ast.StructNamed,
		[]ast.FieldID{b.Field(sp.at(7, 38, 9), "side", ast.VisPrivate, b.PathTy(sp.at(7, 44, 3), "u32"))}, ast.Some(neg))
	items["Shape"] = b.Enum(ast.Header{Span: sp.at(7, 1, 55), Name: "Shape"}, ast.EnumItem{
		Variants: []ast.VariantID{circle, square},
	})

	// fn area
	retEmpty := b.Return(sp.at(9, 29, 6), none)
	elseBlock := b.Block(sp.at(9, 27, 10), b.Body(sp.at(9, 27, 10), []ast.StmtID{b.ExprStmt(sp.at(9, 29, 6), retEmpty)}, none))
	letN := b.Let(sp.at(9, 5, 33), ast.LetStmt{
		Name: b.Sym("n"),
		Ty:   ast.Some(b.PathTy(sp.at(9, 12, 3), "u32")),
		Init: ast.Some(b.PathExpr(sp.at(9, 18, 3), "MAX")),
		Else: ast.Some(elseBlock),
	})

	helperBody := b.Body(sp.at(10, 17, 2), nil, none)
	items["helper"] = b.Fn(ast.Header{Span: sp.at(10, 5, 14), Name: "helper"}, ast.FnItem{Body: ast.Some(helperBody)})
	localItem := b.ItemStmt(sp.at(10, 5, 14), items["helper"])

	cond := b.Binary(sp.at(11, 8, 5), ast.BinaryExpr{
		Op:  ast.BinGt,
		Lhs: b.PathExpr(sp.at(11, 8, 1), "n"),
		Rhs: b.Lit(sp.at(11, 12, 1), ast.LitInt, "0"),
	})
	call := b.Call(sp.at(11, 16, 8), ast.CallExpr{
		Callee: b.PathExpr(sp.at(11, 16, 5), "tally"),
		Args:   []ast.ExprID{b.PathExpr(sp.at(11, 22, 1), "n")},
	})
	then := b.Body(sp.at(11, 14, 12), nil, ast.Some(call))
	ret0 := b.Return(sp.at(11, 35, 8), ast.Some(b.Lit(sp.at(11, 42, 1), ast.LitInt, "0")))
	elseExpr := b.Block(sp.at(11, 33, 12), b.Body(sp.at(11, 33, 12), nil, ast.Some(ret0)))
	ifExpr := b.If(sp.at(11, 5, 40), ast.IfExpr{Cond: cond, Then: then, Else: ast.Some(elseExpr)})
	ifStmt := b.ExprStmt(sp.at(11, 5, 41), ifExpr)

	closure := b.Closure(sp.at(12, 13, 7), ast.ClosureExpr{
		Params: []ast.Param{{Span: sp.at(12, 14, 1), Name: b.Sym("p")}},
		Body:   b.FieldAccess(sp.at(12, 17, 3), b.PathExpr(sp.at(12, 17, 1), "p"), "x"),
	})
	letF := b.Let(sp.at(12, 5, 16), ast.LetStmt{Name: b.Sym("f"), Init: ast.Some(closure)})

	tail := b.Block(sp.at(13, 5, 5), b.Body(sp.at(13, 5, 5), nil, ast.Some(b.PathExpr(sp.at(13, 7, 1), "n"))))
	areaBody := b.Body(sp.at(8, 26, 100), []ast.StmtID{letN, localItem, ifStmt, letF}, ast.Some(tail))

	shapeTy := b.PathTy(sp.at(8, 12, 5), "Shape")
	b.ResolveTy(shapeTy, items["Shape"])
	items["area"] = b.Fn(ast.Header{Span: sp.at(8, 1, 120), Name: "area"}, ast.FnItem{
		Params: []ast.Param{{Span: sp.at(8, 9, 8), Name: b.Sym("s"), Ty: ast.Some(shapeTy)}},
		Return: ast.Some(b.PathTy(sp.at(8, 22, 3), "u32")),
		Body:   ast.Some(areaBody),
	})

	aliasTy := b.PathTy(sp.at(15, 18, 5), "Point")
	b.ResolveTy(aliasTy, items["Point"])
	items["Alias"] = b.TypeAlias(ast.Header{Span: sp.at(15, 5, 19), Name: "Alias"}, ast.TypeAliasItem{Ty: ast.Some(aliasTy)})
	innerBody := b.Body(sp.at(16, 16, 2), nil, none)
	items["inner"] = b.Fn(ast.Header{Span: sp.at(16, 5, 13), Name: "inner"}, ast.FnItem{Body: ast.Some(innerBody)})
	items["outer"] = b.Mod(ast.Header{Span: sp.at(14, 1, 60), Name: "outer"}, items["Alias"], items["inner"])

	crate := b.Finish(sp.at(1, 1, 1700),
		items["alloc"], items["fmt"], items["MAX"], items["COUNTER"],
		items["Point"], items["Pair"], items["Shape"], items["area"], items["outer"])

	return Sample{Crate: crate, Items: items}
}
