package lint

import "github.com/leapstack-labs/leaplint/pkg/ast"

// InterfaceVersion identifies the AST layout and callback set this package
// describes. Every plugin exports a copy of it; the host refuses to call into
// a plugin whose copy differs.
const InterfaceVersion = "leaplint-ast/v1"

// Symbols every plugin library exports.
const (
	// VersionSymbol names the exported `var InterfaceVersion string`.
	VersionSymbol = "InterfaceVersion"
	// EntryPointSymbol names the exported `func LintPlugin() lint.Export`.
	EntryPointSymbol = "LintPlugin"
)

// Export is what a plugin entry point returns: the pass instance and every
// lint it may emit.
type Export struct {
	Name  string
	Pass  LintPass
	Lints []*Lint
}

// EntryPoint is the signature of a plugin's LintPlugin function.
type EntryPoint = func() Export

// LintPass is a plugin's analysis logic. A pass opts into node kinds by
// implementing the matching Check* interface below; anything it does not
// implement is skipped for it.
type LintPass interface {
	Name() string
}

// CrateChecker is called once, before any item.
type CrateChecker interface {
	CheckCrate(cx AstContext, crate *ast.Crate)
}

// ItemChecker is called for every item before its kind-specific callback.
type ItemChecker interface {
	CheckItem(cx AstContext, item ast.Item)
}

// ModChecker is called for inline modules, before their members.
type ModChecker interface {
	CheckMod(cx AstContext, item ast.Item, mod ast.ModItem)
}

// ExternCrateChecker is called for extern crate declarations.
type ExternCrateChecker interface {
	CheckExternCrate(cx AstContext, item ast.Item, ext ast.ExternCrateItem)
}

// UseDeclChecker is called for use declarations.
type UseDeclChecker interface {
	CheckUseDecl(cx AstContext, item ast.Item, use ast.UseItem)
}

// StaticItemChecker is called for statics, before their initializer.
type StaticItemChecker interface {
	CheckStaticItem(cx AstContext, item ast.Item, static ast.StaticItem)
}

// ConstItemChecker is called for constants, before their initializer.
type ConstItemChecker interface {
	CheckConstItem(cx AstContext, item ast.Item, konst ast.ConstItem)
}

// FnChecker is called for functions, before their body.
type FnChecker interface {
	CheckFn(cx AstContext, item ast.Item, fn ast.FnItem)
}

// StructChecker is called before CheckField for the struct's fields.
type StructChecker interface {
	CheckStruct(cx AstContext, item ast.Item, strukt ast.StructItem)
}

// EnumChecker is called before CheckVariant for the enum's variants.
type EnumChecker interface {
	CheckEnum(cx AstContext, item ast.Item, enum ast.EnumItem)
}

// FieldChecker is called for struct and variant fields.
type FieldChecker interface {
	CheckField(cx AstContext, field ast.Field)
}

// VariantChecker is called for enum variants, before their fields.
type VariantChecker interface {
	CheckVariant(cx AstContext, variant ast.Variant)
}

// StmtChecker is called for statements, before their expressions.
type StmtChecker interface {
	CheckStmt(cx AstContext, stmt ast.Stmt)
}

// ExprChecker is called for expressions, before their operands.
type ExprChecker interface {
	CheckExpr(cx AstContext, expr ast.Expr)
}

// DiagnosticSource is implemented by passes that hand their findings back to
// the host once the walk is done.
type DiagnosticSource interface {
	Diagnostics() []Diagnostic
}
