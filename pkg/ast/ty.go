package ast

// TyKind tags a syntactic type.
type TyKind uint8

const (
	// TyPath is a named type such as `u32` or `std::vec::Vec<T>`. Args holds generic arguments.
	TyPath TyKind = iota + 1
	// TyRef is `&T` or `&mut T`; Args[0] is T.
	TyRef
	TyTuple
	TySlice
	TyNever
	TyInfer
)

// Ty is a syntactic type. The item a path resolves to is looked up with
// Crate.TyDef or the analysis context, never stored here.
type Ty struct {
	ID      TyID
	Kind    TyKind
	Span    SpanID
	Mutable bool
	Path    []SymbolID
	Args    []TyID
}
