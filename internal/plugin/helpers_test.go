package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leaplint/pkg/ast"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/token"
	"github.com/stretchr/testify/require"
)

// fakeLibrary serves symbols from a map.
type fakeLibrary map[string]any

func (l fakeLibrary) Lookup(symbol string) (any, error) {
	v, ok := l[symbol]
	if !ok {
		return nil, fmt.Errorf("plugin: symbol %s not found", symbol)
	}
	return v, nil
}

// fakeOpener serves libraries by path and remembers what it opened.
type fakeOpener struct {
	libs   map[string]Library
	opened []string
}

func newFakeOpener() *fakeOpener {
	return &fakeOpener{libs: make(map[string]Library)}
}

func (o *fakeOpener) Open(path string) (Library, error) {
	o.opened = append(o.opened, path)
	lib, ok := o.libs[path]
	if !ok {
		return nil, fmt.Errorf("plugin.Open(%q): not a plugin", path)
	}
	return lib, nil
}

// add writes a placeholder file for the library and returns its spec.
func (o *fakeOpener) add(t *testing.T, name string, lib Library) Spec {
	t.Helper()
	path := filepath.Join(t.TempDir(), name+".so")
	require.NoError(t, os.WriteFile(path, []byte("not really elf"), 0o600))
	o.libs[path] = lib
	return Spec{Name: name, Path: path}
}

// library builds a well-formed library around an entry point.
func library(entry func() lint.Export) fakeLibrary {
	version := lint.InterfaceVersion
	return fakeLibrary{
		lint.VersionSymbol:    &version,
		lint.EntryPointSymbol: entry,
	}
}

// countingEntry wraps an export and counts entry point calls.
func countingEntry(export lint.Export, calls *int) func() lint.Export {
	return func() lint.Export {
		*calls++
		return export
	}
}

// warnAll raises every lint to Warn.
type warnAll struct{}

func (warnAll) RunID() string                             { return "test" }
func (warnAll) Crate() *ast.Crate                         { return nil }
func (warnAll) Symbol(ast.SymbolID) string                { return "" }
func (warnAll) Span(ast.SpanID) (token.Span, bool)        { return token.Span{}, false }
func (warnAll) Parent(ast.NodeID) ast.Option[ast.NodeID]  { return ast.None[ast.NodeID]() }
func (warnAll) ResolveTy(ast.TyID) ast.Option[ast.ItemID] { return ast.None[ast.ItemID]() }
func (warnAll) LintLevel(*lint.Lint) lint.Level           { return lint.Warn }
func (warnAll) LintOptions(*lint.Lint) lint.Options       { return lint.Options{} }
