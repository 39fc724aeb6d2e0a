package plugin

import (
	"fmt"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/ast"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// Entry is one loaded plugin. Entries are not modified after registration.
type Entry struct {
	Name  string
	Path  string
	Pass  lint.LintPass
	Lints []*lint.Lint
}

// Registry holds the plugins of one run in load order.
type Registry struct {
	entries []*Entry

	// lints is the deduplicated union of declared lints, in load order
	lints []*lint.Lint

	// byID maps lint identifiers to their descriptor
	byID map[string]*lint.Lint

	// owner maps lint identifiers to the declaring plugin
	owner map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:  make(map[string]*lint.Lint),
		owner: make(map[string]string),
	}
}

// Register adds a plugin after the ones already registered. It fails without
// modifying the registry if the plugin name is taken or any of its lint
// identifiers is already declared by an earlier plugin, even through the same
// descriptor. A plugin listing one descriptor twice is not an error.
func (r *Registry) Register(e Entry) error {
	spec := Spec{Name: e.Name, Path: e.Path}
	if e.Pass == nil {
		return newError(PluginLibraryInvalid, spec, "no lint pass")
	}
	for _, existing := range r.entries {
		if existing.Name == e.Name {
			return newError(PluginLibraryInvalid, spec, "plugin %q already loaded from %s", e.Name, existing.Path)
		}
	}

	pending := make(map[string]*lint.Lint, len(e.Lints))
	lints := make([]*lint.Lint, 0, len(e.Lints))
	for i, l := range e.Lints {
		if l == nil {
			return newError(PluginLibraryInvalid, spec, "lint %d is nil", i)
		}
		id := l.Name()
		if _, ok := r.byID[id]; ok {
			return &LoadError{
				Kind:   DuplicateLintID,
				Plugin: e.Name,
				Path:   e.Path,
				Err:    fmt.Errorf("lint %s already declared by plugin %s", id, r.owner[id]),
			}
		}
		if prev, ok := pending[id]; ok {
			if prev != l {
				return &LoadError{
					Kind:   DuplicateLintID,
					Plugin: e.Name,
					Path:   e.Path,
					Err:    fmt.Errorf("lint %s declared twice", id),
				}
			}
			continue
		}
		pending[id] = l
		lints = append(lints, l)
	}

	for _, l := range lints {
		r.byID[l.Name()] = l
		r.owner[l.Name()] = e.Name
		r.lints = append(r.lints, l)
	}
	e.Lints = lints
	r.entries = append(r.entries, &e)
	return nil
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Plugins returns the registered plugins in load order.
func (r *Registry) Plugins() []Entry {
	out := make([]Entry, len(r.entries))
	for i, e := range r.entries {
		out[i] = *e
		out[i].Lints = slices.Clone(e.Lints)
	}
	return out
}

// RegisteredLints returns every declared lint exactly once, in load order.
func (r *Registry) RegisteredLints() []*lint.Lint {
	return slices.Clone(r.lints)
}

// Lookup finds a lint by identifier.
func (r *Registry) Lookup(id string) (*lint.Lint, bool) {
	l, ok := r.byID[id]
	return l, ok
}

// Owner returns the name of the plugin that declared a lint.
func (r *Registry) Owner(id string) (string, bool) {
	name, ok := r.owner[id]
	return name, ok
}

// LintInfos returns tooling metadata for every lint, sorted by identifier.
func (r *Registry) LintInfos() []lint.LintInfo {
	infos := make([]lint.LintInfo, 0, len(r.lints))
	for _, l := range r.lints {
		info := l.Info()
		info.Plugin = r.owner[l.Name()]
		infos = append(infos, info)
	}
	slices.SortFunc(infos, func(a, b lint.LintInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return infos
}

// dispatch calls fn on every pass that implements C, in load order. Passes
// that do not implement C are skipped. A panic stops the dispatch and comes
// back as a DispatchFault.
func dispatch[C any](r *Registry, callback string, fn func(C)) error {
	for _, e := range r.entries {
		c, ok := e.Pass.(C)
		if !ok {
			continue
		}
		if err := invoke(e, callback, func() { fn(c) }); err != nil {
			return err
		}
	}
	return nil
}

func invoke(e *Entry, callback string, call func()) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &LoadError{
				Kind:     DispatchFault,
				Plugin:   e.Name,
				Path:     e.Path,
				Callback: callback,
				Err:      fmt.Errorf("panic: %v\n%s", v, debug.Stack()),
			}
		}
	}()
	call()
	return nil
}

// CheckCrate dispatches lint.CrateChecker.
func (r *Registry) CheckCrate(cx lint.AstContext, c *ast.Crate) error {
	return dispatch(r, "CheckCrate", func(p lint.CrateChecker) { p.CheckCrate(cx, c) })
}

// CheckItem dispatches lint.ItemChecker.
func (r *Registry) CheckItem(cx lint.AstContext, it ast.Item) error {
	return dispatch(r, "CheckItem", func(p lint.ItemChecker) { p.CheckItem(cx, it) })
}

// CheckMod dispatches lint.ModChecker.
func (r *Registry) CheckMod(cx lint.AstContext, it ast.Item, x ast.ModItem) error {
	return dispatch(r, "CheckMod", func(p lint.ModChecker) { p.CheckMod(cx, it, x.Clone()) })
}

// CheckExternCrate dispatches lint.ExternCrateChecker.
func (r *Registry) CheckExternCrate(cx lint.AstContext, it ast.Item, x ast.ExternCrateItem) error {
	return dispatch(r, "CheckExternCrate", func(p lint.ExternCrateChecker) { p.CheckExternCrate(cx, it, x) })
}

// CheckUseDecl dispatches lint.UseDeclChecker.
func (r *Registry) CheckUseDecl(cx lint.AstContext, it ast.Item, x ast.UseItem) error {
	return dispatch(r, "CheckUseDecl", func(p lint.UseDeclChecker) { p.CheckUseDecl(cx, it, x.Clone()) })
}

// CheckStaticItem dispatches lint.StaticItemChecker.
func (r *Registry) CheckStaticItem(cx lint.AstContext, it ast.Item, x ast.StaticItem) error {
	return dispatch(r, "CheckStaticItem", func(p lint.StaticItemChecker) { p.CheckStaticItem(cx, it, x) })
}

// CheckConstItem dispatches lint.ConstItemChecker.
func (r *Registry) CheckConstItem(cx lint.AstContext, it ast.Item, x ast.ConstItem) error {
	return dispatch(r, "CheckConstItem", func(p lint.ConstItemChecker) { p.CheckConstItem(cx, it, x) })
}

// CheckFn dispatches lint.FnChecker.
func (r *Registry) CheckFn(cx lint.AstContext, it ast.Item, x ast.FnItem) error {
	return dispatch(r, "CheckFn", func(p lint.FnChecker) { p.CheckFn(cx, it, x.Clone()) })
}

// CheckStruct dispatches lint.StructChecker.
func (r *Registry) CheckStruct(cx lint.AstContext, it ast.Item, x ast.StructItem) error {
	return dispatch(r, "CheckStruct", func(p lint.StructChecker) { p.CheckStruct(cx, it, x.Clone()) })
}

// CheckEnum dispatches lint.EnumChecker.
func (r *Registry) CheckEnum(cx lint.AstContext, it ast.Item, x ast.EnumItem) error {
	return dispatch(r, "CheckEnum", func(p lint.EnumChecker) { p.CheckEnum(cx, it, x.Clone()) })
}

// CheckField dispatches lint.FieldChecker.
func (r *Registry) CheckField(cx lint.AstContext, f ast.Field) error {
	return dispatch(r, "CheckField", func(p lint.FieldChecker) { p.CheckField(cx, f) })
}

// CheckVariant dispatches lint.VariantChecker.
func (r *Registry) CheckVariant(cx lint.AstContext, v ast.Variant) error {
	return dispatch(r, "CheckVariant", func(p lint.VariantChecker) { p.CheckVariant(cx, v.Clone()) })
}

// CheckStmt dispatches lint.StmtChecker.
func (r *Registry) CheckStmt(cx lint.AstContext, s ast.Stmt) error {
	return dispatch(r, "CheckStmt", func(p lint.StmtChecker) { p.CheckStmt(cx, s) })
}

// CheckExpr dispatches lint.ExprChecker.
func (r *Registry) CheckExpr(cx lint.AstContext, e ast.Expr) error {
	return dispatch(r, "CheckExpr", func(p lint.ExprChecker) { p.CheckExpr(cx, e) })
}

// Diagnostics collects findings from every pass that reports them, in load
// order.
func (r *Registry) Diagnostics() ([]lint.Diagnostic, error) {
	var out []lint.Diagnostic
	err := dispatch(r, "Diagnostics", func(src lint.DiagnosticSource) {
		out = append(out, src.Diagnostics()...)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
