package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leaplint/internal/plugin"
	"github.com/leapstack-labs/leaplint/internal/testlint"
	"github.com/leapstack-labs/leaplint/internal/testutil"
	"github.com/leapstack-labs/leaplint/pkg/ast"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted emits a fixed list of diagnostics.
type scripted struct {
	diags []lint.Diagnostic
}

func (*scripted) Name() string                     { return "scripted" }
func (s *scripted) Diagnostics() []lint.Diagnostic { return s.diags }

func registry(t *testing.T, exports ...lint.Export) *plugin.Registry {
	t.Helper()
	r := plugin.NewRegistry()
	for _, e := range exports {
		require.NoError(t, r.Register(plugin.Entry{Name: e.Name, Pass: e.Pass, Lints: e.Lints}))
	}
	return r
}

func TestRun_TestLintAllowedByDefault(t *testing.T) {
	s := testutil.StaticCrate()
	export := testlint.Export()
	e, err := New(Config{Registry: registry(t, export), Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)

	res, err := e.Run(context.Background(), s.Crate)
	require.NoError(t, err)

	assert.Empty(t, res.Diagnostics)
	assert.False(t, res.Failed())
	assert.Equal(t, "single", res.Crate)
	assert.Equal(t, 3, res.Visited(), "crate, static and its initializer")
	assert.Len(t, export.Pass.(*testlint.Pass).Items, 1)
}

func TestRun_RecordsBuildFlags(t *testing.T) {
	flags := []string{"--cfg", "test"}
	e, err := New(Config{
		Environment: plugin.Environment{BuildFlags: flags},
		Registry:    registry(t, testlint.Export()),
	})
	require.NoError(t, err)
	flags[0] = "changed"

	res, err := e.Run(context.Background(), testutil.StaticCrate().Crate)
	require.NoError(t, err)
	assert.Equal(t, []string{"--cfg", "test"}, res.BuildFlags)
}

func TestRun_RaisedLevel(t *testing.T) {
	s := testutil.StaticCrate()
	e, err := New(Config{
		Registry: registry(t, testlint.Export()),
		Levels:   lint.NewLevelConfig().SetLevel("TEST_LINT", lint.Deny),
		Logger:   testutil.NewTestLogger(t),
	})
	require.NoError(t, err)

	res, err := e.Run(context.Background(), s.Crate)
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 1)

	d := res.Diagnostics[0]
	assert.Equal(t, "TEST_LINT", d.Lint)
	assert.Equal(t, testlint.PluginName, d.Plugin)
	assert.Equal(t, lint.Deny, d.Level)
	assert.Equal(t, "static item `LIMIT`", d.Message)
	assert.Equal(t, "single.rs:1:1", d.Span.String())
	assert.Equal(t, s.Node("LIMIT"), d.Node)
	assert.Equal(t, []string{"declared in single.rs"}, d.Notes)
	assert.True(t, res.Failed())
	assert.Equal(t, 1, res.Count(lint.Deny))
	assert.NotEmpty(t, res.RunID)
}

func TestRun_TestLintMaxReports(t *testing.T) {
	b := ast.NewBuilder("pair")
	var items []ast.ItemID
	for _, name := range []string{"A", "B"} {
		items = append(items, b.Static(ast.Header{Name: name}, ast.StaticItem{Ty: b.PathTy(ast.NoSpanID, "u8")}))
	}
	crate := b.Finish(ast.NoSpanID, items...)

	tests := []struct {
		name  string
		limit any
		want  int
	}{
		{name: "unset", want: 2},
		{name: "capped", limit: 1, want: 1},
		{name: "from json", limit: float64(1), want: 1},
		{name: "zero", limit: 0, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := map[string]lint.Options{}
			if tt.limit != nil {
				opts["TEST_LINT"] = lint.Options{testlint.MaxReportsOption: tt.limit}
			}
			e, err := New(Config{
				Registry: registry(t, testlint.Export()),
				Levels:   lint.NewLevelConfig().SetLevel("TEST_LINT", lint.Warn),
				Options:  opts,
			})
			require.NoError(t, err)

			res, err := e.Run(context.Background(), crate)
			require.NoError(t, err)
			assert.Len(t, res.Diagnostics, tt.want)
		})
	}
}

func TestRun_RelevelsAndSorts(t *testing.T) {
	s := testutil.RichCrate()
	loud := lint.Declare("LOUD", lint.Warn, "")
	quiet := lint.Declare("QUIET", lint.Warn, "")
	stray := lint.Declare("STRAY", lint.Deny, "")

	point, shape := s.Item("Point"), s.Item("Shape")
	pass := &scripted{diags: []lint.Diagnostic{
		{Lint: loud, Level: lint.Allow, Message: "shape", Span: shape.Span, Node: shape.ID},
		{Lint: loud, Level: lint.Forbid, Message: "point", Span: point.Span, Node: point.ID},
		{Lint: quiet, Level: lint.Deny, Message: "silenced", Span: point.Span},
		{Lint: stray, Level: lint.Deny, Message: "undeclared"},
		{Message: "no lint"},
	}}

	logger, logs := testutil.NewCapturingLogger()
	e, err := New(Config{
		Registry: registry(t, lint.Export{Name: "scripted", Pass: pass, Lints: []*lint.Lint{loud, quiet}}),
		Levels:   lint.NewLevelConfig().Allow("QUIET"),
		Logger:   logger,
	})
	require.NoError(t, err)

	res, err := e.Run(context.Background(), s.Crate)
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 2)

	assert.Equal(t, "point", res.Diagnostics[0].Message)
	assert.Equal(t, "shape", res.Diagnostics[1].Message)
	for _, d := range res.Diagnostics {
		assert.Equal(t, lint.Warn, d.Level, "host level wins over what the plugin set")
	}
	assert.False(t, res.Failed())
	assert.Contains(t, logs.String(), "dropping diagnostic for undeclared lint")
	assert.Contains(t, logs.String(), "dropping diagnostic without lint")
}

func TestRun_OnlyOnce(t *testing.T) {
	e, err := New(Config{Registry: registry(t, testlint.Export())})
	require.NoError(t, err)

	_, err = e.Run(context.Background(), testutil.StaticCrate().Crate)
	require.NoError(t, err)

	_, err = e.Run(context.Background(), testutil.StaticCrate().Crate)
	assert.ErrorIs(t, err, ErrAlreadyRan)
}

func TestRun_DispatchFault(t *testing.T) {
	log := &testlint.Log{}
	e, err := New(Config{Registry: registry(t, testlint.NewRecorder("bad", log).PanicOn("CheckItem").Export())})
	require.NoError(t, err)

	res, err := e.Run(context.Background(), testutil.NestedFnCrate().Crate)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, plugin.ErrDispatchFault)

	kind, ok := plugin.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, plugin.DispatchFault, kind)
}

func TestRun_CancelledContext(t *testing.T) {
	e, err := New(Config{Registry: registry(t, testlint.Export())})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Run(ctx, testutil.StaticCrate().Crate)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_LoadFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.so")
	e, err := New(Config{Environment: plugin.Environment{Plugins: []plugin.Spec{{Path: missing}}}})
	require.Error(t, err)
	assert.Nil(t, e)
	assert.ErrorIs(t, err, plugin.ErrPluginNotFound)
}

type mapLibrary map[string]any

func (l mapLibrary) Lookup(symbol string) (any, error) {
	if v, ok := l[symbol]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("symbol %s not found", symbol)
}

func TestNew_LoadsThroughOpener(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testlint.so")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	version := lint.InterfaceVersion
	opener := plugin.OpenerFunc(func(string) (plugin.Library, error) {
		return mapLibrary{lint.VersionSymbol: &version, lint.EntryPointSymbol: testlint.Export}, nil
	})

	logger, logs := testutil.NewCapturingLogger()
	e, err := New(Config{
		Environment: plugin.Environment{Plugins: []plugin.Spec{{Name: "testlint", Path: path}}},
		Levels:      lint.NewLevelConfig().SetLevel("NOT_A_LINT", lint.Deny),
		Opener:      opener,
		Logger:      logger,
	})
	require.NoError(t, err)

	infos := e.Lints()
	require.Len(t, infos, 1)
	assert.Equal(t, "TEST_LINT", infos[0].ID)
	assert.Equal(t, 1, e.Registry().Len())
	assert.Contains(t, logs.String(), "level configured for unknown lint")
	assert.Contains(t, logs.String(), "NOT_A_LINT")
}

func TestSortDiagnostics(t *testing.T) {
	at := func(file string, off int, id string) Diagnostic {
		d := Diagnostic{Lint: id}
		d.Span.File = file
		d.Span.Start.Offset = off
		return d
	}
	diags := []Diagnostic{at("b.rs", 1, "A"), at("a.rs", 9, "B"), at("a.rs", 9, "A"), at("a.rs", 2, "Z")}
	sortDiagnostics(diags)

	var got []string
	for _, d := range diags {
		got = append(got, fmt.Sprintf("%s@%d/%s", d.Span.File, d.Span.Start.Offset, d.Lint))
	}
	assert.Equal(t, []string{"a.rs@2/Z", "a.rs@9/A", "a.rs@9/B", "b.rs@1/A"}, got)
}
