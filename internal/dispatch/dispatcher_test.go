package dispatch

import (
	"slices"
	"testing"

	"github.com/leapstack-labs/leaplint/internal/plugin"
	"github.com/leapstack-labs/leaplint/internal/session"
	"github.com/leapstack-labs/leaplint/internal/testlint"
	"github.com/leapstack-labs/leaplint/internal/testutil"
	"github.com/leapstack-labs/leaplint/pkg/ast"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// generic lists the callbacks every walked node receives exactly one of.
var generic = []string{"CheckCrate", "CheckItem", "CheckField", "CheckVariant", "CheckStmt", "CheckExpr"}

func newRegistry(t *testing.T, exports ...lint.Export) *plugin.Registry {
	t.Helper()
	r := plugin.NewRegistry()
	for _, e := range exports {
		require.NoError(t, r.Register(plugin.Entry{Name: e.Name, Pass: e.Pass, Lints: e.Lints}))
	}
	return r
}

func run(t *testing.T, r *plugin.Registry, s testutil.Sample) (Stats, error) {
	t.Helper()
	cx := session.New(s.Crate, session.Config{RunID: t.Name()})
	return New(r, testutil.NewTestLogger(t)).ProcessCrate(cx, s.Crate)
}

// reachable lists every node the walk must visit: everything except bodies
// and whatever sits inside a local item.
func reachable(s testutil.Sample, local ast.NodeID) []ast.NodeID {
	c := s.Crate
	bodies := make(map[ast.NodeID]bool)
	for id := ast.BodyID(1); ; id++ {
		b, ok := c.Body(id)
		if !ok {
			break
		}
		bodies[b.ID] = true
	}

	var out []ast.NodeID
	for id := ast.NodeID(1); int(id) <= c.NodeCount(); id++ {
		if bodies[id] || underNode(c, id, local) {
			continue
		}
		out = append(out, id)
	}
	return out
}

func underNode(c *ast.Crate, id, ancestor ast.NodeID) bool {
	for cur := ast.Some(id); cur.IsSome(); cur = c.Parent(cur.MustGet()) {
		if cur.MustGet() == ancestor {
			return true
		}
	}
	return false
}

func genericNodes(log *testlint.Log, name string) []ast.NodeID {
	var out []ast.NodeID
	for _, e := range log.Events {
		if e.Plugin == name && slices.Contains(generic, e.Callback) {
			out = append(out, e.Node)
		}
	}
	return out
}

func TestProcessCrate_VisitsEveryNodeOnce(t *testing.T) {
	s := testutil.RichCrate()
	log := &testlint.Log{}
	r := newRegistry(t,
		testlint.NewRecorder("one", log).Export(),
		testlint.NewRecorder("two", log).Export())

	stats, err := run(t, r, s)
	require.NoError(t, err)

	want := reachable(s, s.Node("helper"))
	for _, p := range []string{"one", "two"} {
		got := genericNodes(log, p)
		assert.Len(t, got, len(want), "plugin %s: no node visited twice", p)
		slices.Sort(got)
		assert.Equal(t, want, got, "plugin %s", p)
	}
	assert.Equal(t, len(want), stats.Total())
	assert.Equal(t, 11, stats.Items, "the local helper fn is not counted")
}

func TestProcessCrate_LocalItemsNotWalked(t *testing.T) {
	s := testutil.RichCrate()
	log := &testlint.Log{}
	_, err := run(t, newRegistry(t, testlint.NewRecorder("one", log).Export()), s)
	require.NoError(t, err)

	assert.NotContains(t, log.Nodes("one"), s.Node("helper"))
	assert.Equal(t, 2, log.Count("CheckFn"), "only area and inner")
}

func TestProcessCrate_CompositeOrder(t *testing.T) {
	s := testutil.RichCrate()
	c := s.Crate
	log := &testlint.Log{}
	r := newRegistry(t, testlint.NewRecorder("one", log).Export())
	_, err := run(t, r, s)
	require.NoError(t, err)

	shape := s.Item("Shape")
	enum, ok := c.Enum(shape)
	require.True(t, ok)
	circle, _ := c.Variant(enum.Variants[0])
	square, _ := c.Variant(enum.Variants[1])
	circleField, _ := c.Field(circle.Fields[0])
	sideField, _ := c.Field(square.Fields[0])
	neg, _ := c.Expr(square.Discriminant.MustGet())
	negOp, _ := c.Unary(neg)
	one, _ := c.Expr(negOp.Operand)

	want := []testlint.Event{
		{Plugin: "one", Callback: "CheckItem", Node: shape.ID},
		{Plugin: "one", Callback: "CheckEnum", Node: shape.ID},
		{Plugin: "one", Callback: "CheckVariant", Node: circle.ID},
		{Plugin: "one", Callback: "CheckField", Node: circleField.ID},
		{Plugin: "one", Callback: "CheckVariant", Node: square.ID},
		{Plugin: "one", Callback: "CheckField", Node: sideField.ID},
		{Plugin: "one", Callback: "CheckExpr", Node: neg.ID},
		{Plugin: "one", Callback: "CheckExpr", Node: one.ID},
	}
	start := slices.Index(log.Events, want[0])
	require.GreaterOrEqual(t, start, 0)
	require.LessOrEqual(t, start+len(want), len(log.Events))
	assert.Equal(t, want, log.Events[start:start+len(want)])
}

func TestProcessCrate_ItemCallbacksPrecedeNested(t *testing.T) {
	s := testutil.RichCrate()
	c := s.Crate
	log := &testlint.Log{}
	r := newRegistry(t,
		testlint.NewRecorder("one", log).Export(),
		testlint.NewRecorder("two", log).Export())
	_, err := run(t, r, s)
	require.NoError(t, err)

	indexOf := func(p, callback string, node ast.NodeID) int {
		return slices.Index(log.Events, testlint.Event{Plugin: p, Callback: callback, Node: node})
	}

	for _, name := range []string{"Point", "Pair"} {
		it := s.Item(name)
		st, ok := c.Struct(it)
		require.True(t, ok)
		last := max(indexOf("one", "CheckStruct", it.ID), indexOf("two", "CheckStruct", it.ID))
		for _, fid := range st.Fields {
			f, _ := c.Field(fid)
			for _, p := range []string{"one", "two"} {
				assert.Greater(t, indexOf(p, "CheckField", f.ID), last, "%s field after every struct callback", name)
			}
		}
	}

	shape := s.Item("Shape")
	last := max(indexOf("one", "CheckEnum", shape.ID), indexOf("two", "CheckEnum", shape.ID))
	enum, _ := c.Enum(shape)
	for _, vid := range enum.Variants {
		v, _ := c.Variant(vid)
		for _, p := range []string{"one", "two"} {
			vi := indexOf(p, "CheckVariant", v.ID)
			assert.Greater(t, vi, last)
			for _, fid := range v.Fields {
				f, _ := c.Field(fid)
				assert.Greater(t, indexOf(p, "CheckField", f.ID), vi)
			}
		}
	}
}

func TestProcessCrate_SingleStatic(t *testing.T) {
	s := testutil.StaticCrate()
	export := testlint.Export()
	r := newRegistry(t, export)

	stats, err := run(t, r, s)
	require.NoError(t, err)

	pass := export.Pass.(*testlint.Pass)
	require.Len(t, pass.Items, 1)
	assert.Equal(t, ast.ItemStatic, pass.Items[0].Kind)
	assert.Equal(t, s.Node("LIMIT"), pass.Items[0].ID)
	assert.Equal(t, 1, stats.Items)
	assert.Equal(t, 1, stats.Exprs)
}

func TestProcessCrate_ModuleBeforeNestedFn(t *testing.T) {
	s := testutil.NestedFnCrate()
	log := &testlint.Log{}
	r := newRegistry(t,
		testlint.NewRecorder("one", log).Export(),
		testlint.NewRecorder("two", log).Export())

	_, err := run(t, r, s)
	require.NoError(t, err)

	outer, inner := s.Node("outer"), s.Node("inner")
	var kinds []testlint.Event
	for _, e := range log.Events {
		if e.Callback == "CheckMod" || e.Callback == "CheckFn" {
			kinds = append(kinds, e)
		}
	}
	assert.Equal(t, []testlint.Event{
		{Plugin: "one", Callback: "CheckMod", Node: outer},
		{Plugin: "two", Callback: "CheckMod", Node: outer},
		{Plugin: "one", Callback: "CheckFn", Node: inner},
		{Plugin: "two", Callback: "CheckFn", Node: inner},
	}, kinds)

	assert.Equal(t, []string{"CheckCrate", "CheckItem", "CheckMod", "CheckItem", "CheckFn"}, log.Callbacks("one"))
}

func TestProcessCrate_FaultStopsWalk(t *testing.T) {
	s := testutil.RichCrate()
	log := &testlint.Log{}
	r := newRegistry(t,
		testlint.NewRecorder("good", log).Export(),
		testlint.NewRecorder("bad", log).PanicOn("CheckFn").Export())

	_, err := run(t, r, s)
	require.Error(t, err)
	assert.ErrorIs(t, err, plugin.ErrDispatchFault)

	lastEvent := log.Events[len(log.Events)-1]
	assert.Equal(t, testlint.Event{Plugin: "bad", Callback: "CheckFn", Node: s.Node("area")}, lastEvent)
	assert.Zero(t, log.Count("CheckStmt"), "the body of the faulting fn is never walked")
}

// vandal overwrites every child list it is handed.
type vandal struct{}

func (vandal) Name() string { return "vandal" }

func (vandal) CheckMod(_ lint.AstContext, _ ast.Item, x ast.ModItem) {
	for i := range x.Items {
		x.Items[i] = ast.NoItemID
	}
}

func (vandal) CheckFn(_ lint.AstContext, _ ast.Item, x ast.FnItem) {
	for i := range x.Params {
		x.Params[i] = ast.Param{}
	}
}

func (vandal) CheckStruct(_ lint.AstContext, _ ast.Item, x ast.StructItem) {
	for i := range x.Fields {
		x.Fields[i] = 0
	}
}

func (vandal) CheckEnum(_ lint.AstContext, _ ast.Item, x ast.EnumItem) {
	for i := range x.Variants {
		x.Variants[i] = 0
	}
}

func (vandal) CheckVariant(_ lint.AstContext, v ast.Variant) {
	for i := range v.Fields {
		v.Fields[i] = 0
	}
}

func TestProcessCrate_PassesCannotRewriteCrate(t *testing.T) {
	tests := []struct {
		name   string
		sample func() testutil.Sample
		local  string
	}{
		{name: "nested module", sample: testutil.NestedFnCrate},
		{name: "every kind", sample: testutil.RichCrate, local: "helper"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.sample()
			log := &testlint.Log{}
			r := newRegistry(t,
				lint.Export{Name: "vandal", Pass: vandal{}},
				testlint.NewRecorder("after", log).Export())

			_, err := run(t, r, s)
			require.NoError(t, err)

			local := ast.NoNodeID
			if tt.local != "" {
				local = s.Node(tt.local)
			}
			got := genericNodes(log, "after")
			slices.Sort(got)
			assert.Equal(t, reachable(s, local), got, "later passes see the whole crate")
		})
	}

	s := testutil.NestedFnCrate()
	_, err := run(t, newRegistry(t, lint.Export{Name: "vandal", Pass: vandal{}}), s)
	require.NoError(t, err)
	m, ok := s.Crate.Mod(s.Item("outer"))
	require.True(t, ok)
	assert.Equal(t, []ast.ItemID{s.Items["inner"]}, m.Items)
}

func TestProcessCrate_RejectsSharedNodes(t *testing.T) {
	b := ast.NewBuilder("shared")
	fn := b.Fn(ast.Header{Name: "f"}, ast.FnItem{})
	m := b.Mod(ast.Header{Name: "m"}, fn)
	crate := b.Finish(ast.NoSpanID, fn, m)

	log := &testlint.Log{}
	cx := session.New(crate, session.Config{})
	_, err := New(newRegistry(t, testlint.NewRecorder("one", log).Export()), nil).ProcessCrate(cx, crate)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedCrate)
	assert.Contains(t, err.Error(), "reached twice")
}

func TestStats_Total(t *testing.T) {
	assert.Equal(t, 1, Stats{}.Total())
	assert.Equal(t, 16, Stats{Items: 1, Fields: 2, Variants: 3, Stmts: 4, Exprs: 5}.Total())
}
