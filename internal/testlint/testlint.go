// Package testlint holds the reference lint pass shipped as the testlint
// plugin, and a recording pass used to observe dispatch order in tests.
package testlint

import (
	"github.com/leapstack-labs/leaplint/pkg/ast"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// PluginName is the name the reference plugin declares.
const PluginName = "testlint"

// TestLint flags static items. It is allowed by default, so it only reports
// when configuration raises it.
var TestLint = lint.Declare("TEST_LINT", lint.Allow, "reports every static item")

// MaxReportsOption caps the number of statics reported. Zero or less means
// no cap.
const MaxReportsOption = "max_reports"

// Pass implements only the item callback.
type Pass struct {
	lint.Collector

	// Items lists every item the pass was shown, in order.
	Items []ast.Item

	reported int
}

func (*Pass) Name() string { return PluginName }

// CheckItem records the item and reports statics.
func (p *Pass) CheckItem(cx lint.AstContext, item ast.Item) {
	p.Items = append(p.Items, item)
	if item.Kind != ast.ItemStatic {
		return
	}
	if limit := cx.LintOptions(TestLint).Int(MaxReportsOption, 0); limit > 0 && p.reported >= limit {
		return
	}
	p.reported++
	p.Report(cx, TestLint, item.ID, item.Span, "static item `%s`", cx.Symbol(item.Name))
	if sp, ok := cx.Span(item.Span); ok && sp.File != "" {
		p.Note("declared in %s", sp.File)
	}
}

// Export returns a fresh instance of the reference plugin.
func Export() lint.Export {
	return lint.Export{
		Name:  PluginName,
		Pass:  &Pass{},
		Lints: []*lint.Lint{TestLint},
	}
}
