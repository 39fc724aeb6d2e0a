// Command testlint is the reference lint plugin. Build it with
//
//	go build -buildmode=plugin -o testlint.so ./plugins/testlint
//
// and load it with `leaplint check --plugin testlint.so`.
package main

import (
	"github.com/leapstack-labs/leaplint/internal/testlint"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// InterfaceVersion is checked by the loader before LintPlugin is called.
var InterfaceVersion = lint.InterfaceVersion

// LintPlugin is the plugin entry point.
func LintPlugin() lint.Export {
	return testlint.Export()
}

func main() {}
