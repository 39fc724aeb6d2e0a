// Package lint is the contract between the leaplint host and lint plugins.
//
// # Writing a plugin
//
// A plugin is a Go plugin (go build -buildmode=plugin) whose main package
// exports two symbols:
//
//	var InterfaceVersion = lint.InterfaceVersion
//
//	func LintPlugin() lint.Export {
//		return lint.Export{
//			Name:  "mylints",
//			Pass:  &pass{},
//			Lints: []*lint.Lint{NoMutStatics},
//		}
//	}
//
// The host reads InterfaceVersion before it calls anything else in the
// library and refuses plugins built against a different AST layout.
//
// # Callbacks
//
// A pass implements LintPass plus any of the Check* interfaces. The host
// walks the crate once and calls each implemented callback on every pass in
// load order. Passes see the tree through ast value types and the AstContext;
// neither may be modified.
//
// # Levels
//
// Each Lint has a default Level. Configuration may override it through a
// LevelConfig, except that a lint declared Forbid cannot be lowered.
// Embed a Collector to report findings at the configured level.
package lint
