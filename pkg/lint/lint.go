package lint

// Lint describes one diagnostic rule. Plugins declare each lint once into a
// package-level variable and refer to it by pointer:
//
//	var NoMutStatics = lint.Declare("NO_MUT_STATICS", lint.Warn, "flags `static mut` items")
//
// A Lint is immutable after Declare.
type Lint struct {
	name         string
	defaultLevel Level
	doc          string
}

// Declare creates a lint descriptor.
func Declare(name string, defaultLevel Level, doc string) *Lint {
	return &Lint{name: name, defaultLevel: defaultLevel, doc: doc}
}

// Name returns the lint identifier. Identifiers are unique across every
// plugin loaded into a run.
func (l *Lint) Name() string { return l.name }

// DefaultLevel returns the level used when configuration says nothing.
func (l *Lint) DefaultLevel() Level { return l.defaultLevel }

// Doc returns the lint documentation.
func (l *Lint) Doc() string { return l.doc }

// Info returns a serializable view of the lint. Plugin is left empty; the
// registry fills it for lints it owns.
func (l *Lint) Info() LintInfo {
	return LintInfo{
		ID:           l.name,
		DefaultLevel: l.defaultLevel,
		Doc:          l.doc,
	}
}

// LintInfo provides metadata about a lint for documentation/tooling.
type LintInfo struct {
	ID           string `json:"id"`
	DefaultLevel Level  `json:"default_level"`
	Doc          string `json:"doc,omitempty"`
	Plugin       string `json:"plugin,omitempty"`
}
