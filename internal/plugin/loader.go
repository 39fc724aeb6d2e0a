package plugin

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"runtime/debug"

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// LoadOption configures LoadFromEnvironment.
type LoadOption func(*loadOptions)

type loadOptions struct {
	opener Opener
	logger *slog.Logger
}

// WithOpener replaces the default Go plugin opener.
func WithOpener(o Opener) LoadOption {
	return func(opts *loadOptions) { opts.opener = o }
}

// WithLogger sets the logger for load progress.
func WithLogger(l *slog.Logger) LoadOption {
	return func(opts *loadOptions) {
		if l != nil {
			opts.logger = l
		}
	}
}

// LoadFromEnvironment loads every configured plugin in order and registers
// its lints. The first failure aborts the load; no partial registry is
// returned.
func LoadFromEnvironment(env Environment, opts ...LoadOption) (*Registry, error) {
	o := loadOptions{
		opener: GoPluginOpener{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}

	r := NewRegistry()
	for _, spec := range env.Plugins {
		entry, err := loadOne(o.opener, spec)
		if err != nil {
			o.logger.Debug("plugin load failed", "plugin", spec.displayName(), "path", spec.Path, "error", err)
			return nil, err
		}
		if err := r.Register(entry); err != nil {
			return nil, err
		}
		o.logger.Debug("plugin loaded",
			"plugin", entry.Name,
			"path", entry.Path,
			"lints", len(entry.Lints))
	}
	return r, nil
}

func loadOne(opener Opener, spec Spec) (Entry, error) {
	if err := statLibrary(spec.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Entry{}, newError(PluginNotFound, spec, "no library at %s", spec.Path)
		}
		return Entry{}, newError(PluginNotFound, spec, "cannot access %s: %w", spec.Path, err)
	}

	lib, err := opener.Open(spec.Path)
	if err != nil {
		return Entry{}, newError(PluginLibraryInvalid, spec, "open %s: %w", spec.Path, err)
	}

	// The version marker is checked before any plugin code runs.
	if err := checkVersion(lib, spec); err != nil {
		return Entry{}, err
	}

	sym, err := lib.Lookup(lint.EntryPointSymbol)
	if err != nil {
		return Entry{}, newError(PluginLibraryInvalid, spec, "missing %s: %w", lint.EntryPointSymbol, err)
	}
	entryPoint, ok := sym.(lint.EntryPoint)
	if !ok {
		return Entry{}, newError(PluginLibraryInvalid, spec, "%s has type %T, want func() lint.Export", lint.EntryPointSymbol, sym)
	}

	export, err := callEntryPoint(entryPoint)
	if err != nil {
		return Entry{}, newError(PluginLibraryInvalid, spec, "%s: %w", lint.EntryPointSymbol, err)
	}
	if err := validateExport(export, spec); err != nil {
		return Entry{}, err
	}

	return Entry{
		Name:  export.Name,
		Path:  spec.Path,
		Pass:  export.Pass,
		Lints: export.Lints,
	}, nil
}

func checkVersion(lib Library, spec Spec) error {
	sym, err := lib.Lookup(lint.VersionSymbol)
	if err != nil {
		return newError(PluginLibraryInvalid, spec, "missing %s marker: %w", lint.VersionSymbol, err)
	}
	var version string
	switch v := sym.(type) {
	case *string:
		version = *v
	case string:
		version = v
	default:
		return newError(PluginLibraryInvalid, spec, "%s has type %T, want string", lint.VersionSymbol, sym)
	}
	if version != lint.InterfaceVersion {
		return newError(VersionMismatch, spec, "library built for %q, host expects %q", version, lint.InterfaceVersion)
	}
	return nil
}

func callEntryPoint(fn lint.EntryPoint) (export lint.Export, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("panicked: %v\n%s", v, debug.Stack())
		}
	}()
	return fn(), nil
}

func validateExport(export lint.Export, spec Spec) error {
	if export.Name == "" {
		return newError(PluginLibraryInvalid, spec, "export has no plugin name")
	}
	if spec.Name != "" && spec.Name != export.Name {
		return newError(PluginLibraryInvalid, spec, "library declares plugin %q, configured as %q", export.Name, spec.Name)
	}
	if export.Pass == nil {
		return newError(PluginLibraryInvalid, spec, "export has no lint pass")
	}
	for i, l := range export.Lints {
		if l == nil {
			return newError(PluginLibraryInvalid, spec, "lint %d is nil", i)
		}
		if l.Name() == "" {
			return newError(PluginLibraryInvalid, spec, "lint %d has no identifier", i)
		}
	}
	return nil
}
