package plugin

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a fatal plugin failure.
type ErrorKind int

// Failure kinds. Each maps to its own process exit code.
const (
	// PluginNotFound means a configured library path does not exist.
	PluginNotFound ErrorKind = iota + 1
	// PluginLibraryInvalid means the library opened but does not honor the
	// plugin contract.
	PluginLibraryInvalid
	// VersionMismatch means the library was built against another AST layout.
	VersionMismatch
	// DuplicateLintID means two descriptors share an identifier.
	DuplicateLintID
	// DispatchFault means a callback panicked during the walk.
	DispatchFault
)

// Sentinel errors for use with errors.Is.
var (
	ErrPluginNotFound       = errors.New("plugin not found")
	ErrPluginLibraryInvalid = errors.New("invalid plugin library")
	ErrVersionMismatch      = errors.New("interface version mismatch")
	ErrDuplicateLintID      = errors.New("duplicate lint id")
	ErrDispatchFault        = errors.New("plugin callback fault")
)

func (k ErrorKind) String() string {
	switch k {
	case PluginNotFound:
		return "PluginNotFound"
	case PluginLibraryInvalid:
		return "PluginLibraryInvalid"
	case VersionMismatch:
		return "VersionMismatch"
	case DuplicateLintID:
		return "DuplicateLintId"
	case DispatchFault:
		return "DispatchFault"
	default:
		return "Unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case PluginNotFound:
		return ErrPluginNotFound
	case PluginLibraryInvalid:
		return ErrPluginLibraryInvalid
	case VersionMismatch:
		return ErrVersionMismatch
	case DuplicateLintID:
		return ErrDuplicateLintID
	case DispatchFault:
		return ErrDispatchFault
	default:
		return nil
	}
}

// ExitCode returns the process exit code for the kind: 3 through 7.
func (k ErrorKind) ExitCode() int {
	if k < PluginNotFound || k > DispatchFault {
		return 1
	}
	return 2 + int(k)
}

// LoadError reports which plugin failed and how. Despite the name it also
// carries dispatch faults, which abort a run just like load failures.
type LoadError struct {
	Kind     ErrorKind
	Plugin   string // Plugin name, or the configured path when the name is unknown
	Path     string
	Callback string // Set for DispatchFault
	Err      error
}

func (e *LoadError) Error() string {
	where := e.Plugin
	if e.Callback != "" {
		where += "." + e.Callback
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: plugin %s: %s", e.Kind, where, e.Kind.sentinel())
	}
	return fmt.Sprintf("%s: plugin %s: %v", e.Kind, where, e.Err)
}

// Unwrap exposes both the kind's sentinel and the underlying cause.
func (e *LoadError) Unwrap() []error {
	errs := []error{e.Kind.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// ExitCode returns the process exit code for the failure.
func (e *LoadError) ExitCode() int {
	return e.Kind.ExitCode()
}

// KindOf extracts the ErrorKind from an error chain.
func KindOf(err error) (ErrorKind, bool) {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind, true
	}
	return 0, false
}

func newError(kind ErrorKind, spec Spec, format string, args ...any) *LoadError {
	return &LoadError{
		Kind:   kind,
		Plugin: spec.displayName(),
		Path:   spec.Path,
		Err:    fmt.Errorf(format, args...),
	}
}
