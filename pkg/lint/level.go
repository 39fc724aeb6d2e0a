package lint

import (
	"fmt"
	"strings"
)

// Level is how loudly a lint reports.
type Level uint8

// Lint levels, from silent to unsuppressible.
const (
	// Allow suppresses the lint.
	Allow Level = iota
	// Warn reports the lint without failing the run.
	Warn
	// Deny reports the lint and fails the run.
	Deny
	// Forbid is Deny that configuration cannot lower.
	Forbid
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case Allow:
		return "allow"
	case Warn:
		return "warn"
	case Deny:
		return "deny"
	case Forbid:
		return "forbid"
	default:
		return "unknown"
	}
}

// IsError reports whether diagnostics at this level fail a run.
func (l Level) IsError() bool {
	return l >= Deny
}

// ParseLevel converts a string to a Level value.
// Returns the level and true if valid, or Warn and false if invalid.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "allow":
		return Allow, true
	case "warn", "warning":
		return Warn, true
	case "deny":
		return Deny, true
	case "forbid":
		return Forbid, true
	default:
		return Warn, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if l > Forbid {
		return nil, fmt.Errorf("invalid lint level %d", l)
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	lvl, ok := ParseLevel(string(text))
	if !ok {
		return fmt.Errorf("unknown lint level %q (want allow, warn, deny or forbid)", text)
	}
	*l = lvl
	return nil
}
