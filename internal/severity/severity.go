// Package severity provides the severity levels attached to diagnostics
// raised while extracting the API model and emitting client libraries.
//
// The levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

import "fmt"

// Severity indicates how serious a diagnostic is.
type Severity int

const (
	// SeverityInfo marks a default that was substituted or an input that was
	// ignored on purpose, such as an unsupported request body encoding.
	SeverityInfo Severity = iota

	// SeverityWarning marks an entry that was skipped or degraded, such as an
	// operation without a summary.
	SeverityWarning

	// SeverityError marks a problem that made an output incorrect.
	SeverityError

	// SeverityCritical marks a language whose emission was aborted.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so severities serialize by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	case "critical":
		*s = SeverityCritical
	default:
		return fmt.Errorf("severity: unknown level %q", string(text))
	}
	return nil
}

// AtLeast reports whether s is as severe as min or more.
func (s Severity) AtLeast(min Severity) bool {
	return s >= min
}
