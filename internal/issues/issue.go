// Package issues provides the diagnostic record shared by the parser and the
// generator.
package issues

import (
	"fmt"
	"strings"

	"github.com/erraggy/sdkgen/internal/severity"
)

// Issue represents a single diagnostic raised while building the API model
// or emitting a language.
type Issue struct {
	// Path locates the entry in the source document (e.g., "paths./invoices.get")
	Path string `json:"path,omitempty"`
	// Message is a human-readable description of the issue
	Message string `json:"message"`
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity"`
	// Language is the target language for emitter issues (empty for parser issues)
	Language string `json:"language,omitempty"`
	// Value is the offending value (optional)
	Value any `json:"value,omitempty"`
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	location := i.Path
	if i.Language != "" {
		if location == "" {
			location = "[" + i.Language + "]"
		} else {
			location = "[" + i.Language + "] " + location
		}
	}
	if location == "" {
		return fmt.Sprintf("%s %s", symbol, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, location, i.Message)
}

// FormatPath joins path segments with dots.
func FormatPath(segments ...string) string {
	return strings.Join(segments, ".")
}

// Count tallies issues by severity.
func Count(list []Issue) map[severity.Severity]int {
	counts := make(map[severity.Severity]int, 4)
	for _, issue := range list {
		counts[issue.Severity]++
	}
	return counts
}

// Filter returns the issues at or above min, preserving order.
func Filter(list []Issue, min severity.Severity) []Issue {
	var out []Issue
	for _, issue := range list {
		if issue.Severity.AtLeast(min) {
			out = append(out, issue)
		}
	}
	return out
}
