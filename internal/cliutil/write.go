// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/erraggy/sdkgen/internal/issues"
	"github.com/erraggy/sdkgen/internal/severity"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteIssues prints one line per issue at or above min and returns how many
// were printed.
func WriteIssues(w io.Writer, list []issues.Issue, min severity.Severity) int {
	printed := 0
	for _, issue := range list {
		if !issue.Severity.AtLeast(min) {
			continue
		}
		Writef(w, "  %s\n", issue.String())
		printed++
	}
	return printed
}
