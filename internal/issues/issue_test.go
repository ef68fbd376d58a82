package issues

import (
	"testing"

	"github.com/erraggy/sdkgen/internal/severity"
	"github.com/stretchr/testify/assert"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{
			name:  "warning with path",
			issue: Issue{Path: "paths./invoices.get", Message: "missing summary", Severity: severity.SeverityWarning},
			want:  "⚠ paths./invoices.get: missing summary",
		},
		{
			name:  "critical with language",
			issue: Issue{Language: "java", Message: "unsupported location", Severity: severity.SeverityCritical},
			want:  "✗ [java]: unsupported location",
		},
		{
			name:  "info with language and path",
			issue: Issue{Language: "ruby", Path: "components.schemas.A", Message: "ok", Severity: severity.SeverityInfo},
			want:  "ℹ [ruby] components.schemas.A: ok",
		},
		{
			name:  "no location",
			issue: Issue{Message: "plain", Severity: severity.SeverityError},
			want:  "✗ plain",
		},
		{
			name:  "unknown severity",
			issue: Issue{Message: "odd", Severity: severity.Severity(42)},
			want:  "? odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.issue.String())
		})
	}
}

func TestFormatPath(t *testing.T) {
	assert.Equal(t, "", FormatPath())
	assert.Equal(t, "paths", FormatPath("paths"))
	assert.Equal(t, "paths./a/{id}.get", FormatPath("paths", "/a/{id}", "get"))
}

func TestCountAndFilter(t *testing.T) {
	list := []Issue{
		{Message: "a", Severity: severity.SeverityInfo},
		{Message: "b", Severity: severity.SeverityWarning},
		{Message: "c", Severity: severity.SeverityWarning},
		{Message: "d", Severity: severity.SeverityCritical},
	}

	counts := Count(list)
	assert.Equal(t, 1, counts[severity.SeverityInfo])
	assert.Equal(t, 2, counts[severity.SeverityWarning])
	assert.Equal(t, 0, counts[severity.SeverityError])
	assert.Equal(t, 1, counts[severity.SeverityCritical])

	filtered := Filter(list, severity.SeverityWarning)
	assert.Len(t, filtered, 3)
	assert.Equal(t, "b", filtered[0].Message)
	assert.Nil(t, Filter(list[:1], severity.SeverityWarning))
}
