package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/erraggy/sdkgen/internal/issues"
)

// fixture returns one file of testdata/scenarios.txtar.
func fixture(t *testing.T, name string) []byte {
	t.Helper()
	archive, err := txtar.ParseFile("testdata/scenarios.txtar")
	require.NoError(t, err)
	for _, f := range archive.Files {
		if f.Name == name {
			return f.Data
		}
	}
	t.Fatalf("fixture %q not found", name)
	return nil
}

// findIssue returns the first issue reported at path.
func findIssue(list []issues.Issue, path string) (issues.Issue, bool) {
	for _, i := range list {
		if i.Path == path {
			return i, true
		}
	}
	return issues.Issue{}, false
}
