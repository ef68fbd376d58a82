package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/sdkgen/internal/severity"
)

func TestInspectTool(t *testing.T) {
	specCache.reset()
	result, output, err := handleInspect(context.Background(), &mcp.CallToolRequest{}, inspectInput{
		Spec: specInput{Content: billingSpec},
	})
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, inspectVersion{Short: "2024.3", Semver: "2024.3.8471", Full: "2024.3.8471.0"}, output.Version)
	assert.Equal(t, "json", output.Format)
	assert.Equal(t, 3, output.EndpointCount)
	assert.Equal(t, 1, output.Deprecated)
	assert.Zero(t, output.EnumCount)
	assert.GreaterOrEqual(t, output.ModelCount, 2)
	assert.Equal(t, []groupCount{{Key: "Customers", Count: 2}, {Key: "Invoices", Count: 1}}, output.Categories)
	assert.Empty(t, output.Schemas)

	require.Len(t, output.Issues, output.IssueCount)
	assert.Equal(t, 1, output.WarningCount)
}

func TestInspectTool_Filters(t *testing.T) {
	specCache.reset()
	_, output, err := handleInspect(context.Background(), &mcp.CallToolRequest{}, inspectInput{
		Spec:        specInput{Content: billingSpec},
		Schema:      "c*",
		MinSeverity: "warning",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Customer"}, output.Schemas)
	require.Len(t, output.Issues, 1)
	assert.Equal(t, severity.SeverityWarning, output.Issues[0].Severity)
	assert.Equal(t, "paths./health.get", output.Issues[0].Path)
}

func TestInspectTool_Version(t *testing.T) {
	specCache.reset()
	_, output, err := handleInspect(context.Background(), &mcp.CallToolRequest{}, inspectInput{
		Spec:    specInput{Content: billingSpec},
		Version: "2025.1.17.0",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025.1.17", output.Version.Semver)
}

func TestInspectTool_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input inspectInput
	}{
		{"no spec", inspectInput{}},
		{"bad glob", inspectInput{Spec: specInput{Content: billingSpec}, Schema: "Inv["}},
		{"bad severity", inspectInput{Spec: specInput{Content: billingSpec}, MinSeverity: "loud"}},
		{"sentinel version", inspectInput{Spec: specInput{Content: billingSpec}, Version: "1.0.0.0"}},
		{"not a document", inspectInput{Spec: specInput{Content: "[1, 2"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleInspect(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
		})
	}
}
