package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/internal/issues"
	"github.com/erraggy/sdkgen/internal/severity"
	"github.com/erraggy/sdkgen/parser"
)

type inspectInput struct {
	Spec        specInput `json:"spec"                   jsonschema:"The OpenAPI description to inspect"`
	Version     string    `json:"version,omitempty"      jsonschema:"Version token to build the model with, e.g. 2024.3.8471.0 (default: info.version)"`
	Schema      string    `json:"schema,omitempty"       jsonschema:"List model and enum names matching this glob, e.g. Invoice*"`
	MinSeverity string    `json:"min_severity,omitempty" jsonschema:"Lowest issue severity to list: info, warning, error (default: info)"`
	Offset      int       `json:"offset,omitempty"       jsonschema:"Skip the first N issues"`
	Limit       int       `json:"limit,omitempty"        jsonschema:"Maximum number of issues to return (default: 100)"`
}

type inspectVersion struct {
	Short  string `json:"short"`
	Semver string `json:"semver"`
	Full   string `json:"full"`
}

type inspectOutput struct {
	Version       inspectVersion `json:"version"`
	Format        string         `json:"format"`
	ModelCount    int            `json:"model_count"`
	EnumCount     int            `json:"enum_count"`
	EndpointCount int            `json:"endpoint_count"`
	Deprecated    int            `json:"deprecated_count"`
	Categories    []groupCount   `json:"categories,omitempty"`
	Schemas       []string       `json:"schemas,omitempty"`
	IssueCount    int            `json:"issue_count"`
	WarningCount  int            `json:"warning_count"`
	Issues        []issues.Issue `json:"issues,omitempty"`
}

func handleInspect(ctx context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	if err := validateGlobPattern(input.Schema); err != nil {
		return errResult(err), inspectOutput{}, nil
	}
	minSev := severity.SeverityInfo
	if input.MinSeverity != "" {
		if err := minSev.UnmarshalText([]byte(input.MinSeverity)); err != nil {
			return errResult(fmt.Errorf("invalid min_severity %q", input.MinSeverity)), inspectOutput{}, nil
		}
	}

	var extraOpts []parser.Option
	if input.Version != "" {
		v, err := apimodel.ParseVersion(input.Version)
		if err != nil {
			return errResult(err), inspectOutput{}, nil
		}
		extraOpts = append(extraOpts, parser.WithVersion(v))
	}

	result, err := input.Spec.resolve(ctx, extraOpts...)
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}
	api := result.API

	v := api.Version()
	output := inspectOutput{
		Version:       inspectVersion{Short: v.Short, Semver: v.Semver, Full: v.Full},
		Format:        string(result.SourceFormat),
		ModelCount:    len(api.Models()),
		EnumCount:     len(api.Enums()),
		EndpointCount: len(api.Endpoints),
		IssueCount:    len(result.Issues),
		WarningCount:  issues.Count(result.Issues)[severity.SeverityWarning],
	}
	for _, ep := range api.Endpoints {
		if ep.Deprecated {
			output.Deprecated++
		}
	}
	output.Categories = groupAndSort(api.Endpoints, func(ep apimodel.EndpointItem) []string {
		return []string{ep.Category}
	})

	if input.Schema != "" {
		for _, s := range api.Schemas {
			if matchGlobName(s.Name, input.Schema) {
				output.Schemas = append(output.Schemas, s.Name)
			}
		}
	}

	output.Issues = paginate(issues.Filter(result.Issues, minSev), input.Offset, input.Limit, cfg.IssueLimit)
	return nil, output, nil
}
