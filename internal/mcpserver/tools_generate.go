package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/generator"
	"github.com/erraggy/sdkgen/internal/issues"
	"github.com/erraggy/sdkgen/parser"
	"github.com/erraggy/sdkgen/patcher"
	"github.com/erraggy/sdkgen/project"
	"github.com/erraggy/sdkgen/source"
)

// Generate modes.
const (
	modePreview = "preview"
	modeWrite   = "write"
	modeCheck   = "check"
)

type generateInput struct {
	Project   string     `json:"project"             jsonschema:"Path to the project file (JSON or YAML)"`
	Spec      *specInput `json:"spec,omitempty"      jsonschema:"The OpenAPI description; defaults to the project's swaggerUrl"`
	Version   string     `json:"version,omitempty"   jsonschema:"Version token, e.g. 2024.3.8471.0; skips discovery"`
	Languages []string   `json:"languages,omitempty" jsonschema:"Project language keys to generate (default: all configured)"`
	Mode      string     `json:"mode,omitempty"      jsonschema:"preview (default), write or check"`
	Offset    int        `json:"offset,omitempty"    jsonschema:"Skip the first N files in the manifest"`
	Limit     int        `json:"limit,omitempty"     jsonschema:"Maximum number of files to list (default: 200)"`
}

type generatedLanguage struct {
	Language string `json:"language"`
	Files    int    `json:"files"`
	Models   int    `json:"models"`
	Clients  int    `json:"clients"`
	Patches  int    `json:"patches"`
	Error    string `json:"error,omitempty"`
}

type generatedFileInfo struct {
	Language string `json:"language"`
	Path     string `json:"path"`
	Size     int    `json:"size"`
}

type generateOutput struct {
	Mode         string              `json:"mode"`
	Version      string              `json:"version"`
	Languages    []generatedLanguage `json:"languages"`
	FileCount    int                 `json:"file_count"`
	Files        []generatedFileInfo `json:"files,omitempty"`
	Written      bool                `json:"written"`
	Drift        []generator.Drift   `json:"drift,omitempty"`
	UpToDate     bool                `json:"up_to_date,omitempty"`
	WarningCount int                 `json:"warning_count"`
	ErrorCount   int                 `json:"error_count"`
	Issues       []issues.Issue      `json:"issues,omitempty"`
}

func handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	mode := input.Mode
	if mode == "" {
		mode = modePreview
	}
	if mode != modePreview && mode != modeWrite && mode != modeCheck {
		return errResult(fmt.Errorf("invalid mode %q; valid values: preview, write, check", input.Mode)), generateOutput{}, nil
	}
	if input.Project == "" {
		return errResult(fmt.Errorf("project is required")), generateOutput{}, nil
	}

	p, err := project.Load(input.Project)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	var version apimodel.Version
	if input.Version != "" {
		if version, err = apimodel.ParseVersion(input.Version); err != nil {
			return errResult(err), generateOutput{}, nil
		}
	}

	parsed, err := loadForProject(ctx, p, input.Spec, version, mode == modeWrite)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	opts := []generator.Option{
		generator.WithParsed(*parsed),
		generator.WithProject(p),
	}
	if len(input.Languages) > 0 {
		opts = append(opts, generator.WithLanguages(input.Languages...))
	}
	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{Mode: mode, Version: result.Version.Full}
	switch mode {
	case modeWrite:
		if err := result.WriteFiles(ctx, patcher.NewFilePatcher()); err != nil {
			return errResult(fmt.Errorf("failed to write generated files: %w", err)), generateOutput{}, nil
		}
		output.Written = true
	case modeCheck:
		drift, err := result.Check()
		if err != nil {
			return errResult(err), generateOutput{}, nil
		}
		output.Drift = drift
		output.UpToDate = len(drift) == 0
	}

	n := 0
	for _, out := range result.Outputs {
		n += len(out.Files)
	}
	files := makeSlice[generatedFileInfo](n)
	for _, out := range result.Outputs {
		lang := generatedLanguage{
			Language: out.Language,
			Files:    len(out.Files),
			Models:   out.Models,
			Clients:  out.Clients,
			Patches:  len(out.Patches),
		}
		if out.Err != nil {
			lang.Error = sanitizeError(out.Err)
		}
		output.Languages = append(output.Languages, lang)
		for _, f := range out.Files {
			files = append(files, generatedFileInfo{Language: out.Language, Path: f.Path, Size: len(f.Content)})
		}
	}
	output.FileCount = len(files)
	output.Files = paginate(files, input.Offset, input.Limit, cfg.FileLimit)
	output.WarningCount = result.WarningCount
	output.ErrorCount = result.ErrorCount
	output.Issues = paginate(result.Summary(generator.SeverityWarning), 0, 0, cfg.IssueLimit)

	return nil, output, nil
}

// loadForProject parses the description for p. An explicit spec input is
// prepared for the project but never snapshotted; otherwise the project's
// own source and version page are used.
func loadForProject(ctx context.Context, p *project.Project, spec *specInput, version apimodel.Version, snapshot bool) (*parser.ParseResult, error) {
	if spec == nil {
		loaded, err := source.Load(ctx, p, source.LoadOptions{
			Version:  version,
			Fetcher:  newFetcher(),
			Snapshot: snapshot,
		})
		if err != nil {
			return nil, err
		}
		return loaded.ParseResult, nil
	}
	return spec.resolve(ctx,
		parser.WithVersion(version),
		parser.WithPrepare(func(doc *yaml.Node) error {
			return source.Prepare(doc, p, version)
		}),
	)
}
