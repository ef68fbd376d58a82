package commands

import (
	"context"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/internal/cliutil"
	"github.com/erraggy/sdkgen/internal/issues"
	"github.com/erraggy/sdkgen/internal/severity"
	"github.com/erraggy/sdkgen/parser"
	"github.com/erraggy/sdkgen/source"
)

type inspectFlags struct {
	source      string
	version     string
	format      string
	minSeverity string
}

// inspectReport is the structured form of the inspect output.
type inspectReport struct {
	Source     string           `json:"source" yaml:"source"`
	Format     string           `json:"format" yaml:"format"`
	Version    apimodel.Version `json:"version" yaml:"version"`
	Models     int              `json:"models" yaml:"models"`
	Enums      int              `json:"enums" yaml:"enums"`
	Endpoints  int              `json:"endpoints" yaml:"endpoints"`
	Deprecated int              `json:"deprecated" yaml:"deprecated"`
	Categories []categoryCount  `json:"categories,omitempty" yaml:"categories,omitempty"`
	Issues     []issues.Issue   `json:"issues,omitempty" yaml:"issues,omitempty"`
}

type categoryCount struct {
	Name      string `json:"name" yaml:"name"`
	Endpoints int    `json:"endpoints" yaml:"endpoints"`
}

func newInspectCommand(a *app) *cobra.Command {
	flags := &inspectFlags{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize the model extracted from a description",
		Long: `Inspect parses the description and prints the models, enums and endpoint
categories the generators would see, plus every item that was skipped or
defaulted while building the model.

With --source the file is read directly and no project file is needed.
Otherwise the project's swaggerUrl is fetched and its fix-ups applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInspect(cmd.Context(), flags)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&flags.source, "source", "s", "", "description file to inspect")
	fs.StringVar(&flags.version, "version", "", "version token, e.g. 2024.3.8471.0 (default: info.version)")
	fs.StringVarP(&flags.format, "format", "f", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.minSeverity, "min-severity", "info", "lowest issue severity to list: info, warning, error")
	return cmd
}

func (a *app) runInspect(ctx context.Context, flags *inspectFlags) error {
	if err := ValidateOutputFormat(flags.format); err != nil {
		return err
	}
	var minSev severity.Severity
	if err := minSev.UnmarshalText([]byte(flags.minSeverity)); err != nil {
		return errors.Wrap(err, "--min-severity")
	}
	res, err := a.inspectSource(ctx, flags)
	if err != nil {
		return err
	}

	report := buildReport(res)
	report.Issues = issues.Filter(res.Issues, minSev)
	if flags.format != FormatText {
		return OutputStructured(a.out, report, flags.format)
	}

	cliutil.Writef(a.out, "Source:     %s (%s)\n", report.Source, report.Format)
	cliutil.Writef(a.out, "Version:    %s (semver %s)\n", report.Version.Full, report.Version.Semver)
	cliutil.Writef(a.out, "Models:     %d\n", report.Models)
	cliutil.Writef(a.out, "Enums:      %d\n", report.Enums)
	cliutil.Writef(a.out, "Endpoints:  %d (%d deprecated)\n", report.Endpoints, report.Deprecated)
	if len(report.Categories) > 0 {
		data := pterm.TableData{{"Category", "Endpoints"}}
		for _, c := range report.Categories {
			data = append(data, []string{c.Name, strconv.Itoa(c.Endpoints)})
		}
		if err := renderTable(a.out, data); err != nil {
			return err
		}
	}
	if len(report.Issues) > 0 {
		cliutil.Writef(a.out, "Issues (%d):\n", len(report.Issues))
		cliutil.WriteIssues(a.out, report.Issues, minSev)
	}
	return nil
}

func (a *app) inspectSource(ctx context.Context, flags *inspectFlags) (*parser.ParseResult, error) {
	var version apimodel.Version
	if flags.version != "" {
		v, err := apimodel.ParseVersion(flags.version)
		if err != nil {
			return nil, err
		}
		version = v
	}
	if flags.source != "" {
		return parser.ParseWithOptions(
			parser.WithFilePath(flags.source),
			parser.WithVersion(version),
			parser.WithLogger(a.logger),
		)
	}

	p, err := a.loadProject()
	if err != nil {
		return nil, err
	}
	loaded, err := source.Load(ctx, p, source.LoadOptions{
		Version: version,
		Fetcher: a.getFetcher(),
		Logger:  a.logger,
	})
	if err != nil {
		return nil, err
	}
	return loaded.ParseResult, nil
}

func buildReport(res *parser.ParseResult) inspectReport {
	api := res.API
	report := inspectReport{
		Source:    res.SourcePath,
		Format:    string(res.SourceFormat),
		Version:   api.Version(),
		Models:    len(api.Models()),
		Enums:     len(api.Enums()),
		Endpoints: len(api.Endpoints),
	}
	for _, ep := range api.Endpoints {
		if ep.Deprecated {
			report.Deprecated++
		}
	}
	for _, c := range api.Categories {
		report.Categories = append(report.Categories, categoryCount{Name: c, Endpoints: len(api.EndpointsIn(c))})
	}
	return report
}
