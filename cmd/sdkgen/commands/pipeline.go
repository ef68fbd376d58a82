package commands

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/fetch"
	"github.com/erraggy/sdkgen/generator"
	"github.com/erraggy/sdkgen/project"
	"github.com/erraggy/sdkgen/source"
)

// sourceFlags select where the description and its version come from.
type sourceFlags struct {
	source    string
	version   string
	languages []string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.source, "source", "s", "", "read the description from this file instead of the project's swaggerUrl")
	fs.StringVar(&f.version, "version", "", "version token, e.g. 2024.3.8471.0 (skips discovery)")
	fs.StringSliceVarP(&f.languages, "languages", "l", nil, "languages to generate (default: all configured)")
}

func (f *sourceFlags) parsedVersion() (apimodel.Version, error) {
	if f.version == "" {
		return apimodel.Version{}, nil
	}
	return apimodel.ParseVersion(f.version)
}

func (a *app) getFetcher() fetch.Fetcher {
	if a.fetcher == nil {
		f := fetch.NewHTTPFetcher()
		f.Logger = a.logger
		a.fetcher = f
	}
	return a.fetcher
}

func (a *app) loadProject() (*project.Project, error) {
	p, err := project.Load(a.projectFile)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrapf(err, "project %s", a.projectFile)
	}
	return p, nil
}

// generate loads the project and the description, then renders every
// requested language in memory.
func (a *app) generate(ctx context.Context, flags *sourceFlags, snapshot bool) (*generator.GenerateResult, *source.Loaded, error) {
	p, err := a.loadProject()
	if err != nil {
		return nil, nil, err
	}
	version, err := flags.parsedVersion()
	if err != nil {
		return nil, nil, err
	}

	loaded, err := source.Load(ctx, p, source.LoadOptions{
		Path:     flags.source,
		Version:  version,
		Fetcher:  a.getFetcher(),
		Logger:   a.logger,
		Snapshot: snapshot,
	})
	if err != nil {
		return nil, nil, err
	}

	opts := []generator.Option{
		generator.WithParsed(*loaded.ParseResult),
		generator.WithProject(p),
		generator.WithLogger(a.logger),
	}
	if len(flags.languages) > 0 {
		opts = append(opts, generator.WithLanguages(flags.languages...))
	}
	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return nil, nil, err
	}
	return result, loaded, nil
}
