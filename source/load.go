package source

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/fetch"
	"github.com/erraggy/sdkgen/parser"
	"github.com/erraggy/sdkgen/project"
	"github.com/erraggy/sdkgen/sdkerrors"
)

// LoadOptions controls how Load obtains the source description.
type LoadOptions struct {
	// Path reads the description from a local file instead of the
	// project's swaggerUrl.
	Path string
	// Version skips discovery when non-zero.
	Version apimodel.Version
	// Fetcher defaults to fetch.NewHTTPFetcher().
	Fetcher fetch.Fetcher
	Logger  parser.Logger
	// Snapshot writes the prepared document into the project's
	// swaggerSchemaFolder when that folder exists.
	Snapshot bool
}

// Loaded is the outcome of Load.
type Loaded struct {
	*parser.ParseResult
	// Version is the version the model was built with.
	Version apimodel.Version
	// SnapshotPath is where the prepared document was written, if anywhere.
	SnapshotPath string
}

// Load runs the front half of a generation: discover the version when the
// project names a version page, read the description, apply Prepare, parse
// it into the model and optionally snapshot the prepared document.
//
// Without a discovered or supplied version the document's info.version is
// used as is.
func Load(ctx context.Context, p *project.Project, opts LoadOptions) (*Loaded, error) {
	if p == nil {
		return nil, &sdkerrors.ConfigError{Option: "project", Message: "project is required"}
	}
	log := opts.Logger
	if log == nil {
		log = parser.NopLogger{}
	}
	f := opts.Fetcher
	if f == nil {
		f = fetch.NewHTTPFetcher()
	}

	version := opts.Version
	if version == (apimodel.Version{}) && p.VersionNumberURL != "" {
		v, err := fetch.DiscoverVersion(ctx, f, p.VersionNumberURL, p.VersionNumberRegex)
		if err != nil {
			return nil, err
		}
		log.Info("discovered version", "version", v.Full, "url", p.VersionNumberURL)
		version = v
	}

	data, name, err := readSource(ctx, f, p, opts.Path)
	if err != nil {
		return nil, err
	}

	res, err := parser.ParseWithOptions(
		parser.WithBytes(data),
		parser.WithSourceName(name),
		parser.WithVersion(version),
		parser.WithPrepare(func(doc *yaml.Node) error {
			return Prepare(doc, p, version)
		}),
		parser.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	loaded := &Loaded{ParseResult: res, Version: res.API.Version()}
	if opts.Snapshot && loaded.Version.Short != "" {
		path, err := WriteSnapshot(res.Document, p.SwaggerSchemaDir, loaded.Version)
		if err != nil {
			return nil, err
		}
		if path != "" {
			log.Info("wrote snapshot", "path", path)
		}
		loaded.SnapshotPath = path
	}
	return loaded, nil
}

func readSource(ctx context.Context, f fetch.Fetcher, p *project.Project, path string) ([]byte, string, error) {
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // G304: path is an operator-supplied source file
		if err != nil {
			return nil, "", &sdkerrors.ParseError{Path: path, Message: "failed to read source", Cause: err}
		}
		return data, path, nil
	}
	if p.SwaggerURL == "" {
		return nil, "", &sdkerrors.ConfigError{Option: "swaggerUrl", Message: "no source file given and no swaggerUrl configured"}
	}
	body, err := f.Fetch(ctx, p.SwaggerURL)
	if err != nil {
		return nil, "", fmt.Errorf("source: fetching %s: %w", p.SwaggerURL, err)
	}
	return []byte(body), p.SwaggerURL, nil
}
