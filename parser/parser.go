package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/internal/issues"
	"github.com/erraggy/sdkgen/internal/nodeutil"
	"github.com/erraggy/sdkgen/internal/severity"
	"github.com/erraggy/sdkgen/sdkerrors"
)

// SourceFormat represents the format of the source description.
type SourceFormat string

const (
	// SourceFormatJSON indicates the source was JSON.
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatYAML indicates the source was YAML.
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatUnknown indicates the format could not be determined.
	SourceFormatUnknown SourceFormat = "unknown"
)

// PrepareFunc edits the decoded document before extraction.
type PrepareFunc func(doc *yaml.Node) error

// Parser builds API models from source descriptions.
type Parser struct {
	// Logger is the structured logger for diagnostics.
	// If nil, logging is disabled (default)
	Logger Logger
	// Version is the version triplet stored in the model. When zero, the
	// document's info.version is used if it parses.
	Version apimodel.Version
	// Prepare, if set, runs on the decoded document before extraction.
	Prepare PrepareFunc
}

// New creates a new Parser instance with default settings.
func New() *Parser {
	return &Parser{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger == nil {
		return NopLogger{}
	}
	return p.Logger
}

// ParseResult contains the model built from one source description.
type ParseResult struct {
	// SourcePath is the file path the document was read from. For readers
	// and byte slices it is "ParseReader.json", "ParseBytes.yaml" and so on.
	SourcePath string
	// SourceFormat is the detected format of the source.
	SourceFormat SourceFormat
	// API is the extracted model.
	API *apimodel.APISchema
	// Document is the decoded (and prepared) document tree.
	Document *yaml.Node
	// Issues lists every skipped or defaulted item.
	Issues []issues.Issue
	// LoadTime is the time taken to read the source.
	LoadTime time.Duration
	// SourceSize is the size of the source in bytes.
	SourceSize int64
}

// HasIssuesAtLeast reports whether any issue is at least sev.
func (pr *ParseResult) HasIssuesAtLeast(sev severity.Severity) bool {
	return len(issues.Filter(pr.Issues, sev)) > 0
}

// MarshalOrderedJSON writes the document as JSON, keeping the source key order.
func (pr *ParseResult) MarshalOrderedJSON() ([]byte, error) {
	if pr.Document == nil {
		return nil, fmt.Errorf("parser: no document")
	}
	return nodeutil.MarshalJSONIndent(pr.Document, "", "  ")
}

// Parse reads and parses a local file.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	start := time.Now()
	data, err := os.ReadFile(path)
	loadTime := time.Since(start)
	if err != nil {
		return nil, &sdkerrors.ParseError{Path: path, Message: "failed to read file", Cause: err}
	}

	res, err := p.parse(data, path)
	if err != nil {
		return nil, err
	}
	res.SourcePath = path
	res.LoadTime = loadTime
	if format := detectFormatFromPath(path); format != SourceFormatUnknown {
		res.SourceFormat = format
	}
	return res, nil
}

// ParseReader parses a description from an io.Reader.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	start := time.Now()
	data, err := io.ReadAll(r)
	loadTime := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	res, err := p.parse(data, "ParseReader")
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	res.SourcePath = "ParseReader." + string(res.SourceFormat)
	return res, nil
}

// ParseBytes parses a description held in memory.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.parse(data, "ParseBytes")
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseBytes." + string(res.SourceFormat)
	return res, nil
}

// ParseDocument extracts the model from an already decoded document.
func (p *Parser) ParseDocument(doc *yaml.Node) (*ParseResult, error) {
	res := &ParseResult{SourcePath: "ParseDocument", SourceFormat: SourceFormatUnknown}
	if err := p.build(res, doc); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *Parser) parse(data []byte, name string) (*ParseResult, error) {
	doc, err := ReadDocument(data)
	if err != nil {
		var perr *sdkerrors.ParseError
		if errors.As(err, &perr) && perr.Path == "" {
			perr.Path = name
		}
		return nil, err
	}

	res := &ParseResult{
		SourceFormat: detectFormatFromContent(data),
		SourceSize:   int64(len(data)),
	}
	if err := p.build(res, doc); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *Parser) build(res *ParseResult, doc *yaml.Node) error {
	log := p.log()

	if p.Prepare != nil {
		if err := p.Prepare(doc); err != nil {
			return fmt.Errorf("parser: preparing document: %w", err)
		}
	}

	version := p.Version
	if version == (apimodel.Version{}) {
		token := nodeutil.String(nodeutil.Lookup(doc, "info"), "version")
		v, err := apimodel.ParseVersion(token)
		if err != nil {
			res.Issues = append(res.Issues, issues.Issue{
				Path:     "info.version",
				Message:  "no usable version; manifests cannot be versioned",
				Severity: severity.SeverityWarning,
				Value:    token,
			})
			log.Warn("no usable version in document", "version", token)
		} else {
			version = v
		}
	}

	api, found, err := Extract(doc, version, log)
	if err != nil {
		return err
	}
	res.API = api
	res.Document = doc
	res.Issues = append(res.Issues, found...)
	return nil
}

// ReadDocument decodes JSON or YAML into a node tree.
func ReadDocument(data []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &sdkerrors.ParseError{Message: "empty document"}
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &sdkerrors.ParseError{Message: "failed to decode document", Cause: err}
	}
	if !nodeutil.IsMapping(&doc) {
		return nil, &sdkerrors.ParseError{Line: doc.Line, Message: "document root is not a mapping"}
	}
	return &doc, nil
}

func detectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}
