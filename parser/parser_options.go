package parser

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/internal/options"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte
	document *yaml.Node

	logger  Logger
	version apimodel.Version
	prepare PrepareFunc

	// Source identification
	sourceName *string
}

// ParseWithOptions parses a source description using functional options.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("swagger.json"),
//	    parser.WithVersion(version),
//	    parser.WithPrepare(fixups),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{
		Logger:  cfg.logger,
		Version: cfg.version,
		Prepare: cfg.prepare,
	}

	var result *ParseResult
	var parseErr error
	switch {
	case cfg.filePath != nil:
		result, parseErr = p.Parse(*cfg.filePath)
	case cfg.reader != nil:
		result, parseErr = p.ParseReader(cfg.reader)
	case cfg.bytes != nil:
		result, parseErr = p.ParseBytes(cfg.bytes)
	case cfg.document != nil:
		result, parseErr = p.ParseDocument(cfg.document)
	default:
		return nil, fmt.Errorf("parser: no input source specified")
	}

	if parseErr != nil {
		return result, parseErr
	}

	if result != nil && cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
	}

	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"parser: must specify an input source (use WithFilePath, WithReader, WithBytes, or WithDocument)",
		"parser: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil, cfg.document != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a local file as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("parser: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return fmt.Errorf("parser: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithDocument specifies an already decoded document as the input source
func WithDocument(doc *yaml.Node) Option {
	return func(cfg *parseConfig) error {
		if doc == nil {
			return fmt.Errorf("parser: document cannot be nil")
		}
		cfg.document = doc
		return nil
	}
}

// WithLogger sets the structured logger for diagnostics.
// If not set, logging is disabled (NopLogger is used).
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithVersion sets the version triplet stored in the model.
func WithVersion(v apimodel.Version) Option {
	return func(cfg *parseConfig) error {
		cfg.version = v
		return nil
	}
}

// WithPrepare sets a hook that edits the decoded document before extraction.
func WithPrepare(fn PrepareFunc) Option {
	return func(cfg *parseConfig) error {
		cfg.prepare = fn
		return nil
	}
}

// WithSourceName overrides ParseResult.SourcePath.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}
