package generator

import (
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/internal/issues"
	"github.com/erraggy/sdkgen/internal/severity"
	"github.com/erraggy/sdkgen/parser"
	"github.com/erraggy/sdkgen/patcher"
	"github.com/erraggy/sdkgen/project"
	"github.com/erraggy/sdkgen/render"
	"github.com/erraggy/sdkgen/sdkerrors"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates items that were skipped or defaulted
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates a language that could not be generated
	SeverityError = severity.SeverityError
	// SeverityCritical indicates a run that cannot continue
	SeverityCritical = severity.SeverityCritical
)

// GenerateIssue represents a single generation issue or limitation
type GenerateIssue = issues.Issue

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Path is relative to the language folder, with forward slashes.
	Path string `json:"path"`
	// Content is the generated source.
	Content []byte `json:"-"`
}

// OwnedDir is a directory whose files of one extension are fully managed by
// the generator. Stale files there are removed before writing.
type OwnedDir struct {
	Dir string `json:"dir"`
	Ext string `json:"ext"`
}

// LanguageOutput is everything generated for one language.
type LanguageOutput struct {
	// Language is the project key, e.g. "typescript".
	Language string `json:"language"`
	// Name is the display name, e.g. "TypeScript".
	Name string `json:"name"`
	// Root is the language folder from the project file.
	Root    string          `json:"root"`
	Files   []GeneratedFile `json:"files,omitempty"`
	Owned   []OwnedDir      `json:"owned,omitempty"`
	Patches []patcher.Patch `json:"patches,omitempty"`
	Models  int             `json:"models"`
	Clients int             `json:"clients"`
	// Err is set when the language failed; Files is then empty.
	Err error `json:"-"`
}

// File returns the generated file with the given path, or nil if not found
func (o *LanguageOutput) File(path string) *GeneratedFile {
	for i := range o.Files {
		if o.Files[i].Path == path {
			return &o.Files[i]
		}
	}
	return nil
}

// GenerateResult contains the results of generating the SDKs
type GenerateResult struct {
	// Outputs holds one entry per requested language, in generation order.
	Outputs []LanguageOutput
	// Version is the version triplet written into the SDKs.
	Version apimodel.Version
	// Issues contains the model issues passed in plus generation issues
	Issues []GenerateIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// ErrorCount is the total number of errors (failed languages)
	ErrorCount int
	// GeneratedModels is the count of model files across languages
	GeneratedModels int
	// GeneratedClients is the count of client files across languages
	GeneratedClients int
	// GenerateTime is the time taken to generate code
	GenerateTime time.Duration

	logger parser.Logger
}

// HasErrors returns true if any language failed
func (r *GenerateResult) HasErrors() bool {
	return r.ErrorCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// Output returns the output for a language key, or nil.
func (r *GenerateResult) Output(language string) *LanguageOutput {
	for i := range r.Outputs {
		if r.Outputs[i].Language == language {
			return &r.Outputs[i]
		}
	}
	return nil
}

// addIssue appends an issue and keeps the counts in step.
func (r *GenerateResult) addIssue(issue GenerateIssue) {
	r.Issues = append(r.Issues, issue)
	r.recount()
}

func (r *GenerateResult) recount() {
	counts := issues.Count(r.Issues)
	r.InfoCount = counts[SeverityInfo]
	r.WarningCount = counts[SeverityWarning]
	r.ErrorCount = counts[SeverityError] + counts[SeverityCritical]
}

// Generator emits SDK sources for the languages configured in a project.
type Generator struct {
	// Project supplies metadata and per-language settings. Required.
	Project *project.Project

	// Languages restricts generation to these keys. Empty means every
	// language configured in Project.
	Languages []string

	// Renderer produces boilerplate files. Default: the built-in templates
	// with Project.TemplateDir as override directory.
	Renderer render.Renderer

	// Clock supplies the copyright year and the gemspec date.
	// Default: time.Now
	Clock func() time.Time

	// Logger receives progress and diagnostics. Default: parser.NopLogger
	Logger parser.Logger

	// Issues are carried into the result, typically the parser's.
	Issues []GenerateIssue
}

// New creates a new Generator for a project with default settings
func New(p *project.Project) *Generator {
	return &Generator{
		Project: p,
		Clock:   time.Now,
		Logger:  parser.NopLogger{},
	}
}

// Generate emits every language for api. Languages run concurrently; a
// language that fails is reported in its LanguageOutput and in Issues while
// the others complete. An error is returned only when nothing can be
// generated: invalid project, missing version or unknown language.
func (g *Generator) Generate(api *apimodel.APISchema) (*GenerateResult, error) {
	start := time.Now()

	if api == nil {
		return nil, fmt.Errorf("generator: API model is nil")
	}
	if g.Project == nil {
		return nil, &sdkerrors.ConfigError{Option: "project", Message: "is required"}
	}
	if err := g.Project.Validate(); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	if api.Semver4 == "" || api.Semver4 == apimodel.NoVersion {
		return nil, &sdkerrors.VersionError{Token: api.Semver4, Message: "API model has no version; nothing can be generated"}
	}

	langs, err := g.selectLanguages()
	if err != nil {
		return nil, err
	}

	logger := g.Logger
	if logger == nil {
		logger = parser.NopLogger{}
	}
	clock := g.Clock
	if clock == nil {
		clock = time.Now
	}
	renderer := g.Renderer
	if renderer == nil {
		renderer = render.New(g.Project.TemplateDir)
	}
	now := clock()

	outputs := make([]LanguageOutput, len(langs))
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, lang := range langs {
		eg.Go(func() error {
			outputs[i] = newEmitter(lang, api, g.Project, renderer, logger, now).run()
			return nil
		})
	}
	// Emitters report failure through their output.
	_ = eg.Wait()

	result := &GenerateResult{
		Outputs: outputs,
		Version: api.Version(),
		Issues:  append([]GenerateIssue(nil), g.Issues...),
		logger:  logger,
	}
	for _, out := range outputs {
		if out.Err != nil {
			result.Issues = append(result.Issues, GenerateIssue{
				Language: out.Language,
				Message:  out.Err.Error(),
				Severity: SeverityError,
			})
			continue
		}
		result.GeneratedModels += out.Models
		result.GeneratedClients += out.Clients
	}
	result.recount()
	result.GenerateTime = time.Since(start)

	logger.Info("generation complete",
		"languages", len(outputs),
		"models", result.GeneratedModels,
		"clients", result.GeneratedClients,
		"errors", result.ErrorCount,
		"duration", result.GenerateTime,
	)
	return result, nil
}

func (g *Generator) selectLanguages() ([]*Language, error) {
	keys := g.Languages
	if len(keys) == 0 {
		keys = g.Project.Languages()
	}

	requested := make(map[string]bool, len(keys))
	for _, key := range keys {
		lang := LookupLanguage(key)
		if lang == nil {
			return nil, &sdkerrors.ConfigError{Option: "languages", Value: key, Message: "unknown language"}
		}
		if g.Project.Language(lang.Key) == nil {
			return nil, &sdkerrors.ConfigError{Option: lang.Key, Message: "language is not configured in the project"}
		}
		requested[lang.Key] = true
	}

	var langs []*Language
	for _, lang := range languages {
		if requested[lang.Key] {
			langs = append(langs, lang)
		}
	}
	return langs, nil
}

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	// Input source (exactly one must be set)
	api    *apimodel.APISchema
	parsed *parser.ParseResult

	project   *project.Project
	languages []string
	renderer  render.Renderer
	clock     func() time.Time
	logger    parser.Logger
}

// GenerateWithOptions generates SDK sources using functional options.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithParsed(*parsed),
//	    generator.WithProject(proj),
//	    generator.WithLanguages("typescript", "python"),
//	)
func GenerateWithOptions(opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	g := New(cfg.project)
	g.Languages = cfg.languages
	g.Renderer = cfg.renderer
	if cfg.clock != nil {
		g.Clock = cfg.clock
	}
	if cfg.logger != nil {
		g.Logger = cfg.logger
	}

	api := cfg.api
	if cfg.parsed != nil {
		api = cfg.parsed.API
		g.Issues = cfg.parsed.Issues
	}
	return g.Generate(api)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// Validate exactly one input source is specified
	sourceCount := 0
	if cfg.api != nil {
		sourceCount++
	}
	if cfg.parsed != nil {
		sourceCount++
	}
	if sourceCount == 0 {
		return nil, &sdkerrors.ConfigError{Option: "input", Message: "must specify an input source (use WithAPI or WithParsed)"}
	}
	if sourceCount > 1 {
		return nil, &sdkerrors.ConfigError{Option: "input", Message: "must specify exactly one input source"}
	}
	if cfg.project == nil {
		return nil, &sdkerrors.ConfigError{Option: "project", Message: "is required (use WithProject)"}
	}

	return cfg, nil
}

// WithAPI specifies a built API model as the input source
func WithAPI(api *apimodel.APISchema) Option {
	return func(cfg *generateConfig) error {
		cfg.api = api
		return nil
	}
}

// WithParsed specifies a ParseResult as the input source. Its issues are
// carried into the GenerateResult.
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *generateConfig) error {
		if result.API == nil {
			return &sdkerrors.ConfigError{Option: "input", Message: "parse result has no API model"}
		}
		cfg.parsed = &result
		return nil
	}
}

// WithProject sets the project settings
func WithProject(p *project.Project) Option {
	return func(cfg *generateConfig) error {
		cfg.project = p
		return nil
	}
}

// WithLanguages restricts generation to the given language keys
// Default: every language configured in the project
func WithLanguages(keys ...string) Option {
	return func(cfg *generateConfig) error {
		for _, key := range keys {
			if LookupLanguage(key) == nil {
				return &sdkerrors.ConfigError{Option: "languages", Value: key, Message: "unknown language"}
			}
		}
		cfg.languages = keys
		return nil
	}
}

// WithRenderer replaces the boilerplate renderer
func WithRenderer(r render.Renderer) Option {
	return func(cfg *generateConfig) error {
		cfg.renderer = r
		return nil
	}
}

// WithClock sets the time source for the copyright year and gemspec date
// Default: time.Now
func WithClock(clock func() time.Time) Option {
	return func(cfg *generateConfig) error {
		if clock == nil {
			return &sdkerrors.ConfigError{Option: "clock", Message: "cannot be nil"}
		}
		cfg.clock = clock
		return nil
	}
}

// WithLogger sets the logger
// Default: parser.NopLogger
func WithLogger(l parser.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = l
		return nil
	}
}
