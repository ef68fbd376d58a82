// Package render produces the boilerplate files of each SDK (root client,
// package index, package metadata) from text/template sources.
//
// Built-in templates are embedded in the binary. A project may point at an
// override directory; a file there named "<language>/<name>.tmpl" replaces the
// built-in template of the same name.
//
// Templates receive a Data value and may use the functions in Funcs.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"text/template"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/internal/naming"
	"github.com/erraggy/sdkgen/project"
)

//go:embed templates/*/*.tmpl
var templateFS embed.FS

const templateExt = ".tmpl"

// ErrTemplateNotFound is wrapped when neither the override directory nor the
// built-in set has the requested template.
var ErrTemplateNotFound = errors.New("template not found")

// Renderer renders a named template.
type Renderer interface {
	Render(name string, data any) ([]byte, error)
}

// Data is the value passed to every boilerplate template.
type Data struct {
	Project  *project.Project
	Settings *project.Language
	API      *apimodel.APISchema
	// Header is the language's file header comment, ready to print.
	Header string
	Year   int
	// Date is the generation date as YYYY-MM-DD.
	Date string
}

// Funcs provides custom functions for templates.
var Funcs = template.FuncMap{
	// String manipulation
	"quote":      strconv.Quote,
	"join":       strings.Join,
	"upper":      strings.ToUpper,
	"lower":      strings.ToLower,
	"replace":    strings.ReplaceAll,
	"xml":        html.EscapeString,
	"singleLine": naming.ToSingleLine,

	// Identifier case
	"camel":       naming.ToCamelCase,
	"proper":      naming.ToProperCase,
	"snake":       naming.ToSnakeCase,
	"properSnake": naming.ProperCaseToSnakeCase,
}

// TemplateRenderer renders the embedded templates, preferring files from
// OverrideDir when present. It is safe for concurrent use.
type TemplateRenderer struct {
	// OverrideDir holds replacement templates. Empty means built-ins only.
	OverrideDir string

	mu    sync.Mutex
	cache map[string]*template.Template
}

// New returns a TemplateRenderer. overrideDir may be empty.
func New(overrideDir string) *TemplateRenderer {
	return &TemplateRenderer{OverrideDir: overrideDir}
}

var _ Renderer = (*TemplateRenderer)(nil)

// Render executes the template called name, e.g. "typescript/index.ts".
func (r *TemplateRenderer) Render(name string, data any) ([]byte, error) {
	tmpl, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render: executing %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (r *TemplateRenderer) lookup(name string) (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.cache[name]; ok {
		return tmpl, nil
	}

	text, err := r.source(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(name).Funcs(Funcs).Parse(string(text))
	if err != nil {
		return nil, fmt.Errorf("render: parsing %s: %w", name, err)
	}

	if r.cache == nil {
		r.cache = make(map[string]*template.Template)
	}
	r.cache[name] = tmpl
	return tmpl, nil
}

func (r *TemplateRenderer) source(name string) ([]byte, error) {
	if r.OverrideDir != "" {
		data, err := os.ReadFile(filepath.Join(r.OverrideDir, filepath.FromSlash(name)+templateExt))
		switch {
		case err == nil:
			return data, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("render: reading override for %s: %w", name, err)
		}
	}

	data, err := templateFS.ReadFile(path.Join("templates", name+templateExt))
	if err != nil {
		return nil, fmt.Errorf("render: %s: %w", name, ErrTemplateNotFound)
	}
	return data, nil
}

// Names lists the built-in template names in sorted order.
func Names() []string {
	matches, _ := fs.Glob(templateFS, "templates/*/*"+templateExt)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(m, "templates/"), templateExt))
	}
	sort.Strings(names)
	return names
}
