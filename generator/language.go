package generator

import (
	"bytes"
	"strings"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/internal/httputil"
	"github.com/erraggy/sdkgen/patcher"
	"github.com/erraggy/sdkgen/project"
)

// commentStyle describes a language's file header comment.
type commentStyle struct {
	Open  string
	Line  string
	Close string
}

var (
	blockComment  = commentStyle{Open: "/**", Line: " *", Close: " */"}
	csharpComment = commentStyle{Open: "/***", Line: " *", Close: " */"}
	hashComment   = commentStyle{Open: "#", Line: "#", Close: "#"}
)

// Boilerplate is a file produced by the template renderer.
type Boilerplate struct {
	// Template is the renderer name, e.g. "typescript/index.ts".
	Template string
	// Path is relative to the language folder.
	Path string
}

// Language is the declarative description of one target language. The
// pipeline in pipeline.go walks the API model once per Language.
type Language struct {
	// Key is the project file key, e.g. "typescript".
	Key string
	// Name is the display name used in headers and diagnostics.
	Name string
	// Ext is the source file extension, including the dot.
	Ext     string
	Comment commentStyle
	Types   TypeTable
	// Methods maps a lower-case HTTP method to the language's token for it.
	// A method missing here is unsupported.
	Methods map[string]string

	ModelsDir  func(s *project.Language) string
	ClientsDir func(s *project.Language) string
	ModelFile  func(name string) string
	ClientFile func(category string) string

	// WriteModel emits the body of a model file after the header.
	WriteModel func(e *emitter, buf *bytes.Buffer, item apimodel.SchemaItem)
	// WriteClient emits the body of a client file after the header.
	WriteClient func(e *emitter, buf *bytes.Buffer, category string, endpoints []apimodel.EndpointItem)

	Boilerplate func(s *project.Language) []Boilerplate
	// Patches lists the manifest edits, with paths relative to the
	// language folder.
	Patches func(e *emitter) []patcher.Patch
}

// supportedLocations are the parameter locations every emitter handles.
var supportedLocations = map[string]bool{
	apimodel.LocationPath:  true,
	apimodel.LocationQuery: true,
	apimodel.LocationBody:  true,
	apimodel.LocationForm:  true,
}

// methodTable builds a Methods map by applying fn to every standard method.
func methodTable(fn func(method string) string) map[string]string {
	m := make(map[string]string, len(httputil.Methods))
	for _, method := range httputil.Methods {
		m[method] = fn(method)
	}
	return m
}

// languages lists every supported language in generation order.
var languages = []*Language{
	typeScriptLanguage,
	csharpLanguage,
	javaLanguage,
	rubyLanguage,
	pythonLanguage,
}

// Languages returns the supported languages in generation order.
func Languages() []*Language {
	out := make([]*Language, len(languages))
	copy(out, languages)
	return out
}

// LookupLanguage returns the language with the given key, or nil.
func LookupLanguage(key string) *Language {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, l := range languages {
		if l.Key == key {
			return l
		}
	}
	return nil
}

// namespacePath turns a dotted Java package into a slash path.
func namespacePath(ns string) string {
	return strings.ReplaceAll(ns, ".", "/")
}
