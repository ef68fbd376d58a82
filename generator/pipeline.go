package generator

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/parser"
	"github.com/erraggy/sdkgen/project"
	"github.com/erraggy/sdkgen/render"
	"github.com/erraggy/sdkgen/sdkerrors"
)

// emitter holds everything one language needs while walking the model. It
// only reads the model, so emitters for different languages run in
// parallel.
type emitter struct {
	lang     *Language
	api      *apimodel.APISchema
	project  *project.Project
	settings *project.Language
	renderer render.Renderer
	logger   parser.Logger
	now      time.Time
	header   string
}

func newEmitter(lang *Language, api *apimodel.APISchema, p *project.Project, r render.Renderer, logger parser.Logger, now time.Time) *emitter {
	e := &emitter{
		lang:     lang,
		api:      api,
		project:  p,
		settings: p.Language(lang.Key),
		renderer: r,
		logger:   logger.With("language", lang.Key),
		now:      now,
	}
	e.header = e.fileHeader()
	return e
}

// run produces every file for the language. On failure the output carries
// the error and no files.
func (e *emitter) run() LanguageOutput {
	out := LanguageOutput{
		Language: e.lang.Key,
		Name:     e.lang.Name,
		Root:     e.settings.Folder,
	}

	if err := e.validate(); err != nil {
		e.logger.Error("language skipped", "error", err)
		out.Err = err
		return out
	}

	modelsDir := e.lang.ModelsDir(e.settings)
	for _, item := range e.api.Models() {
		out.Files = append(out.Files, GeneratedFile{
			Path:    path.Join(modelsDir, e.lang.ModelFile(item.Name)),
			Content: e.model(item),
		})
		out.Models++
	}

	clientsDir := e.lang.ClientsDir(e.settings)
	for _, cat := range e.api.Categories {
		out.Files = append(out.Files, GeneratedFile{
			Path:    path.Join(clientsDir, e.lang.ClientFile(cat)),
			Content: e.client(cat),
		})
		out.Clients++
	}

	data := e.renderData()
	for _, b := range e.lang.Boilerplate(e.settings) {
		content, err := e.renderer.Render(b.Template, data)
		if err != nil {
			e.logger.Error("boilerplate failed", "template", b.Template, "error", err)
			return LanguageOutput{Language: out.Language, Name: out.Name, Root: out.Root,
				Err: fmt.Errorf("generator: %s: %w", e.lang.Name, err)}
		}
		out.Files = append(out.Files, GeneratedFile{Path: b.Path, Content: content})
	}

	out.Owned = []OwnedDir{
		{Dir: modelsDir, Ext: e.lang.Ext},
		{Dir: clientsDir, Ext: e.lang.Ext},
	}
	if e.lang.Patches != nil {
		out.Patches = e.lang.Patches(e)
	}

	e.logger.Debug("language emitted", "files", len(out.Files), "patches", len(out.Patches))
	return out
}

// validate rejects methods and parameter locations the language cannot
// express before any file is produced.
func (e *emitter) validate() error {
	for _, ep := range e.api.Endpoints {
		if ep.Deprecated {
			continue
		}
		if _, ok := e.lang.Methods[strings.ToLower(ep.Method)]; !ok {
			return &sdkerrors.UnsupportedError{Language: e.lang.Name, Kind: "http method", Value: ep.Method, Endpoint: ep.String()}
		}
		for _, p := range ep.Parameters {
			if !supportedLocations[p.Location] {
				return &sdkerrors.UnsupportedError{Language: e.lang.Name, Kind: "parameter location", Value: p.Location, Endpoint: ep.String()}
			}
		}
	}
	return nil
}

func (e *emitter) model(item apimodel.SchemaItem) []byte {
	entries := len(item.Fields)
	buf := getFileBuffer(entries)
	defer putFileBuffer(buf, entries)

	buf.WriteString(e.header)
	buf.WriteString("\n")
	e.lang.WriteModel(e, buf, item)
	return detach(buf)
}

func (e *emitter) client(category string) []byte {
	endpoints := e.api.EndpointsIn(category)
	buf := getFileBuffer(len(endpoints))
	defer putFileBuffer(buf, len(endpoints))

	buf.WriteString(e.header)
	buf.WriteString("\n")
	e.lang.WriteClient(e, buf, category, endpoints)
	return detach(buf)
}

// method returns the language token for an endpoint's HTTP method. The
// method was checked by validate.
func (e *emitter) method(ep apimodel.EndpointItem) string {
	return e.lang.Methods[strings.ToLower(ep.Method)]
}

// typeOf maps a type token without nullability.
func (e *emitter) typeOf(token string, isArray bool) string {
	return e.lang.Types.Map(e.api, token, isArray)
}

// nullableTypeOf maps a type token with the language's nullability rule.
func (e *emitter) nullableTypeOf(token string, isArray, nullable bool) string {
	return e.lang.Types.MapNullable(e.api, token, isArray, nullable)
}

// imports returns the import tokens for a set of data types; see
// importTokens.
func (e *emitter) imports(self string, dataTypes ...string) []string {
	return importTokens(e.api, self, dataTypes...)
}

// endpointTypes lists the parameter and return types of endpoints.
func endpointTypes(endpoints []apimodel.EndpointItem) []string {
	var types []string
	for _, ep := range endpoints {
		types = append(types, ep.ReturnDataType.DataType)
		for _, p := range ep.Parameters {
			types = append(types, p.DataType)
		}
	}
	return types
}

// fieldTypes lists the types of the active fields of an item.
func fieldTypes(item apimodel.SchemaItem) []string {
	var types []string
	for _, f := range item.ActiveFields() {
		types = append(types, f.DataType)
	}
	return types
}

// fileHeader renders the copyright banner printed at the top of every
// generated file.
func (e *emitter) fileHeader() string {
	copyright := e.project.Copyright(e.now.Year())
	author := e.project.AuthorName
	if e.project.AuthorEmail != "" {
		author += " <" + e.project.AuthorEmail + ">"
	}

	lines := []string{
		e.project.ProjectName + " for " + e.lang.Name,
		"",
		copyright,
		"",
		"For the full copyright and license information, please view the LICENSE",
		"file that was distributed with this source code.",
		"",
		"@author     " + author,
		"@copyright  " + strings.TrimPrefix(copyright, "(c) "),
		"@link       " + e.settings.GithubURL,
	}

	style := e.lang.Comment
	var b strings.Builder
	b.WriteString(style.Open + "\n")
	for _, line := range lines {
		b.WriteString(strings.TrimRight(style.Line+" "+line, " ") + "\n")
	}
	b.WriteString(style.Close + "\n")
	return b.String()
}

func (e *emitter) renderData() render.Data {
	return render.Data{
		Project:  e.project,
		Settings: e.settings,
		API:      e.api,
		Header:   e.header,
		Year:     e.now.Year(),
		Date:     e.now.Format(time.DateOnly),
	}
}

// writeLines writes each line followed by a newline.
func writeLines(buf *bytes.Buffer, lines ...string) {
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
}
