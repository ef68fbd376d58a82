package generator

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/internal/naming"
	"github.com/erraggy/sdkgen/patcher"
	"github.com/erraggy/sdkgen/project"
)

// rubyReserved are names that cannot be used as keyword arguments. include
// is not reserved but shadows Module#include inside the generated methods.
var rubyReserved = map[string]bool{
	"BEGIN": true, "END": true, "alias": true, "and": true, "begin": true,
	"break": true, "case": true, "class": true, "def": true, "defined?": true,
	"do": true, "else": true, "elsif": true, "end": true, "ensure": true,
	"false": true, "for": true, "if": true, "in": true, "include": true,
	"module": true, "next": true, "nil": true, "not": true, "or": true,
	"redo": true, "rescue": true, "retry": true, "return": true, "self": true,
	"super": true, "then": true, "true": true, "undef": true, "unless": true,
	"until": true, "when": true, "while": true, "yield": true,
}

// RubyVariableName converts a parameter name to a Ruby identifier, renaming
// reserved words with a "_param" suffix.
func RubyVariableName(name string) string {
	snake := naming.ProperCaseToSnakeCase(name)
	if rubyReserved[snake] {
		return snake + "_param"
	}
	return snake
}

var rubyLanguage = &Language{
	Key:     project.Ruby,
	Name:    "Ruby",
	Ext:     ".rb",
	Comment: hashComment,
	// Ruby has no type syntax; the table produces the hints used in rdoc.
	Types: TypeTable{
		Primitives: map[string]string{
			"string":     "string",
			"uuid":       "uuid",
			"date":       "date",
			"date-time":  "date-time",
			"uri":        "uri",
			"email":      "email",
			"int32":      "int32",
			"integer":    "integer",
			"double":     "double",
			"float":      "float",
			"boolean":    "boolean",
			"object":     "object",
			timeoutAlias: apimodel.ErrorResultName,
		},
		Unknown: naming.ToProperCase,
	},
	Methods:     methodTable(func(method string) string { return ":" + method }),
	ModelsDir:   func(s *project.Language) string { return "lib/" + s.Namespace + "/models" },
	ClientsDir:  func(s *project.Language) string { return "lib/" + s.Namespace + "/clients" },
	ModelFile:   func(name string) string { return naming.ProperCaseToSnakeCase(name) + ".rb" },
	ClientFile:  func(cat string) string { return naming.ProperCaseToSnakeCase(cat) + "_client.rb" },
	WriteModel:  writeRubyModel,
	WriteClient: writeRubyClient,
	Boilerplate: func(s *project.Language) []Boilerplate {
		return []Boilerplate{
			{Template: "ruby/api_client.rb", Path: "lib/" + s.Namespace + "/" + naming.ProperCaseToSnakeCase(s.ClassName) + ".rb"},
		}
	},
	Patches: func(e *emitter) []patcher.Patch {
		module := e.settings.ModuleName
		gemspec := module + ".gemspec"
		return []patcher.Patch{
			{
				Path:        "lib/" + e.settings.Namespace + "/version.rb",
				Pattern:     `VERSION = "[\d\.]+"`,
				Replacement: fmt.Sprintf(`VERSION = "%s"`, e.api.Semver4),
			},
			{
				Path:        gemspec,
				Pattern:     `s.version = '[\d\.]+'`,
				Replacement: fmt.Sprintf(`s.version = '%s'`, e.api.Semver4),
			},
			{
				Path:        gemspec,
				Pattern:     `s.date = '[\d-]+'`,
				Replacement: fmt.Sprintf(`s.date = '%s'`, e.now.Format(time.DateOnly)),
			},
			{
				Path:        "Gemfile.lock",
				Pattern:     regexp.QuoteMeta(module) + ` \([\d\.]+\)`,
				Replacement: fmt.Sprintf("%s (%s)", module, e.api.Semver4),
			},
		}
	},
}

func (e *emitter) rubyHint(token string) string {
	return e.lang.Types.Map(e.api, token, false)
}

func writeRubyModel(e *emitter, buf *bytes.Buffer, item apimodel.SchemaItem) {
	name := naming.ToProperCase(item.Name)
	fields := item.ActiveFields()

	writeLines(buf,
		"require 'json'",
		"",
		"module "+e.settings.ModuleName,
		"",
	)
	buf.WriteString(RubyDoc(item.DescriptionMarkdown, 4, nil, nil, nil))
	writeLines(buf,
		"    class "+name,
		"",
		"        ##",
		"        # Initialize the "+name+" using the provided prototype",
		"        def initialize(params = {})",
	)
	for _, f := range fields {
		v := naming.ProperCaseToSnakeCase(f.Name)
		fmt.Fprintf(buf, "            @%s = params.dig(:%s)\n", v, v)
	}
	writeLines(buf,
		"        end",
		"",
	)

	for _, f := range fields {
		doc := fmt.Sprintf("        # @return [%s] %s", e.rubyHint(f.DataType), naming.ToSingleLine(f.DescriptionMarkdown))
		writeLines(buf,
			"        ##",
			strings.TrimRight(doc, " "),
			"        attr_accessor :"+naming.ProperCaseToSnakeCase(f.Name),
			"",
		)
	}

	writeLines(buf,
		"        ##",
		"        # @return [object] This object as a JSON key-value structure",
		"        def as_json(options={})",
		"            {",
	)
	for _, f := range fields {
		fmt.Fprintf(buf, "                '%s' => @%s,\n", f.Name, naming.ProperCaseToSnakeCase(f.Name))
	}
	writeLines(buf,
		"            }",
		"        end",
		"",
		"        ##",
		"        # @return [String] This object converted to a JSON string",
		"        def to_json(*options)",
		`            "[#{as_json(*options).to_json(*options)}]"`,
		"        end",
		"    end",
		"end",
	)
}

func writeRubyClient(e *emitter, buf *bytes.Buffer, category string, endpoints []apimodel.EndpointItem) {
	class := naming.ToProperCase(category) + "Client"
	writeLines(buf,
		"require 'awrence'",
		"",
		"class "+class,
		"",
		"    ##",
		"    # Initialize the "+class+" class with an API client instance.",
		"    # @param connection ["+e.settings.ClassName+"] The API client object for this connection",
		"    def initialize(connection)",
		"        @connection = connection",
		"    end",
	)

	for _, ep := range endpoints {
		params := ep.OrderedParameters()
		buf.WriteString("\n")
		buf.WriteString(RubyDoc(ep.DescriptionMarkdown, 4, params, e.rubyHint, RubyVariableName))

		args := make([]string, 0, len(params))
		path := ep.Path
		for _, p := range params {
			v := RubyVariableName(p.Name)
			if p.Required {
				args = append(args, v+":")
			} else {
				args = append(args, v+": nil")
			}
			if p.Location == apimodel.LocationPath {
				path = strings.ReplaceAll(path, "{"+p.Name+"}", "#{"+v+"}")
			}
		}

		fmt.Fprintf(buf, "    def %s(%s)\n", naming.ToSnakeCase(ep.Name), strings.Join(args, ", "))
		buf.WriteString("        path = \"" + path + "\"\n")

		query := "nil"
		if q := ep.ParametersIn(apimodel.LocationQuery); len(q) > 0 {
			query = "params"
			pairs := make([]string, 0, len(q))
			for _, p := range q {
				pairs = append(pairs, fmt.Sprintf(":%s => %s", p.Name, RubyVariableName(p.Name)))
			}
			buf.WriteString("        params = {" + strings.Join(pairs, ", ") + "}\n")
		}

		body := "nil"
		if b := ep.ParametersIn(apimodel.LocationBody); len(b) > 0 {
			body = RubyVariableName(b[0].Name)
			if b[0].DataType == apimodel.ObjectType {
				body += ".to_camelback_keys.to_json"
			}
		}
		if form := ep.ParametersIn(apimodel.LocationForm); len(form) > 0 {
			fmt.Fprintf(buf, "        @connection.request(%s, path, %s, %s, %s)\n", e.method(ep), body, query, RubyVariableName(form[0].Name))
		} else {
			fmt.Fprintf(buf, "        @connection.request(%s, path, %s, %s)\n", e.method(ep), body, query)
		}
		buf.WriteString("    end\n")
	}
	buf.WriteString("end\n")
}
