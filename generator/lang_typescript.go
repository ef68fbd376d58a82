package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/internal/naming"
	"github.com/erraggy/sdkgen/patcher"
	"github.com/erraggy/sdkgen/project"
)

var typeScriptLanguage = &Language{
	Key:     project.TypeScript,
	Name:    "TypeScript",
	Ext:     ".ts",
	Comment: blockComment,
	Types: TypeTable{
		Primitives: map[string]string{
			"string":     "string",
			"uuid":       "string",
			"date":       "string",
			"date-time":  "string",
			"uri":        "string",
			"Uri":        "string",
			"email":      "string",
			"tel":        "string",
			"int32":      "number",
			"integer":    "number",
			"int64":      "number",
			"double":     "number",
			"float":      "number",
			"boolean":    "boolean",
			"binary":     "Blob",
			"File":       "string",
			"object":     "object",
			timeoutAlias: apimodel.ErrorResultName,
		},
		Array:   func(elem string) string { return elem + "[]" },
		Generic: func(item string) string { return "FetchResult<" + item + ">" },
		Nullable: func(native string, nullable bool) string {
			if nullable {
				return native + " | null"
			}
			return native
		},
	},
	Methods:     methodTable(strings.ToUpper),
	ModelsDir:   func(*project.Language) string { return "src/models" },
	ClientsDir:  func(*project.Language) string { return "src/clients" },
	ModelFile:   func(name string) string { return name + ".ts" },
	ClientFile:  func(cat string) string { return cat + "Client.ts" },
	WriteModel:  writeTypeScriptModel,
	WriteClient: writeTypeScriptClient,
	Boilerplate: func(s *project.Language) []Boilerplate {
		return []Boilerplate{
			{Template: "typescript/ApiClient.ts", Path: "src/" + s.ClassName + ".ts"},
			{Template: "typescript/index.ts", Path: "src/index.ts"},
		}
	},
	Patches: func(e *emitter) []patcher.Patch {
		return []patcher.Patch{{
			Path:        "package.json",
			Pattern:     `"version": "[\d\.]+",`,
			Replacement: fmt.Sprintf(`"version": "%s",`, e.api.Semver3),
		}}
	},
}

// typeScriptImports turns import tokens into import statements.
func typeScriptImports(tokens []string) []string {
	var lines []string
	for _, t := range tokens {
		switch {
		case t == "binary":
			lines = append(lines, `import { Blob } from "buffer";`)
		case isPrimitive(t):
		default:
			lines = append(lines, fmt.Sprintf(`import { %s } from "..";`, t))
		}
	}
	return lines
}

func writeTypeScriptModel(e *emitter, buf *bytes.Buffer, item apimodel.SchemaItem) {
	if imports := typeScriptImports(e.imports(item.Name, fieldTypes(item)...)); len(imports) > 0 {
		writeLines(buf, imports...)
		buf.WriteString("\n")
	}

	buf.WriteString(JavaDoc(item.DescriptionMarkdown, 0, "", nil))
	buf.WriteString("export type " + item.Name + " = {\n")
	for _, f := range item.ActiveFields() {
		buf.WriteString("\n")
		buf.WriteString(JavaDoc(f.DescriptionMarkdown, 2, "", nil))
		fmt.Fprintf(buf, "  %s: %s;\n", f.Name, e.nullableTypeOf(f.DataType, f.IsArray, f.Nullable))
	}
	buf.WriteString("};\n")
}

func writeTypeScriptClient(e *emitter, buf *bytes.Buffer, category string, endpoints []apimodel.EndpointItem) {
	s := e.settings
	writeLines(buf,
		fmt.Sprintf(`import { %s } from "..";`, s.ClassName),
		fmt.Sprintf(`import { %s } from "..";`, s.ResponseClass),
	)
	writeLines(buf, typeScriptImports(e.imports("", endpointTypes(endpoints)...))...)
	buf.WriteString("\n")

	writeLines(buf,
		"export class "+category+"Client {",
		"  private readonly client: "+s.ClassName+";",
		"",
		"  /**",
		"   * Internal constructor for this client library",
		"   */",
		"  public constructor(client: "+s.ClassName+") {",
		"    this.client = client;",
		"  }",
	)

	for _, ep := range endpoints {
		params := ep.OrderedParameters()
		buf.WriteString("\n")
		buf.WriteString(JavaDoc(ep.DescriptionMarkdown, 2, "", params))

		args := make([]string, 0, len(params))
		for _, p := range params {
			optional := ""
			if !p.Required {
				optional = "?"
			}
			args = append(args, fmt.Sprintf("%s%s: %s", p.Name, optional, e.typeOf(p.DataType, p.IsArray)))
		}
		ret := e.typeOf(ep.ReturnDataType.DataType, ep.ReturnDataType.IsArray)
		fmt.Fprintf(buf, "  %s(%s): Promise<%s<%s>> {\n", naming.ToCamelCase(ep.Name), strings.Join(args, ", "), s.ResponseClass, ret)
		buf.WriteString("    const url = `" + strings.ReplaceAll(ep.Path, "{", "${") + "`;\n")

		options := "null"
		if query := ep.ParametersIn(apimodel.LocationQuery); len(query) > 0 {
			options = "options"
			buf.WriteString("    const options = {\n      params: {\n")
			for _, q := range query {
				buf.WriteString("        " + q.Name + ",\n")
			}
			buf.WriteString("      },\n    };\n")
		}

		payload := "null"
		switch {
		case ep.HasLocation(apimodel.LocationForm):
			payload = ep.ParametersIn(apimodel.LocationForm)[0].Name
		case ep.HasLocation(apimodel.LocationBody):
			payload = ep.ParametersIn(apimodel.LocationBody)[0].Name
		}

		call := "request<" + ret + ">"
		switch {
		case ret == "Blob":
			call = "requestBlob"
		case ep.HasLocation(apimodel.LocationForm):
			call = "fileUpload<" + ret + ">"
		}
		fmt.Fprintf(buf, "    return this.client.%s(%q, url, %s, %s);\n", call, e.method(ep), options, payload)
		buf.WriteString("  }\n")
	}
	buf.WriteString("}\n")
}
