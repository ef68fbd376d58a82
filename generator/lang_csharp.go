package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/internal/naming"
	"github.com/erraggy/sdkgen/project"
)

// dateOnlyNote is appended to the docs of date fields, which C# carries as
// strings.
const dateOnlyNote = "This is a date-only field stored as a string in ISO 8601 (YYYY-MM-DD) format."

// csharpValueTypes are the native types that need "?" to accept null.
var csharpValueTypes = map[string]bool{
	"decimal":  true,
	"bool":     true,
	"int":      true,
	"int64":    true,
	"Guid":     true,
	"DateTime": true,
}

// csharpNullable adds or removes the trailing "?" of a value type.
func csharpNullable(native string, nullable bool) string {
	native = strings.TrimSuffix(native, "?")
	if nullable && csharpValueTypes[native] {
		return native + "?"
	}
	return native
}

var csharpLanguage = &Language{
	Key:     project.CSharp,
	Name:    "C#",
	Ext:     ".cs",
	Comment: csharpComment,
	Types: TypeTable{
		Primitives: map[string]string{
			"string":     "string",
			"uuid":       "Guid",
			"date":       "string",
			"date-time":  "DateTime",
			"uri":        "string",
			"Uri":        "string",
			"email":      "string",
			"tel":        "string",
			"int32":      "int",
			"integer":    "int",
			"int64":      "int64",
			"double":     "decimal",
			"float":      "decimal",
			"boolean":    "bool",
			"binary":     "byte[]",
			"File":       "string",
			"object":     "object",
			timeoutAlias: apimodel.ErrorResultName,
		},
		Array:    func(elem string) string { return elem + "[]" },
		Generic:  func(item string) string { return "FetchResult<" + item + ">" },
		Nullable: csharpNullable,
	},
	Methods: methodTable(func(method string) string {
		if method == "patch" {
			return `new HttpMethod("PATCH")`
		}
		return "HttpMethod." + naming.ToProperCase(method)
	}),
	ModelsDir:   func(*project.Language) string { return "src/Models" },
	ClientsDir:  func(*project.Language) string { return "src/Clients" },
	ModelFile:   func(name string) string { return name + ".cs" },
	ClientFile:  func(cat string) string { return cat + "Client.cs" },
	WriteModel:  writeCSharpModel,
	WriteClient: writeCSharpClient,
	Boilerplate: func(s *project.Language) []Boilerplate {
		return []Boilerplate{
			{Template: "csharp/ApiClient.cs", Path: "src/" + s.ClassName + ".cs"},
			{Template: "csharp/sdk.nuspec", Path: s.ClassName + ".nuspec"},
		}
	},
}

func writeCSharpModel(e *emitter, buf *bytes.Buffer, item apimodel.SchemaItem) {
	writeLines(buf,
		"#pragma warning disable CS8618",
		"",
		"using System;",
		"",
		"namespace "+e.settings.Namespace+".Models",
		"{",
		"",
	)
	buf.WriteString(XMLDoc(item.DescriptionMarkdown, 4, nil))
	writeLines(buf,
		"    public class "+item.Name,
		"    {",
	)
	for _, f := range item.ActiveFields() {
		native := e.nullableTypeOf(f.DataType, f.IsArray, f.Nullable)
		doc := f.DescriptionMarkdown
		if f.DataType == "date" && native == "string" {
			doc += "\n\n" + dateOnlyNote
		}

		buf.WriteString("\n")
		buf.WriteString(XMLDoc(doc, 8, nil))
		fmt.Fprintf(buf, "        public %s %s { get; set; }\n", csharpNullable(native, true), naming.ToProperCase(f.Name))
	}
	writeLines(buf,
		"    }",
		"}",
	)
}

func writeCSharpClient(e *emitter, buf *bytes.Buffer, category string, endpoints []apimodel.EndpointItem) {
	s := e.settings
	writeLines(buf,
		"using System;",
		"using System.Collections.Generic;",
		"using System.Net.Http;",
		"using System.Threading.Tasks;",
		"using "+s.Namespace+".Models;",
		"",
		"",
		"namespace "+s.Namespace+".Clients",
		"{",
		"    /// <summary>",
		"    /// API methods related to "+category,
		"    /// </summary>",
		"    public class "+category+"Client",
		"    {",
		"        private readonly "+s.ClassName+" _client;",
		"",
		"        /// <summary>",
		"        /// Constructor",
		"        /// </summary>",
		"        public "+category+"Client("+s.ClassName+" client)",
		"        {",
		"            _client = client;",
		"        }",
	)

	for _, ep := range endpoints {
		params := ep.OrderedParameters()
		buf.WriteString("\n")
		buf.WriteString(XMLDoc(ep.DescriptionMarkdown, 8, params))

		args := make([]string, 0, len(params))
		for _, p := range params {
			nullable := !p.Required || p.Nullable
			arg := e.nullableTypeOf(p.DataType, p.IsArray, nullable) + " " + p.Name
			if nullable {
				arg += " = null"
			}
			args = append(args, arg)
		}

		// The response envelope already covers a null result.
		ret := e.nullableTypeOf(ep.ReturnDataType.DataType, ep.ReturnDataType.IsArray, false)
		fmt.Fprintf(buf, "        public async Task<%s<%s>> %s(%s)\n", s.ResponseClass, ret, naming.ToProperCase(ep.Name), strings.Join(args, ", "))
		buf.WriteString("        {\n")
		buf.WriteString("            var url = $\"" + ep.Path + "\";\n")

		query := ep.ParametersIn(apimodel.LocationQuery)
		if len(query) > 0 {
			buf.WriteString("            var options = new Dictionary<string, object>();\n")
			for _, q := range query {
				if q.Required {
					fmt.Fprintf(buf, "            options[\"%s\"] = %s;\n", q.Name, q.Name)
				} else {
					fmt.Fprintf(buf, "            if (%s != null) { options[\"%s\"] = %s; }\n", q.Name, q.Name, q.Name)
				}
			}
		}

		options, body, file := "null", "null", "null"
		if len(query) > 0 {
			options = "options"
		}
		if ep.HasLocation(apimodel.LocationBody) {
			body = ep.ParametersIn(apimodel.LocationBody)[0].Name
		}
		if ep.HasLocation(apimodel.LocationForm) {
			file = ep.ParametersIn(apimodel.LocationForm)[0].Name
		}
		fmt.Fprintf(buf, "            return await _client.Request<%s>(%s, url, %s, %s, %s);\n", ret, e.method(ep), options, body, file)
		buf.WriteString("        }\n")
	}

	writeLines(buf,
		"    }",
		"}",
	)
}
