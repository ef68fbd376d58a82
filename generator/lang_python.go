package generator

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/internal/naming"
	"github.com/erraggy/sdkgen/patcher"
	"github.com/erraggy/sdkgen/project"
)

// pythonDownload is the type returned by file download methods.
const pythonDownload = "Response"

var pythonLanguage = &Language{
	Key:     project.Python,
	Name:    "Python",
	Ext:     ".py",
	Comment: hashComment,
	Types: TypeTable{
		Primitives: map[string]string{
			"string":     "str",
			"uuid":       "str",
			"date":       "str",
			"date-time":  "str",
			"uri":        "str",
			"Uri":        "str",
			"email":      "str",
			"tel":        "str",
			"int32":      "int",
			"integer":    "int",
			"int64":      "int",
			"double":     "float",
			"float":      "float",
			"boolean":    "bool",
			"binary":     pythonDownload,
			"byte[]":     pythonDownload,
			"File":       "str",
			"object":     "object",
			timeoutAlias: apimodel.ErrorResultName,
		},
		Array:   func(elem string) string { return "list[" + elem + "]" },
		Generic: func(item string) string { return "FetchResult[" + item + "]" },
		Nullable: func(native string, nullable bool) string {
			if nullable {
				return native + " | None"
			}
			return native
		},
	},
	Methods:     methodTable(strings.ToUpper),
	ModelsDir:   func(s *project.Language) string { return "src/" + s.Namespace + "/models" },
	ClientsDir:  func(s *project.Language) string { return "src/" + s.Namespace + "/clients" },
	ModelFile:   func(name string) string { return naming.ToSnakeCase(name) + ".py" },
	ClientFile:  func(cat string) string { return naming.ToSnakeCase(cat) + "_client.py" },
	WriteModel:  writePythonModel,
	WriteClient: writePythonClient,
	Boilerplate: func(s *project.Language) []Boilerplate {
		dir := "src/" + s.Namespace + "/"
		return []Boilerplate{
			{Template: "python/api_client.py", Path: dir + naming.ProperCaseToSnakeCase(s.ClassName) + ".py"},
			{Template: "python/__init__.py", Path: dir + "__init__.py"},
		}
	},
	Patches: func(e *emitter) []patcher.Patch {
		return []patcher.Patch{{
			Path:        "setup.cfg",
			Pattern:     `version = [\d\.]+`,
			Replacement: "version = " + e.api.Semver3,
		}}
	},
}

// pythonImports turns import tokens into import statements.
func pythonImports(ns string, tokens []string) []string {
	var lines []string
	for _, t := range tokens {
		switch {
		case t == fetchResultSuffix:
			lines = append(lines, "from "+ns+".fetch_result import FetchResult")
		case isPrimitive(t):
		default:
			lines = append(lines, fmt.Sprintf("from %s.models.%s import %s", ns, naming.ToSnakeCase(t), t))
		}
	}
	return lines
}

// isDownload reports whether an endpoint returns raw file content.
func isDownload(ep apimodel.EndpointItem) bool {
	return isFileToken(ep.ReturnDataType.DataType)
}

func writePythonModel(e *emitter, buf *bytes.Buffer, item apimodel.SchemaItem) {
	fields := item.ActiveFields()

	// A self reference needs postponed annotations, which must come first.
	if slices.ContainsFunc(fields, func(f apimodel.SchemaField) bool { return f.DataType == item.Name }) {
		buf.WriteString("from __future__ import annotations\n")
	}
	buf.WriteString("from dataclasses import dataclass\n")
	writeLines(buf, pythonImports(e.settings.Namespace, e.imports(item.Name, fieldTypes(item)...))...)

	writeLines(buf,
		"",
		"@dataclass",
		"class "+item.Name+":",
	)
	buf.WriteString(PythonDoc(item.DescriptionMarkdown, 4, nil, nil))
	buf.WriteString("\n")
	for _, f := range fields {
		fmt.Fprintf(buf, "    %s: %s = None\n", f.Name, e.nullableTypeOf(f.DataType, f.IsArray, true))
	}
	buf.WriteString("\n")
}

func writePythonClient(e *emitter, buf *bytes.Buffer, category string, endpoints []apimodel.EndpointItem) {
	s := e.settings
	ns := s.Namespace

	var imports []string
	for _, ep := range endpoints {
		var types []string
		for _, p := range ep.Parameters {
			types = append(types, p.DataType)
		}
		if isDownload(ep) {
			imports = append(imports, "from requests.models import Response")
		} else {
			types = append(types, ep.ReturnDataType.DataType)
		}
		imports = append(imports, pythonImports(ns, e.imports("", types...))...)
	}
	slices.Sort(imports)
	imports = slices.Compact(imports)

	writeLines(buf,
		fmt.Sprintf("from %s.%s import %s", ns, naming.ProperCaseToSnakeCase(s.ResponseClass), s.ResponseClass),
		fmt.Sprintf("from %s.models.%s import %s", ns, naming.ToSnakeCase(apimodel.ErrorResultName), apimodel.ErrorResultName),
	)
	for _, line := range imports {
		// ErrorResult is always imported above.
		if !strings.HasSuffix(line, " import "+apimodel.ErrorResultName) {
			buf.WriteString(line + "\n")
		}
	}

	writeLines(buf,
		"",
		"class "+category+"Client:",
		`    """`,
		"    API methods related to "+category,
		`    """`,
		fmt.Sprintf("    from %s.%s import %s", ns, naming.ProperCaseToSnakeCase(s.ClassName), s.ClassName),
		"",
		"    def __init__(self, client: "+s.ClassName+"):",
		"        self.client = client",
	)

	paramType := func(p apimodel.ParameterField) string { return e.typeOf(p.DataType, p.IsArray) }
	for _, ep := range endpoints {
		params := ep.OrderedParameters()
		result := e.typeOf(ep.ReturnDataType.DataType, ep.ReturnDataType.IsArray)
		ret := pythonDownload
		if !isDownload(ep) {
			ret = s.ResponseClass + "[" + result + "]"
		}

		args := []string{"self"}
		for _, p := range params {
			if p.Required {
				args = append(args, p.Name+": "+paramType(p))
			} else {
				args = append(args, p.Name+": "+paramType(p)+" | None = None")
			}
		}

		buf.WriteString("\n")
		fmt.Fprintf(buf, "    def %s(%s) -> %s:\n", naming.ToSnakeCase(ep.Name), strings.Join(args, ", "), ret)
		buf.WriteString(PythonDoc(ep.DescriptionMarkdown, 8, params, paramType))
		if strings.Contains(ep.Path, "{") {
			buf.WriteString("        path = f\"" + ep.Path + "\"\n")
		} else {
			buf.WriteString("        path = \"" + ep.Path + "\"\n")
		}

		body, query, file := "None", "None", "None"
		if ep.HasLocation(apimodel.LocationBody) {
			body = ep.ParametersIn(apimodel.LocationBody)[0].Name
		}
		if q := ep.ParametersIn(apimodel.LocationQuery); len(q) > 0 {
			pairs := make([]string, 0, len(q))
			for _, p := range q {
				pairs = append(pairs, fmt.Sprintf("%q: %s", p.Name, p.Name))
			}
			query = "{" + strings.Join(pairs, ", ") + "}"
		}
		if ep.HasLocation(apimodel.LocationForm) {
			file = ep.ParametersIn(apimodel.LocationForm)[0].Name
		}
		fmt.Fprintf(buf, "        result = self.client.send_request(%q, path, %s, %s, %s)\n", e.method(ep), body, query, file)

		if isDownload(ep) {
			buf.WriteString("        return result\n")
			continue
		}
		writeLines(buf,
			"        if result.status_code >= 200 and result.status_code < 300:",
			fmt.Sprintf("            return %s(True, result.status_code, %s(**result.json()), None)", s.ResponseClass, result),
			"        else:",
			fmt.Sprintf("            return %s(False, result.status_code, None, %s(**result.json()))", s.ResponseClass, apimodel.ErrorResultName),
		)
	}
}
