package generator

import (
	"bytes"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/internal/naming"
	"github.com/erraggy/sdkgen/patcher"
	"github.com/erraggy/sdkgen/project"
)

// javaBlob is the native type of raw file content.
const javaBlob = "byte[]"

var javaLanguage = &Language{
	Key:     project.Java,
	Name:    "Java",
	Ext:     ".java",
	Comment: blockComment,
	Types: TypeTable{
		Primitives: map[string]string{
			"string":     "String",
			"uuid":       "String",
			"date":       "String",
			"date-time":  "String",
			"uri":        "String",
			"Uri":        "String",
			"email":      "String",
			"tel":        "String",
			"int32":      "Integer",
			"integer":    "Integer",
			"int64":      "Long",
			"double":     "Double",
			"float":      "Float",
			"boolean":    "Boolean",
			"binary":     javaBlob,
			"File":       javaBlob,
			"object":     "Object",
			timeoutAlias: apimodel.ErrorResultName,
		},
		Array:   func(elem string) string { return elem + "[]" },
		Generic: func(item string) string { return "FetchResult<" + item + ">" },
		Nullable: func(native string, nullable bool) string {
			if nullable {
				return "@Nullable " + native
			}
			return "@NotNull " + native
		},
	},
	Methods:     methodTable(strings.ToUpper),
	ModelsDir:   func(s *project.Language) string { return javaSourceDir(s) + "/models" },
	ClientsDir:  func(s *project.Language) string { return javaSourceDir(s) + "/clients" },
	ModelFile:   func(name string) string { return name + ".java" },
	ClientFile:  func(cat string) string { return cat + "Client.java" },
	WriteModel:  writeJavaModel,
	WriteClient: writeJavaClient,
	Boilerplate: func(s *project.Language) []Boilerplate {
		return []Boilerplate{
			{Template: "java/ApiClient.java", Path: javaSourceDir(s) + "/" + s.ClassName + ".java"},
		}
	},
	Patches: func(e *emitter) []patcher.Patch {
		artifact := strings.ToLower(e.settings.ModuleName)
		return []patcher.Patch{
			{
				Path:        "pom.xml",
				Pattern:     `<artifactId>` + regexp.QuoteMeta(artifact) + `<\/artifactId>\s+<version>[\d\.]+<\/version>`,
				Replacement: fmt.Sprintf("<artifactId>%s</artifactId>\n    <version>%s</version>", artifact, e.api.Semver4),
			},
			{
				Path:        javaSourceDir(e.settings) + "/RestRequest.java",
				Pattern:     `request.addHeader\("SdkVersion", "[\d\.]+"\);`,
				Replacement: fmt.Sprintf(`request.addHeader("SdkVersion", "%s");`, e.api.Semver4),
			},
		}
	},
}

// javaSourceDir is the package directory below the language folder.
func javaSourceDir(s *project.Language) string {
	return "src/main/java/" + namespacePath(s.Namespace)
}

// javaImports turns import tokens into import statements.
func javaImports(ns string, tokens []string) []string {
	var lines []string
	for _, t := range tokens {
		switch {
		case t == fetchResultSuffix:
			lines = append(lines,
				"import com.google.gson.reflect.TypeToken;",
				"import "+ns+".FetchResult;",
			)
		case isFileToken(t):
			lines = append(lines, "import "+ns+".BlobRequest;")
		case isPrimitive(t):
		default:
			lines = append(lines, "import "+ns+".models."+t+";")
		}
	}
	slices.Sort(lines)
	return slices.Compact(lines)
}

func writeJavaModel(e *emitter, buf *bytes.Buffer, item apimodel.SchemaItem) {
	ns := e.settings.Namespace
	buf.WriteString("package " + ns + ".models;\n\n")
	for _, line := range javaImports(ns, e.imports(item.Name, fieldTypes(item)...)) {
		// Models share a package and need no import.
		if !strings.HasPrefix(line, "import "+ns+".models.") {
			buf.WriteString(line + "\n")
		}
	}
	writeLines(buf,
		"import org.jetbrains.annotations.NotNull;",
		"import org.jetbrains.annotations.Nullable;",
		"",
	)

	buf.WriteString(JavaDoc(item.DescriptionMarkdown, 0, "", nil))
	writeLines(buf,
		"public class "+item.Name,
		"{",
	)

	fields := item.ActiveFields()
	for _, f := range fields {
		fmt.Fprintf(buf, "    private %s %s;\n", e.nullableTypeOf(f.DataType, f.IsArray, f.Nullable), naming.ToCamelCase(f.Name))
	}

	buf.WriteString("\n")
	for _, f := range fields {
		native := e.nullableTypeOf(f.DataType, f.IsArray, f.Nullable)
		camel := naming.ToCamelCase(f.Name)
		proper := naming.ToProperCase(f.Name)

		buf.WriteString(JavaDoc(f.DescriptionMarkdown, 4, "The field "+f.Name, nil))
		fmt.Fprintf(buf, "    public %s get%s() { return this.%s; }\n", native, proper, camel)

		value := apimodel.ParameterField{SchemaField: apimodel.SchemaField{
			Name:                "value",
			DescriptionMarkdown: "The new value for " + f.Name,
		}}
		buf.WriteString(JavaDoc(f.DescriptionMarkdown, 4, "", []apimodel.ParameterField{value}))
		fmt.Fprintf(buf, "    public void set%s(%s value) { this.%s = value; }\n", proper, native, camel)
	}
	buf.WriteString("};\n")
}

func writeJavaClient(e *emitter, buf *bytes.Buffer, category string, endpoints []apimodel.EndpointItem) {
	s := e.settings
	ns := s.Namespace
	writeLines(buf,
		"package "+ns+".clients;",
		"",
		"import "+ns+"."+s.ClassName+";",
		"import "+ns+".RestRequest;",
		"import "+ns+"."+s.ResponseClass+";",
		"import org.jetbrains.annotations.NotNull;",
		"import org.jetbrains.annotations.Nullable;",
	)
	writeLines(buf, javaImports(ns, e.imports("", endpointTypes(endpoints)...))...)
	writeLines(buf,
		"",
		"/**",
		" * Contains all methods related to "+category,
		" */",
		"public class "+category+"Client",
		"{",
		"    private "+s.ClassName+" client;",
		"",
		"    /**",
		"     * Constructor for the "+category+" API collection",
		"     *",
		"     * @param client A {@link "+ns+"."+s.ClassName+"} platform client",
		"     */",
		"    public "+category+"Client(@NotNull "+s.ClassName+" client) {",
		"        super();",
		"        this.client = client;",
		"    }",
	)

	for _, ep := range endpoints {
		params := ep.OrderedParameters()
		buf.WriteString("\n")
		buf.WriteString(JavaDoc(ep.DescriptionMarkdown, 4,
			"A {@link "+ns+"."+s.ResponseClass+"} containing the results", params))

		args := make([]string, 0, len(params))
		for _, p := range params {
			args = append(args, e.nullableTypeOf(p.DataType, p.IsArray, !p.Required)+" "+p.Name)
		}

		ret := e.typeOf(ep.ReturnDataType.DataType, ep.ReturnDataType.IsArray)
		request := "RestRequest<" + ret + ">"
		if ret == javaBlob {
			request = "BlobRequest"
		}

		fmt.Fprintf(buf, "    public @NotNull %s<%s> %s(%s)\n", s.ResponseClass, ret, naming.ToCamelCase(ep.Name), strings.Join(args, ", "))
		buf.WriteString("    {\n")
		fmt.Fprintf(buf, "        %s r = new %s(this.client, %q, %q);\n", request, request, e.method(ep), ep.Path)
		for _, p := range params {
			switch p.Location {
			case apimodel.LocationBody:
				buf.WriteString("        r.AddBody(" + p.Name + ");\n")
			case apimodel.LocationQuery:
				fmt.Fprintf(buf, "        r.AddQuery(%q, %s.toString());\n", p.Name, p.Name)
			case apimodel.LocationPath:
				fmt.Fprintf(buf, "        r.AddPath(\"{%s}\", %s.toString());\n", p.Name, p.Name)
			case apimodel.LocationForm:
				buf.WriteString("        r.AddFile(" + p.Name + ");\n")
			}
		}

		switch {
		case strings.Contains(ret, fetchResultSuffix):
			fmt.Fprintf(buf, "        return r.Call(new TypeToken<%s>() {}.getType());\n", ret)
		case ret == javaBlob:
			buf.WriteString("        return r.Call();\n")
		default:
			buf.WriteString("        return r.Call(" + ret + ".class);\n")
		}
		buf.WriteString("    }\n")
	}
	buf.WriteString("}\n")
}
