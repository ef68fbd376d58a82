package parser

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/internal/issues"
	"github.com/erraggy/sdkgen/internal/httputil"
	"github.com/erraggy/sdkgen/internal/nodeutil"
	"github.com/erraggy/sdkgen/internal/pathutil"
	"github.com/erraggy/sdkgen/internal/severity"
	"github.com/erraggy/sdkgen/sdkerrors"
)

// DefaultCategory is used for operations without tags.
const DefaultCategory = "Utility"

// Request body media types that become parameters.
const (
	mediaJSON      = "application/json"
	mediaMultipart = "multipart/form-data"
)

// UploadParameterName is the parameter added for multipart uploads.
const UploadParameterName = "filename"

const uploadDescription = "The full path of a file to upload to the API"

// extractor walks one document and collects the model plus its diagnostics.
type extractor struct {
	logger     Logger
	components *yaml.Node
	issues     []issues.Issue
	seen       map[string]string
}

// Extract builds the API model from a decoded document.
//
// The returned issues describe every item that was skipped or defaulted.
// An error is returned only when the document as a whole is unusable.
func Extract(doc *yaml.Node, version apimodel.Version, logger Logger) (*apimodel.APISchema, []issues.Issue, error) {
	if logger == nil {
		logger = NopLogger{}
	}
	root := nodeutil.Resolve(doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, nil, &sdkerrors.ParseError{Message: "document root is not a mapping"}
	}

	paths := nodeutil.Lookup(root, "paths")
	schemas := nodeutil.Lookup(root, "components", "schemas")
	if paths == nil && schemas == nil {
		return nil, nil, &sdkerrors.ParseError{Line: root.Line, Message: "document has neither paths nor components.schemas"}
	}

	x := &extractor{
		logger:     logger,
		components: nodeutil.Lookup(root, "components"),
		seen:       make(map[string]string),
	}

	items := x.schemas(schemas)
	endpoints := x.endpoints(paths)

	logger.Debug("extracted API model",
		"schemas", len(items),
		"endpoints", len(endpoints),
		"issues", len(x.issues),
	)
	return apimodel.New(version, items, endpoints), x.issues, nil
}

func (x *extractor) report(sev severity.Severity, path, msg string, value any) {
	x.issues = append(x.issues, issues.Issue{Path: path, Message: msg, Severity: sev, Value: value})
	switch sev {
	case severity.SeverityInfo:
		x.logger.Debug(msg, "path", path)
	case severity.SeverityWarning:
		x.logger.Warn(msg, "path", path)
	default:
		x.logger.Error(msg, "path", path)
	}
}

func (x *extractor) schemas(node *yaml.Node) []apimodel.SchemaItem {
	var items []apimodel.SchemaItem
	for _, pair := range nodeutil.Pairs(node) {
		path := issues.FormatPath("components", "schemas", pair.Key)
		item, ok := x.schema(pair.Key, pair.Value, path)
		if !ok {
			continue
		}

		key := strings.ToLower(item.Name)
		if first, dup := x.seen[key]; dup {
			x.report(severity.SeverityWarning, path,
				fmt.Sprintf("duplicate schema name, keeping %q", first), item.Name)
			continue
		}
		x.seen[key] = item.Name
		items = append(items, item)
	}
	return items
}

func (x *extractor) schema(name string, node *yaml.Node, path string) (apimodel.SchemaItem, bool) {
	if props := nodeutil.Lookup(node, "properties"); nodeutil.IsMapping(props) {
		if !apimodel.IsValidModel(name) {
			x.logger.Debug("excluded schema", "schema", name)
			return apimodel.SchemaItem{}, false
		}

		item := apimodel.SchemaItem{Name: name}
		if !apimodel.IsFetchResult(name) {
			if !nodeutil.Has(node, "description") {
				x.report(severity.SeverityInfo, path, "missing description", nil)
			}
			item.DescriptionMarkdown = nodeutil.String(node, "description")
		}
		for _, prop := range nodeutil.Pairs(props) {
			item.Fields = append(item.Fields, x.field(prop.Key, prop.Value, issues.FormatPath(path, "properties", prop.Key)))
		}
		return item, true
	}

	if enum := nodeutil.Lookup(node, "enum"); nodeutil.IsSequence(enum) {
		if !apimodel.IsValidModel(name) {
			x.logger.Debug("excluded enum", "schema", name)
			return apimodel.SchemaItem{}, false
		}

		desc := nodeutil.String(node, "description")
		if strings.TrimSpace(desc) == "" {
			x.report(severity.SeverityInfo, path, "enum without description discarded", nil)
			return apimodel.SchemaItem{}, false
		}

		item := apimodel.SchemaItem{
			Name:                name,
			DescriptionMarkdown: desc,
			EnumType:            nodeutil.String(node, "type"),
			Enums:               []int{},
		}
		if item.EnumType == "" {
			item.EnumType = "integer"
		}
		for _, v := range nodeutil.Items(enum) {
			if i, ok := nodeutil.ScalarInt(v); ok {
				item.Enums = append(item.Enums, i)
			}
		}
		return item, true
	}

	x.report(severity.SeverityInfo, path, "schema has neither properties nor enum", nil)
	return apimodel.SchemaItem{}, false
}

func (x *extractor) field(name string, node *yaml.Node, path string) apimodel.SchemaField {
	f := apimodel.SchemaField{
		Name:                name,
		Nullable:            nodeutil.Bool(node, "nullable"),
		Deprecated:          nodeutil.Bool(node, "deprecated"),
		ReadOnly:            nodeutil.Bool(node, "readOnly"),
		DescriptionMarkdown: nodeutil.String(node, "description"),
	}
	if n, ok := nodeutil.Int(node, "minLength"); ok {
		f.MinLength = &n
	}
	if n, ok := nodeutil.Int(node, "maxLength"); ok {
		f.MaxLength = &n
	}
	f.SetRef(x.resolve(node, path))
	return f
}

func (x *extractor) resolve(node *yaml.Node, path string) apimodel.SchemaRef {
	ref, ok := ResolveTypeRef(node)
	if !ok {
		x.report(severity.SeverityWarning, path, "unable to resolve type, using object", nil)
	}
	return ref
}

func (x *extractor) endpoints(node *yaml.Node) []apimodel.EndpointItem {
	var endpoints []apimodel.EndpointItem
	for _, pathPair := range nodeutil.Pairs(node) {
		for _, op := range nodeutil.Pairs(pathPair.Value) {
			if !httputil.IsMethod(op.Key) {
				continue
			}
			if ep, ok := x.endpoint(pathPair.Key, op.Key, op.Value); ok {
				endpoints = append(endpoints, ep)
			}
		}
	}
	return endpoints
}

func (x *extractor) endpoint(urlPath, method string, node *yaml.Node) (apimodel.EndpointItem, bool) {
	path := issues.FormatPath("paths", urlPath, method)

	summary := strings.TrimSpace(nodeutil.String(node, "summary"))
	if summary == "" {
		x.report(severity.SeverityWarning, path, "operation has no summary, skipped", nil)
		return apimodel.EndpointItem{}, false
	}

	ep := apimodel.EndpointItem{
		Name:                summary,
		DescriptionMarkdown: cleanDescription(nodeutil.String(node, "description")),
		Category:            DefaultCategory,
		Path:                urlPath,
		Method:              method,
		Deprecated:          nodeutil.Bool(node, "deprecated"),
		ReturnDataType:      apimodel.SchemaRef{DataType: apimodel.ObjectType},
	}
	if tags := nodeutil.Items(nodeutil.Lookup(node, "tags")); len(tags) > 0 && tags[0].Kind == yaml.ScalarNode {
		if cat := strings.ReplaceAll(tags[0].Value, "/", ""); cat != "" {
			ep.Category = cat
		}
	}

	for i, p := range nodeutil.Items(nodeutil.Lookup(node, "parameters")) {
		ppath := issues.FormatPath(path, "parameters", fmt.Sprint(i))
		if param, ok := x.parameter(x.follow(p, ppath), ppath); ok {
			ep.Parameters = append(ep.Parameters, param)
		}
	}

	for _, m := range pathutil.PathParamRegex.FindAllStringSubmatch(urlPath, -1) {
		if !hasPathParameter(ep.Parameters, m[1]) {
			x.report(severity.SeverityWarning, path, fmt.Sprintf("path template parameter {%s} is not declared on the operation", m[1]), m[1])
		}
	}

	if body := nodeutil.Lookup(node, "requestBody"); body != nil {
		ep.Parameters = append(ep.Parameters, x.requestBody(x.follow(body, path+".requestBody"), path+".requestBody")...)
	}

	for _, resp := range nodeutil.Pairs(nodeutil.Lookup(node, "responses")) {
		if !httputil.ValidateStatusCode(resp.Key) {
			x.report(severity.SeverityInfo, issues.FormatPath(path, "responses", resp.Key), "invalid response status code, ignored", nil)
			continue
		}
		if !httputil.IsSuccessStatusCode(resp.Key) {
			continue
		}
		schema := nodeutil.Lookup(x.follow(resp.Value, path), "content", mediaJSON, "schema")
		if schema == nil {
			continue
		}
		ep.ReturnDataType = x.resolve(schema, issues.FormatPath(path, "responses", resp.Key))
		break
	}

	return ep, true
}

func hasPathParameter(params []apimodel.ParameterField, name string) bool {
	for _, p := range params {
		if p.Location == apimodel.LocationPath && p.Name == name {
			return true
		}
	}
	return false
}

func (x *extractor) parameter(node *yaml.Node, path string) (apimodel.ParameterField, bool) {
	name := nodeutil.String(node, "name")
	in := nodeutil.String(node, "in")
	if name == "" || in == "" {
		x.report(severity.SeverityWarning, path, "parameter without name or location, skipped", nil)
		return apimodel.ParameterField{}, false
	}

	schema := nodeutil.Lookup(node, "schema")
	param := apimodel.ParameterField{
		SchemaField: apimodel.SchemaField{
			Name:                name,
			Nullable:            nodeutil.Bool(schema, "nullable"),
			Deprecated:          nodeutil.Bool(node, "deprecated"),
			DescriptionMarkdown: cleanDescription(nodeutil.String(node, "description")),
		},
		Location: in,
		Required: nodeutil.Bool(node, "required"),
	}
	param.SetRef(x.resolve(schema, path))
	return param, true
}

func (x *extractor) requestBody(node *yaml.Node, path string) []apimodel.ParameterField {
	var params []apimodel.ParameterField
	for _, media := range nodeutil.Pairs(nodeutil.Lookup(node, "content")) {
		switch media.Key {
		case mediaJSON:
			body := apimodel.ParameterField{
				SchemaField: apimodel.SchemaField{
					Name:                "body",
					DescriptionMarkdown: cleanDescription(nodeutil.String(node, "description")),
				},
				Location: apimodel.LocationBody,
				Required: true,
			}
			body.SetRef(x.resolve(nodeutil.Lookup(media.Value, "schema"), issues.FormatPath(path, "content", media.Key)))
			params = append(params, body)

		case mediaMultipart:
			params = append(params, apimodel.ParameterField{
				SchemaField: apimodel.SchemaField{
					Name:                UploadParameterName,
					DataType:            "File",
					DataTypeRef:         "File",
					DescriptionMarkdown: uploadDescription,
				},
				Location: apimodel.LocationForm,
				Required: true,
			})

		default:
			x.report(severity.SeverityInfo, path, "ignored request body encoding", media.Key)
		}
	}
	return params
}

// follow resolves a local "#/components/..." $ref one level. Other nodes are
// returned unchanged.
func (x *extractor) follow(node *yaml.Node, path string) *yaml.Node {
	target := nodeutil.String(node, "$ref")
	if target == "" {
		return node
	}
	const prefix = "#/components/"
	if !strings.HasPrefix(target, prefix) {
		x.report(severity.SeverityWarning, path, "unsupported $ref", target)
		return node
	}
	resolved := nodeutil.Lookup(x.components, strings.Split(strings.TrimPrefix(target, prefix), "/")...)
	if resolved == nil {
		x.report(severity.SeverityWarning, path, "unresolved $ref", target)
		return node
	}
	return resolved
}

func cleanDescription(s string) string {
	return strings.ReplaceAll(s, "<br>", "\n")
}
