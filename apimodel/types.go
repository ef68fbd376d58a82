package apimodel

import (
	"sort"
	"strings"
)

// Parameter locations understood by every emitter. Any other token is kept
// verbatim on the ParameterField and rejected by the emitters.
const (
	LocationPath  = "path"
	LocationQuery = "query"
	LocationBody  = "body"
	LocationForm  = "form"
)

// ObjectType is the type token used when a schema cannot be resolved to
// anything more specific.
const ObjectType = "object"

// SchemaRef is the resolved type of a property, parameter or response.
type SchemaRef struct {
	// DataType is a primitive token (after format override) or a model name.
	DataType string `json:"dataType" yaml:"dataType"`
	// DataTypeRef is the documentation link for referenced models.
	DataTypeRef string `json:"dataTypeRef,omitempty" yaml:"dataTypeRef,omitempty"`
	// IsArray reports a one-dimensional array of DataType.
	IsArray bool `json:"isArray,omitempty" yaml:"isArray,omitempty"`
}

// SchemaField is a property of a record schema.
type SchemaField struct {
	Name                string `json:"name" yaml:"name"`
	DataType            string `json:"dataType" yaml:"dataType"`
	DataTypeRef         string `json:"dataTypeRef,omitempty" yaml:"dataTypeRef,omitempty"`
	IsArray             bool   `json:"isArray,omitempty" yaml:"isArray,omitempty"`
	Nullable            bool   `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	ReadOnly            bool   `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Deprecated          bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	MinLength           *int   `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength           *int   `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	DescriptionMarkdown string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Ref returns the field's type as a SchemaRef.
func (f SchemaField) Ref() SchemaRef {
	return SchemaRef{DataType: f.DataType, DataTypeRef: f.DataTypeRef, IsArray: f.IsArray}
}

// SetRef copies a resolved type onto the field.
func (f *SchemaField) SetRef(ref SchemaRef) {
	f.DataType = ref.DataType
	f.DataTypeRef = ref.DataTypeRef
	f.IsArray = ref.IsArray
}

// ParameterField is an endpoint parameter: a SchemaField plus where it
// travels in the request.
type ParameterField struct {
	SchemaField `yaml:",inline"`

	// Location is one of path, query, body or form.
	Location string `json:"location" yaml:"location"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
}

// SchemaItem is a named record or enum.
type SchemaItem struct {
	Name                string        `json:"name" yaml:"name"`
	DescriptionMarkdown string        `json:"description,omitempty" yaml:"description,omitempty"`
	Fields              []SchemaField `json:"fields,omitempty" yaml:"fields,omitempty"`
	// EnumType is the primitive type of the enum values (e.g. "integer").
	EnumType string `json:"enumType,omitempty" yaml:"enumType,omitempty"`
	Enums    []int  `json:"enums,omitempty" yaml:"enums,omitempty"`
}

// IsEnum reports whether the item is an enum rather than a record.
func (s SchemaItem) IsEnum() bool {
	return s.EnumType != "" || len(s.Enums) > 0
}

// ActiveFields returns the fields that are not deprecated, in order.
func (s SchemaItem) ActiveFields() []SchemaField {
	active := make([]SchemaField, 0, len(s.Fields))
	for _, f := range s.Fields {
		if !f.Deprecated {
			active = append(active, f)
		}
	}
	return active
}

// EndpointItem is one HTTP operation.
type EndpointItem struct {
	Name                string           `json:"name" yaml:"name"`
	DescriptionMarkdown string           `json:"description,omitempty" yaml:"description,omitempty"`
	Category            string           `json:"category" yaml:"category"`
	Path                string           `json:"path" yaml:"path"`
	Method              string           `json:"method" yaml:"method"`
	Parameters          []ParameterField `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	ReturnDataType      SchemaRef        `json:"returnDataType" yaml:"returnDataType"`
	Deprecated          bool             `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// ParametersIn returns the parameters with the given location, in order.
func (e EndpointItem) ParametersIn(location string) []ParameterField {
	var out []ParameterField
	for _, p := range e.Parameters {
		if p.Location == location {
			out = append(out, p)
		}
	}
	return out
}

// HasLocation reports whether any parameter travels in location.
func (e EndpointItem) HasLocation(location string) bool {
	for _, p := range e.Parameters {
		if p.Location == location {
			return true
		}
	}
	return false
}

// OrderedParameters returns the parameters with required ones first. The
// relative order within each group is preserved.
func (e EndpointItem) OrderedParameters() []ParameterField {
	ordered := make([]ParameterField, len(e.Parameters))
	copy(ordered, e.Parameters)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Required && !ordered[j].Required
	})
	return ordered
}

// String identifies the endpoint as "METHOD /path".
func (e EndpointItem) String() string {
	return strings.ToUpper(e.Method) + " " + e.Path
}

// APISchema is the complete, immutable API model.
type APISchema struct {
	// Semver2 is "YEAR.MONTH".
	Semver2 string `json:"semver2" yaml:"semver2"`
	// Semver3 is "YEAR.MONTH.BUILD".
	Semver3 string `json:"semver3" yaml:"semver3"`
	// Semver4 is the full discovered token.
	Semver4 string `json:"semver4" yaml:"semver4"`

	Schemas    []SchemaItem   `json:"schemas" yaml:"schemas"`
	Endpoints  []EndpointItem `json:"endpoints" yaml:"endpoints"`
	Categories []string       `json:"categories" yaml:"categories"`

	index map[string]int
}

// New builds an APISchema. Schemas are sorted by name (ordinal), the
// synthetic ErrorResult model is added when absent and the categories are
// derived from the non-deprecated endpoints.
func New(version Version, schemas []SchemaItem, endpoints []EndpointItem) *APISchema {
	api := &APISchema{
		Semver2:   version.Short,
		Semver3:   version.Semver,
		Semver4:   version.Full,
		Schemas:   make([]SchemaItem, 0, len(schemas)+1),
		Endpoints: make([]EndpointItem, len(endpoints)),
	}
	copy(api.Endpoints, endpoints)

	seen := make(map[string]bool, len(schemas)+1)
	for _, s := range schemas {
		key := strings.ToLower(s.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		api.Schemas = append(api.Schemas, s)
	}
	if !seen[strings.ToLower(ErrorResultName)] {
		api.Schemas = append(api.Schemas, ErrorResult())
	}
	sort.SliceStable(api.Schemas, func(i, j int) bool {
		return api.Schemas[i].Name < api.Schemas[j].Name
	})

	api.index = make(map[string]int, len(api.Schemas))
	for i, s := range api.Schemas {
		api.index[strings.ToLower(s.Name)] = i
	}

	cats := make(map[string]bool)
	for _, ep := range api.Endpoints {
		if ep.Deprecated {
			continue
		}
		if !cats[ep.Category] {
			cats[ep.Category] = true
			api.Categories = append(api.Categories, ep.Category)
		}
	}
	sort.Strings(api.Categories)

	return api
}

// FindSchema looks a schema up by name, ignoring case.
func (a *APISchema) FindSchema(name string) (SchemaItem, bool) {
	if a == nil {
		return SchemaItem{}, false
	}
	if a.index != nil {
		i, ok := a.index[strings.ToLower(name)]
		if !ok {
			return SchemaItem{}, false
		}
		return a.Schemas[i], true
	}
	for _, s := range a.Schemas {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return SchemaItem{}, false
}

// IsEnum reports whether name refers to an enum schema.
func (a *APISchema) IsEnum(name string) bool {
	s, ok := a.FindSchema(name)
	return ok && s.IsEnum()
}

// EndpointsIn returns the non-deprecated endpoints of a category in document
// order.
func (a *APISchema) EndpointsIn(category string) []EndpointItem {
	var out []EndpointItem
	for _, ep := range a.Endpoints {
		if ep.Category == category && !ep.Deprecated {
			out = append(out, ep)
		}
	}
	return out
}

// Models returns the record (non-enum) schemas sorted by name.
func (a *APISchema) Models() []SchemaItem {
	var out []SchemaItem
	for _, s := range a.Schemas {
		if !s.IsEnum() {
			out = append(out, s)
		}
	}
	return out
}

// Enums returns the enum schemas sorted by name.
func (a *APISchema) Enums() []SchemaItem {
	var out []SchemaItem
	for _, s := range a.Schemas {
		if s.IsEnum() {
			out = append(out, s)
		}
	}
	return out
}

// Version returns the version triplet the model was built with.
func (a *APISchema) Version() Version {
	return Version{Short: a.Semver2, Semver: a.Semver3, Full: a.Semver4}
}
