package parser

import (
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/internal/nodeutil"
)

// docsPrefix is prepended to the lower-cased model name to build the
// documentation link of a referenced type.
const docsPrefix = "/docs/"

// ResolveTypeRef maps a schema node to its type reference. A "type" key is
// checked before "$ref", then the first "$ref" of an allOf. It never fails:
// when nothing usable is found it returns "object" and ok is false, so the
// caller can record a diagnostic.
func ResolveTypeRef(schema *yaml.Node) (ref apimodel.SchemaRef, ok bool) {
	schema = nodeutil.Resolve(schema)
	if schema == nil || schema.Kind != yaml.MappingNode {
		return apimodel.SchemaRef{DataType: apimodel.ObjectType}, false
	}

	typ := nodeutil.String(schema, "type")
	switch {
	case typ == "array":
		items := nodeutil.Lookup(schema, "items")
		if items == nil {
			return apimodel.SchemaRef{DataType: apimodel.ObjectType, IsArray: true}, false
		}
		inner, innerOK := ResolveTypeRef(items)
		inner.IsArray = true
		return inner, innerOK

	case typ != "":
		if format := nodeutil.String(schema, "format"); format != "" {
			return apimodel.SchemaRef{DataType: format}, true
		}
		return apimodel.SchemaRef{DataType: typ}, true
	}

	if target := nodeutil.String(schema, "$ref"); target != "" {
		return refFromPointer(target), true
	}

	for _, child := range nodeutil.Items(nodeutil.Lookup(schema, "allOf")) {
		if target := nodeutil.String(child, "$ref"); target != "" {
			return refFromPointer(target), true
		}
	}

	return apimodel.SchemaRef{DataType: apimodel.ObjectType}, false
}

func refFromPointer(pointer string) apimodel.SchemaRef {
	name := pointer[strings.LastIndex(pointer, "/")+1:]
	return apimodel.SchemaRef{
		DataType:    name,
		DataTypeRef: docsPrefix + strings.ToLower(name),
	}
}
