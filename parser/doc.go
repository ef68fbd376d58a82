// Package parser reads an OpenAPI 3.x description and builds the canonical
// API model consumed by the language emitters.
//
// The document is decoded into an order-preserving yaml.Node tree, so JSON
// and YAML sources are both accepted and every list in the resulting model
// (endpoints, parameters, properties) follows the source order.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("swagger.json"),
//	    parser.WithVersion(apimodel.MustParseVersion("2024.3.8471.0")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(result.API.Schemas), "schemas,", len(result.API.Endpoints), "endpoints")
//	for _, issue := range result.Issues {
//	    fmt.Println(issue)
//	}
//
// # Recovery
//
// Problems with a single schema, property, operation or parameter never stop
// extraction. They are reported as issues in ParseResult.Issues (and through
// the configured Logger) and a default is substituted or the item skipped.
// Only a document that cannot be read at all, or one with neither paths nor
// component schemas, yields a *sdkerrors.ParseError.
//
// # Type Resolution
//
// [ResolveTypeRef] maps one schema node to an [apimodel.SchemaRef]: arrays
// recurse into items, a format overrides its type, a $ref keeps the final
// path segment and an allOf uses its first $ref child. Anything else becomes
// "object".
package parser
