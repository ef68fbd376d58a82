// Package sdkgen generates client libraries for five languages from one
// OpenAPI description.
//
// A run has two halves. The front end (package parser) reads the source
// description once and builds a language-neutral model of schemas and
// endpoints (package apimodel). The back ends (package generator) walk that
// model and render models, category clients and boilerplate for TypeScript,
// C#, Java, Python and Ruby.
//
// # Quick Start
//
//	proj, err := project.Load("project.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	loaded, err := source.Load(ctx, proj, source.LoadOptions{
//		Path:    "swagger.json",
//		Version: apimodel.MustParseVersion("2024.3.1234.0"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := generator.GenerateWithOptions(
//		generator.WithParsed(*loaded.ParseResult),
//		generator.WithProject(proj),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles(ctx, patcher.NewFilePatcher()); err != nil {
//		log.Fatal(err)
//	}
//
// Leaving Path empty fetches the project's swaggerUrl, and leaving Version
// zero discovers it from versionNumberUrl.
//
// The sdkgen command wraps the same pipeline and adds a drift check and an
// MCP server.
package sdkgen
