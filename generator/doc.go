// Package generator emits client SDK sources for TypeScript, C#, Java,
// Python and Ruby from an API model.
//
// Every language is described by a declarative Language value (lang_*.go):
// a TypeTable for type names, an HTTP method table, the output layout and
// two writers for model and client files. A single pipeline walks the model
// once per language, so all languages share the same traversal, ordering
// and import rules.
//
// # Quick Start
//
//	parsed, err := parser.ParseWithOptions(parser.WithFilePath("swagger.json"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := generator.GenerateWithOptions(
//		generator.WithParsed(*parsed),
//		generator.WithProject(proj),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles(ctx, patcher.NewFilePatcher()); err != nil {
//		log.Fatal(err)
//	}
//
// # Output
//
// Each language produces:
//   - one model file per record schema (enums map to their value type)
//   - one client file per category, one method per endpoint
//   - boilerplate rendered by a render.Renderer (root client, index)
//   - patches that update version strings in existing manifests
//
// Model and client directories are owned by the generator: WriteFiles
// removes files with the language's extension there before writing, so
// renamed or deleted schemas do not linger.
//
// # Failure Handling
//
// An endpoint using an HTTP method or parameter location a language cannot
// express fails that language with a *sdkerrors.UnsupportedError. Other
// languages are unaffected. A model without a version fails the whole run
// with a *sdkerrors.VersionError before anything is written.
//
// # Determinism
//
// Output depends only on the model, the project and the clock. Schemas,
// categories and imports are sorted, so generating twice yields identical
// bytes.
package generator
