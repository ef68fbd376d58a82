package generator

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/parser"
	"github.com/erraggy/sdkgen/project"
)

// fixedNow is the clock used by every generation test.
var fixedNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// fixture returns one file of testdata/scenarios.txtar.
func fixture(t *testing.T, name string) []byte {
	t.Helper()
	archive, err := txtar.ParseFile("testdata/scenarios.txtar")
	require.NoError(t, err)
	for _, f := range archive.Files {
		if f.Name == name {
			return f.Data
		}
	}
	t.Fatalf("fixture %q not found", name)
	return nil
}

// parseFixture parses one fixture into a ParseResult.
func parseFixture(t *testing.T, name string) *parser.ParseResult {
	t.Helper()
	res, err := parser.ParseWithOptions(parser.WithBytes(fixture(t, name)))
	require.NoError(t, err)
	require.NotNil(t, res.API)
	return res
}

// testProject configures all five languages with folders below root.
func testProject(root string) *project.Project {
	return &project.Project{
		CompanyName:      "Acme",
		AuthorName:       "Acme DevRel",
		AuthorEmail:      "sdk@acme.example",
		ProjectName:      "AcmeBilling",
		CopyrightHolder:  "Acme Corp",
		ProjectStartYear: 2021,
		Description:      "Client library for the Acme billing API",
		Keywords:         "acme billing",
		Environments: []project.Environment{
			{Name: "sandbox", URL: "https://sandbox.acme.example", Default: true},
			{Name: "production", URL: "https://api.acme.example"},
		},
		TypeScript: &project.Language{
			ModuleName:    "acme-billing",
			Folder:        filepath.Join(root, "ts"),
			ClassName:     "AcmeBillingClient",
			ResponseClass: "AcmeResult",
			GithubURL:     "https://github.com/acme/billing-ts",
		},
		CSharp: &project.Language{
			ModuleName:    "Acme.Billing",
			Folder:        filepath.Join(root, "cs"),
			ClassName:     "AcmeBillingClient",
			ResponseClass: "AcmeResult",
			Namespace:     "Acme.Billing",
			GithubURL:     "https://github.com/acme/billing-cs",
		},
		Java: &project.Language{
			ModuleName:    "AcmeBilling",
			Folder:        filepath.Join(root, "java"),
			ClassName:     "AcmeBillingClient",
			ResponseClass: "AcmeResult",
			Namespace:     "com.acme.billing",
			GithubURL:     "https://github.com/acme/billing-java",
		},
		Ruby: &project.Language{
			ModuleName:    "acme_billing",
			Folder:        filepath.Join(root, "rb"),
			ClassName:     "AcmeBillingClient",
			ResponseClass: "AcmeResult",
			Namespace:     "acme_billing",
			GithubURL:     "https://github.com/acme/billing-rb",
		},
		Python: &project.Language{
			ModuleName:    "acme-billing",
			Folder:        filepath.Join(root, "py"),
			ClassName:     "AcmeBillingClient",
			ResponseClass: "AcmeResult",
			Namespace:     "acme_billing",
			GithubURL:     "https://github.com/acme/billing-py",
		},
	}
}

// generateFixture runs every language for a fixture with the fixed clock.
func generateFixture(t *testing.T, name, root string) *GenerateResult {
	t.Helper()
	res := parseFixture(t, name)
	result, err := GenerateWithOptions(
		WithParsed(*res),
		WithProject(testProject(root)),
		WithClock(fixedClock),
	)
	require.NoError(t, err)
	return result
}

// fileContent returns a generated file as a string, failing when absent.
func fileContent(t *testing.T, result *GenerateResult, lang, path string) string {
	t.Helper()
	out := result.Output(lang)
	require.NotNil(t, out, "language %s", lang)
	require.NoError(t, out.Err)
	f := out.File(path)
	require.NotNil(t, f, "%s: file %s not generated; have %v", lang, path, filePaths(out))
	return string(f.Content)
}

func filePaths(out *LanguageOutput) []string {
	paths := make([]string, 0, len(out.Files))
	for _, f := range out.Files {
		paths = append(paths, f.Path)
	}
	return paths
}

// testAPI builds a model directly for cases a document cannot express.
func testAPI(schemas []apimodel.SchemaItem, endpoints ...apimodel.EndpointItem) *apimodel.APISchema {
	return apimodel.New(apimodel.MustParseVersion("2024.3.8471.0"), schemas, endpoints)
}
