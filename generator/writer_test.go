package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/sdkgen/patcher"
	"github.com/erraggy/sdkgen/project"
	"github.com/erraggy/sdkgen/sdkerrors"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWriteFiles(t *testing.T) {
	root := t.TempDir()
	stale := filepath.Join(root, "ts", "src", "models", "Old.ts")
	notes := filepath.Join(root, "ts", "src", "models", "notes.md")
	pkg := filepath.Join(root, "ts", "package.json")
	setup := filepath.Join(root, "py", "setup.cfg")
	writeTestFile(t, stale, "export type Old = {};\n")
	writeTestFile(t, notes, "hand written\n")
	writeTestFile(t, pkg, "{\n  \"name\": \"acme-billing\",\n  \"version\": \"1.0.0\",\n  \"main\": \"index.js\"\n}\n")
	writeTestFile(t, setup, "[metadata]\nname = acme-billing\nversion = 0.9.1\n")

	result := generateFixture(t, "invoice.json", root)
	require.NoError(t, result.WriteFiles(context.Background(), patcher.NewFilePatcher()))

	t.Run("stale files in owned dirs are removed", func(t *testing.T) {
		assert.NoFileExists(t, stale)
		assert.FileExists(t, notes)
	})

	t.Run("generated files are written", func(t *testing.T) {
		for _, out := range result.Outputs {
			for _, f := range out.Files {
				assert.Equal(t, string(f.Content), readTestFile(t, out.join(f.Path)), f.Path)
			}
		}
	})

	t.Run("manifests are patched", func(t *testing.T) {
		assert.Contains(t, readTestFile(t, pkg), `"version": "2024.3.8471",`)
		assert.Contains(t, readTestFile(t, pkg), `"main": "index.js"`)
		assert.Contains(t, readTestFile(t, setup), "version = 2024.3.8471\n")
	})

	t.Run("missing manifests become warnings", func(t *testing.T) {
		// Java has two manifests and Ruby four; none exist.
		assert.Equal(t, 6, result.WarningCount)
		var paths []string
		for _, issue := range result.Summary(SeverityWarning) {
			assert.Equal(t, SeverityWarning, issue.Severity)
			paths = append(paths, filepath.Base(issue.Path))
		}
		assert.Contains(t, paths, "pom.xml")
		assert.Contains(t, paths, "Gemfile.lock")
	})
}

func TestWriteFilesPatchNoMatch(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "ts", "package.json"), "{\n  \"name\": \"acme-billing\"\n}\n")

	result := generateFixture(t, "invoice.json", root)
	err := result.WriteFiles(context.Background(), patcher.NewFilePatcher())
	require.Error(t, err)
	var perr *sdkerrors.PatchError
	assert.True(t, errors.As(err, &perr))
}

func TestWriteFilesSkipsFailedLanguages(t *testing.T) {
	root := t.TempDir()
	res := parseFixture(t, "invoice.json")
	result, err := GenerateWithOptions(
		WithParsed(*res),
		WithProject(testProject(root)),
		WithRenderer(failingRenderer{fail: "csharp/"}),
		WithClock(fixedClock),
	)
	require.NoError(t, err)

	require.NoError(t, result.WriteFiles(context.Background(), nil))
	assert.NoDirExists(t, filepath.Join(root, "cs"))
	assert.FileExists(t, filepath.Join(root, "ts", "src", "models", "Invoice.ts"))
}

func TestWriteFilesCanceled(t *testing.T) {
	root := t.TempDir()
	result := generateFixture(t, "invoice.json", root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := result.WriteFiles(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.NoDirExists(t, filepath.Join(root, "ts"))
}

func TestWriteFilesRejectsEscapingPaths(t *testing.T) {
	root := t.TempDir()
	result := generateFixture(t, "invoice.json", root)
	out := result.Output(project.TypeScript)
	out.Files = append(out.Files, GeneratedFile{Path: "../outside.ts", Content: []byte("x")})

	err := result.WriteFiles(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid path")
	assert.NoFileExists(t, filepath.Join(root, "outside.ts"))
}

func TestCheck(t *testing.T) {
	root := t.TempDir()
	result := generateFixture(t, "invoice.json", root)

	t.Run("nothing written", func(t *testing.T) {
		drift, err := result.Check()
		require.NoError(t, err)
		require.NotEmpty(t, drift)
		for _, d := range drift {
			assert.Equal(t, DriftMissing, d.Kind, d.Path)
		}
	})

	require.NoError(t, result.WriteFiles(context.Background(), nil))

	t.Run("up to date", func(t *testing.T) {
		drift, err := result.Check()
		require.NoError(t, err)
		assert.Empty(t, drift)
	})

	t.Run("changed, missing and stale", func(t *testing.T) {
		writeTestFile(t, filepath.Join(root, "ts", "src", "models", "Invoice.ts"), "edited\n")
		require.NoError(t, os.Remove(filepath.Join(root, "py", "src", "acme_billing", "models", "invoice.py")))
		writeTestFile(t, filepath.Join(root, "java", "src", "main", "java", "com", "acme", "billing", "clients", "OldClient.java"), "class OldClient {}\n")

		drift, err := result.Check()
		require.NoError(t, err)
		assert.ElementsMatch(t, []Drift{
			{Language: project.TypeScript, Path: "src/models/Invoice.ts", Kind: DriftChanged},
			{Language: project.Java, Path: "src/main/java/com/acme/billing/clients/OldClient.java", Kind: DriftStale},
			{Language: project.Python, Path: "src/acme_billing/models/invoice.py", Kind: DriftMissing},
		}, drift)
	})

	t.Run("rewriting clears drift", func(t *testing.T) {
		require.NoError(t, result.WriteFiles(context.Background(), nil))
		drift, err := result.Check()
		require.NoError(t, err)
		assert.Empty(t, drift)
		assert.NoFileExists(t, filepath.Join(root, "java", "src", "main", "java", "com", "acme", "billing", "clients", "OldClient.java"))
	})
}
