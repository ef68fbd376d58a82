package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/erraggy/sdkgen/generator"
	"github.com/erraggy/sdkgen/internal/cliutil"
	"github.com/erraggy/sdkgen/patcher"
)

// generateFlags contains flags for the generate command
type generateFlags struct {
	sourceFlags
	dryRun     bool
	noSnapshot bool
}

func newGenerateCommand(a *app) *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and write the configured SDKs",
		Long: `Generate fetches the description named by the project (or reads --source),
discovers the version, applies the project fix-ups and writes models, clients
and boilerplate into each language folder. Files the generator owns that are
no longer produced are removed. Package manifests are then patched with the
new version.

A language that fails to render is reported and skipped; the others are
still written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd.Context(), flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "generate in memory and list the files without writing")
	cmd.Flags().BoolVar(&flags.noSnapshot, "no-snapshot", false, "do not write the prepared description to swaggerSchemaFolder")
	return cmd
}

func (a *app) runGenerate(ctx context.Context, flags *generateFlags) error {
	result, loaded, err := a.generate(ctx, &flags.sourceFlags, !flags.dryRun && !flags.noSnapshot)
	if err != nil {
		return err
	}
	cliutil.Writef(a.out, "Generated version %s from %s in %v\n", result.Version.Full, loaded.SourcePath, result.GenerateTime)
	if loaded.SnapshotPath != "" {
		cliutil.Writef(a.out, "Snapshot written to %s\n", loaded.SnapshotPath)
	}

	if flags.dryRun {
		for _, out := range result.Outputs {
			for _, f := range out.Files {
				cliutil.Writef(a.out, "  %s/%s (%d bytes)\n", out.Language, f.Path, len(f.Content))
			}
		}
	} else if err := result.WriteFiles(ctx, patcher.NewFilePatcher()); err != nil {
		return err
	}

	if err := renderTable(a.out, summaryTable(result)); err != nil {
		return err
	}
	cliutil.WriteIssues(a.errOut, result.Issues, generator.SeverityWarning)

	if result.HasErrors() {
		return errors.Newf("%d language(s) failed to generate", result.ErrorCount)
	}
	return nil
}

// summaryTable lists one row per language.
func summaryTable(result *generator.GenerateResult) pterm.TableData {
	data := pterm.TableData{{"Language", "Models", "Clients", "Files", "Status"}}
	for _, out := range result.Outputs {
		status := pterm.Green("ok")
		if out.Err != nil {
			status = pterm.Red(fmt.Sprintf("failed: %v", out.Err))
		}
		data = append(data, []string{
			out.Name,
			strconv.Itoa(out.Models),
			strconv.Itoa(out.Clients),
			strconv.Itoa(len(out.Files)),
			status,
		})
	}
	return data
}
