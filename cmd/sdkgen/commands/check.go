package commands

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/erraggy/sdkgen/generator"
	"github.com/erraggy/sdkgen/internal/cliutil"
)

func newCheckCommand(a *app) *cobra.Command {
	flags := &sourceFlags{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether the generated SDK files are up to date",
		Long: `Check regenerates every configured SDK in memory and compares it with the
language folders without writing anything. Manifest patches are not checked.

Exit codes:
  0 - SDKs are up to date
  1 - files are changed, missing or stale (listed)
  2 - error during check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCheck(cmd.Context(), flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) runCheck(ctx context.Context, flags *sourceFlags) error {
	result, _, err := a.generate(ctx, flags, false)
	if err != nil {
		return err
	}
	if result.HasErrors() {
		cliutil.WriteIssues(a.errOut, result.Issues, generator.SeverityError)
		return errors.Newf("%d language(s) failed to generate", result.ErrorCount)
	}

	drift, err := result.Check()
	if err != nil {
		return err
	}
	if len(drift) == 0 {
		cliutil.Writef(a.out, "✓ SDKs are up to date (version %s)\n", result.Version.Full)
		return nil
	}

	cliutil.Writef(a.out, "✗ %d file(s) out of date\n", len(drift))
	data := pterm.TableData{{"Language", "Path", "Kind"}}
	for _, d := range drift {
		data = append(data, []string{d.Language, d.Path, string(d.Kind)})
	}
	if err := renderTable(a.out, data); err != nil {
		return err
	}
	return errDrift
}
