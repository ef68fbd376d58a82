package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/sdkgen"
	"github.com/erraggy/sdkgen/internal/cliutil"
)

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			cliutil.Writef(a.out, "sdkgen %s\n", sdkgen.BuildInfo())
		},
	}
}
