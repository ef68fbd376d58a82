// Package commands provides the cobra commands of the sdkgen CLI.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/erraggy/sdkgen/fetch"
	"github.com/erraggy/sdkgen/internal/logging"
	"github.com/erraggy/sdkgen/parser"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitDrift = 1
	ExitError = 2
)

// DefaultProjectFile is read when --project is not given.
const DefaultProjectFile = "sdkgen.json"

// errDrift reports that generated files are out of date.
var errDrift = errors.New("generated files are out of date")

// app carries the state shared by the commands of one invocation.
type app struct {
	projectFile string
	verbose     bool
	logJSON     bool

	out    io.Writer
	errOut io.Writer

	zap    *zap.Logger
	logger parser.Logger

	// fetcher is built on first use unless a test supplies one.
	fetcher fetch.Fetcher
}

func newApp(out, errOut io.Writer) *app {
	return &app{out: out, errOut: errOut, logger: parser.NopLogger{}}
}

// newRootCommand builds the command tree around a.
func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sdkgen",
		Short: "Generate client SDKs from an OpenAPI description",
		Long: `sdkgen reads an OpenAPI description and a project file and writes client
libraries for TypeScript, C#, Java, Python and Ruby.

The project file names the source URL, the version discovery page and one
folder per language. Every value can be overridden with an SDKGEN_ environment
variable, e.g. SDKGEN_SWAGGERURL or SDKGEN_README_APIKEY.

Examples:
  sdkgen generate -p acme.json              # fetch, generate and write every language
  sdkgen generate -p acme.json --dry-run    # show what would be written
  sdkgen check -p acme.json                 # exit 1 when generated files are stale
  sdkgen inspect -s swagger.json -f yaml    # summarize a description
  sdkgen mcp                                # serve the MCP tools over stdio`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.zap != nil || cmd.Name() == "mcp" {
				return nil
			}
			l, err := logging.New(a.logJSON, a.verbose)
			if err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			a.zap = l
			a.logger = logging.NewZapAdapter(l)
			return nil
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.projectFile, "project", "p", DefaultProjectFile, "project file (JSON, YAML or TOML)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug detail")
	flags.BoolVar(&a.logJSON, "log-json", false, "log as JSON lines")

	root.AddCommand(
		newGenerateCommand(a),
		newCheckCommand(a),
		newInspectCommand(a),
		newMCPCommand(),
		newVersionCommand(a),
	)
	return root
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) int {
	return execute(ctx, newApp(out, errOut), args)
}

func execute(ctx context.Context, a *app, args []string) int {
	root := newRootCommand(a)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if a.zap != nil {
		_ = a.zap.Sync()
	}
	return a.report(err)
}

// report prints err with its hints and maps it to an exit code.
func (a *app) report(err error) int {
	if err == nil {
		return ExitOK
	}
	err = withHints(err)
	_, _ = fmt.Fprintf(a.errOut, "Error: %v\n", err)
	if hints := errors.FlattenHints(err); hints != "" {
		_, _ = fmt.Fprintf(a.errOut, "Hint: %s\n", hints)
	}
	if errors.Is(err, errDrift) {
		return ExitDrift
	}
	return ExitError
}
