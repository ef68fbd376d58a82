// Command sdkgen generates TypeScript, C#, Java, Python and Ruby client
// libraries from one OpenAPI description and a project file.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/sdkgen/cmd/sdkgen/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
