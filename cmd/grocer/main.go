// Command grocer imports grocery order exports and tracks how often items are bought
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	perr "grocer/internal/platform/errors"
	"grocer/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the process exit status
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(&app{stdout: stdout, stderr: stderr})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if e, ok := perr.As(err); ok {
			logger.Named("cli").Debug().Object("error", e).Msg("cli: command failed")
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return perr.ExitCode(err)
	}
	return 0
}
