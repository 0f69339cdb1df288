// Command pyrops converts rocket benchmark workbooks into a validated
// configuration record, runs it through a flight-simulation engine and
// extracts the results.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anbanpillay/ASRI-PyROPS/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.NewRootCommand().ExecuteContext(ctx)
	if err == nil {
		return cli.ExitSuccess
	}

	// Commands report their own failures; anything else is a usage error.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return cli.ExitCommandError
	}
	if exitErr.Code == cli.ExitCommandError && exitErr.Err == nil {
		fmt.Fprintln(os.Stderr, "Error:", exitErr.Message)
	}
	return cli.GetExitCode(err)
}
