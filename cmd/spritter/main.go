package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/spritter/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	root := cli.New(os.Stderr, cli.LogInfo).RootCommand()
	err := root.ExecuteContext(ctx)
	code := cli.ExitCode(err)
	if err != nil && code != 130 {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return code
}
