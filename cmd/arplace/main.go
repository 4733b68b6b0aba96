package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"arplace/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.NewRootCmd(runPreview).ExecuteContext(ctx)
	cancel()
	switch {
	case err == nil:
	case errors.Is(err, cli.ErrCommandsFailed):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
