package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/arthur-debert/overlay/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	rootCmd := cli.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}
