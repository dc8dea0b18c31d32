package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sinergy/chronosync/internal/cli"

	// embedded root CAs, used when the host has no usable certificate store
	_ "golang.org/x/crypto/x509roots/fallback"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp()
	cmd := cli.NewRootCommand(app)

	if err := cmd.ExecuteContext(ctx); err != nil {
		app.ReportError(cmd.ErrOrStderr(), err)
		stop()
		os.Exit(1)
	}
}
