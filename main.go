package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/chirino/forumcore/internal/cmd/serve"
	"github.com/chirino/forumcore/internal/cmd/snapshot"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "forumcore",
		Usage: "In-memory data and authorization core for a discussion forum backend",
		Commands: []*cli.Command{
			serve.Command(),
			snapshot.Command(),
		},
	}
	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
