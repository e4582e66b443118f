package main

import (
	"context"
	"os"

	"github.com/tomparisbiz/cogpush/cmd/cogpush/commands"
	"github.com/tomparisbiz/cogpush/internal/di"
	"github.com/urfave/cli/v2"
)

func main() {
	logger := di.ProvideLogger()
	ctx := logger.WithContext(context.Background())

	app := &cli.App{
		Name:  "cogpush",
		Usage: "Publish a Cog model to Replicate",
		Description: `A standalone publisher for the cyberpony-multi-lora model.

This tool provides commands for:
  - Installing a pinned release of the cog binary
  - Authenticating cog against Replicate
  - Building and pushing the model to its r8.im destination

Secret tokens are read from the environment only:
  REPLICATE_CLI_AUTH_TOKEN  login token, delivered to cog via stdin
  REPLICATE_API_TOKEN       push authorization token, delivered via env`,
		Commands: []*cli.Command{
			commands.PublishCommand(&logger),
			commands.InstallCommand(&logger),
			commands.LoginCommand(&logger),
			commands.PushCommand(&logger),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Error().Err(err).Msg("Application error")
		os.Exit(1)
	}
}
