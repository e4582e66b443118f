package commands

import (
	"github.com/rs/zerolog"
	"github.com/tomparisbiz/cogpush/internal/cog"
	"github.com/tomparisbiz/cogpush/internal/di"
	apperrors "github.com/tomparisbiz/cogpush/internal/errors"
	"github.com/tomparisbiz/cogpush/internal/secrets"
	"github.com/tomparisbiz/cogpush/internal/step"
	"github.com/urfave/cli/v2"
)

// LoginCommand returns the login command, which authenticates an
// already-installed cog binary against Replicate.
func LoginCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate cog against Replicate",
		Description: `Feeds REPLICATE_CLI_AUTH_TOKEN to 'cog login --token-stdin'. The token
travels on stdin only, so it never appears in process listings.

Examples:
  REPLICATE_CLI_AUTH_TOKEN=... cogpush login
  cogpush login --binary /usr/local/bin/cog`,
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:    "binary",
				Aliases: []string{"b"},
				Usage:   "Path to the cog binary (default: install dir, then PATH)",
			},
		),
		Action: func(c *cli.Context) error {
			return loginAction(c, logger)
		},
	}
}

func loginAction(c *cli.Context, logger *zerolog.Logger) error {
	ctx := c.Context

	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}

	token := secrets.FromEnv(LoginTokenEnv)
	if token.Empty() {
		return apperrors.ErrLoginTokenRequired
	}

	binary, err := cog.Resolve(c.String("binary"), cfg.Cog.InstallDir)
	if err != nil {
		return err
	}

	container, err := di.New(&cfg, *logger)
	if err != nil {
		return err
	}
	client := cog.New(binary, di.MustGet[*step.Executor](container))
	if err := client.Login(ctx, token); err != nil {
		return err
	}

	logger.Info().Str("binary", binary).Msg("cog authenticated")
	return nil
}
