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

// PushCommand returns the push command, which builds and publishes the
// model with an already-installed, already-authenticated cog binary.
func PushCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "push",
		Usage: "Build and push the model to its r8.im destination",
		Description: `Runs 'cog push <registry>/<account>/<model>'. The push authorization
token is read from REPLICATE_API_TOKEN and handed to cog via its
environment, never as an argument. The build and upload themselves are
cog's business; this command only surfaces the exit code.

Examples:
  REPLICATE_API_TOKEN=... cogpush push --account alice
  cogpush push --account alice --retries 2`,
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:    "binary",
				Aliases: []string{"b"},
				Usage:   "Path to the cog binary (default: install dir, then PATH)",
			},
			&cli.IntFlag{
				Name:    "retries",
				Usage:   "Additional push attempts after a failed push",
				EnvVars: []string{"COGPUSH_PUSH_RETRIES"},
			},
		),
		Action: func(c *cli.Context) error {
			return pushAction(c, logger)
		},
	}
}

func pushAction(c *cli.Context, logger *zerolog.Logger) error {
	ctx := c.Context

	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	apiToken := secrets.FromEnv(cog.APITokenEnv)
	if apiToken.Empty() {
		return apperrors.ErrAPITokenRequired
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

	id := cfg.Target()
	logger.Info().Stringer("target", id).Msg("pushing model")
	if err := client.PushWithRetry(ctx, id, apiToken, cfg.Push.Retries); err != nil {
		return err
	}

	logger.Info().Stringer("target", id).Msg("push complete")
	return nil
}
