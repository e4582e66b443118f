package commands

import (
	"github.com/rs/zerolog"
	"github.com/tomparisbiz/cogpush/internal/cog"
	"github.com/tomparisbiz/cogpush/internal/di"
	"github.com/tomparisbiz/cogpush/internal/installer"
	"github.com/tomparisbiz/cogpush/internal/pipeline"
	"github.com/tomparisbiz/cogpush/internal/secrets"
	"github.com/tomparisbiz/cogpush/internal/step"
	"github.com/urfave/cli/v2"
)

// PublishCommand returns the publish command, the full three-step run.
func PublishCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "publish",
		Usage: "Install cog, authenticate, and push the model to Replicate",
		Description: `Runs the full publish sequence:

  1. install   - download the pinned cog release and verify it runs
  2. login     - authenticate cog via stdin with REPLICATE_CLI_AUTH_TOKEN
  3. push      - build and push the model, authorized by REPLICATE_API_TOKEN

The steps run strictly in order; the first non-zero exit aborts the run.
There is no rollback of a partially completed push.

Examples:
  # Dry run - show what would happen
  REPLICATE_USERNAME=alice cogpush publish --dry-run

  # Publish with retries on a flaky connection
  cogpush publish --account alice --retries 2`,
		Flags: append(commonFlags(),
			&cli.IntFlag{
				Name:    "retries",
				Usage:   "Additional push attempts after a failed push (install and login are never retried)",
				EnvVars: []string{"COGPUSH_PUSH_RETRIES"},
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show the publish plan without downloading or pushing anything",
			},
		),
		Action: func(c *cli.Context) error {
			return publishAction(c, logger)
		},
	}
}

func publishAction(c *cli.Context, logger *zerolog.Logger) error {
	ctx := c.Context

	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	loginToken := secrets.FromEnv(LoginTokenEnv)
	apiToken := secrets.FromEnv(cog.APITokenEnv)

	container, err := di.New(&cfg, *logger)
	if err != nil {
		return err
	}
	inst := di.MustGet[*installer.Installer](container)

	if c.Bool("dry-run") {
		logger.Info().Msg("DRY RUN: Would run the following steps:")
		logger.Info().Msgf("  1. install cog %s from %s", cfg.Cog.Version, inst.URL())
		logger.Info().Msgf("  2. login with %s via stdin (token set: %v)", LoginTokenEnv, !loginToken.Empty())
		logger.Info().Msgf("  3. push %s (token set: %v)", cfg.Target(), !apiToken.Empty())
		if cfg.Push.Retries > 0 {
			logger.Info().Msgf("DRY RUN: Push would retry up to %d time(s)", cfg.Push.Retries)
		}
		return nil
	}

	p := pipeline.New(inst, di.MustGet[*step.Executor](container), pipeline.Options{
		Target:      cfg.Target(),
		LoginToken:  loginToken,
		APIToken:    apiToken,
		PushRetries: cfg.Push.Retries,
	})

	logger.Info().Str("run_id", p.RunID()).Msg("starting publish")
	if err := p.Run(ctx); err != nil {
		return err
	}

	logger.Info().Msg("")
	logger.Info().Msg("========================================")
	logger.Info().Msg("Publish Complete!")
	logger.Info().Msg("========================================")
	logger.Info().Msgf("Target:  %s", cfg.Target())
	logger.Info().Msgf("Run ID:  %s", p.RunID())
	logger.Info().Msgf("Binary:  %s", inst.BinaryPath())
	return nil
}
