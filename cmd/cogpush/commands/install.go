package commands

import (
	"github.com/rs/zerolog"
	"github.com/tomparisbiz/cogpush/internal/cog"
	"github.com/tomparisbiz/cogpush/internal/di"
	"github.com/tomparisbiz/cogpush/internal/installer"
	"github.com/tomparisbiz/cogpush/internal/step"
	"github.com/urfave/cli/v2"
)

// InstallCommand returns the install command, which fetches the pinned cog
// release and verifies it runs.
func InstallCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Download the pinned cog release and verify it",
		Description: `Downloads the pinned cog release asset for this platform, marks it
executable, and runs 'cog --version' to confirm the binary works.

Examples:
  cogpush install
  cogpush install --cog-version v0.9.13 --install-dir ./bin`,
		Flags: append(commonFlags(),
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show what would be downloaded without downloading it",
			},
		),
		Action: func(c *cli.Context) error {
			return installAction(c, logger)
		},
	}
}

func installAction(c *cli.Context, logger *zerolog.Logger) error {
	ctx := c.Context

	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}

	container, err := di.New(&cfg, *logger)
	if err != nil {
		return err
	}
	inst := di.MustGet[*installer.Installer](container)

	if c.Bool("dry-run") {
		logger.Info().Msgf("DRY RUN: Would download %s", inst.URL())
		logger.Info().Msgf("DRY RUN: Would install to %s", inst.BinaryPath())
		return nil
	}

	binary, err := inst.Install(ctx)
	if err != nil {
		return err
	}

	client := cog.New(binary, di.MustGet[*step.Executor](container))
	if err := client.Verify(ctx); err != nil {
		return err
	}

	logger.Info().Msgf("cog %s installed at %s", cfg.Cog.Version, binary)
	return nil
}
