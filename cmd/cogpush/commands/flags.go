package commands

import (
	"github.com/tomparisbiz/cogpush/internal/config"
	"github.com/urfave/cli/v2"
)

// LoginTokenEnv names the environment variable carrying the cog login token.
const LoginTokenEnv = "REPLICATE_CLI_AUTH_TOKEN"

// commonFlags are shared by every command that needs the resolved
// configuration. Values from flags and their backing environment variables
// override the optional config file.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path to an optional YAML config file",
			Value:   config.DefaultFilePath,
			EnvVars: []string{"COGPUSH_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "account",
			Aliases: []string{"a"},
			Usage:   "Replicate account the model is published under",
			EnvVars: []string{"REPLICATE_USERNAME"},
		},
		&cli.StringFlag{
			Name:    "model",
			Aliases: []string{"m"},
			Usage:   "Model name within the account",
			EnvVars: []string{"COGPUSH_MODEL"},
		},
		&cli.StringFlag{
			Name:    "registry",
			Usage:   "Registry prefix of the push target",
			EnvVars: []string{"COGPUSH_REGISTRY"},
		},
		&cli.StringFlag{
			Name:    "cog-version",
			Usage:   "Pinned cog release tag to install",
			EnvVars: []string{"COG_VERSION"},
		},
		&cli.StringFlag{
			Name:    "install-dir",
			Usage:   "Directory the cog binary is installed into",
			EnvVars: []string{"COGPUSH_INSTALL_DIR"},
		},
	}
}

// resolveConfig loads the config file (if present) and layers the flag and
// environment overrides on top.
func resolveConfig(c *cli.Context) (config.Config, error) {
	cfg, _, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}

	if v := c.String("account"); v != "" {
		cfg.Account = v
	}
	if v := c.String("model"); v != "" {
		cfg.Model = v
	}
	if v := c.String("registry"); v != "" {
		cfg.Registry = v
	}
	if v := c.String("cog-version"); v != "" {
		cfg.Cog.Version = v
	}
	if v := c.String("install-dir"); v != "" {
		cfg.Cog.InstallDir = v
	}
	if c.IsSet("retries") {
		cfg.Push.Retries = c.Int("retries")
	}

	return cfg, nil
}
