// Package config loads the publish configuration from an optional YAML file
// with flag and environment overrides layered on top by the CLI.
package config

import (
	"fmt"
	"os"

	apperrors "github.com/tomparisbiz/cogpush/internal/errors"
	"github.com/tomparisbiz/cogpush/internal/target"
	"gopkg.in/yaml.v3"
)

// DefaultFilePath is where the CLI looks for a config file when --config is
// not given.
const DefaultFilePath = "cogpush.yaml"

// Cog configures how the cog binary is installed.
type Cog struct {
	// Version is the pinned cog release tag.
	Version string `yaml:"version"`

	// InstallDir is where the binary is placed. Empty means a directory
	// under the user cache dir.
	InstallDir string `yaml:"installDir"`
}

// Push configures the push step.
type Push struct {
	// Retries is the number of additional push attempts after a failure.
	// Zero (the default) matches the original one-shot behavior.
	Retries int `yaml:"retries"`
}

// Config is the full tool configuration.
type Config struct {
	Account  string `yaml:"account"`
	Model    string `yaml:"model"`
	Registry string `yaml:"registry"`
	Cog      Cog    `yaml:"cog"`
	Push     Push   `yaml:"push"`
}

// Default returns a Config carrying the built-in defaults.
func Default() Config {
	return Config{
		Model:    target.DefaultModel,
		Registry: target.DefaultRegistry,
		Cog: Cog{
			Version: DefaultCogVersion,
		},
	}
}

// DefaultCogVersion is the pinned cog release installed when no version is
// configured.
const DefaultCogVersion = "v0.9.13"

// Load reads the config file at path on top of the defaults. A missing file
// is not an error; the second return value reports whether a file was read.
func Load(path string) (Config, bool, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, false, nil
		}
		return c, false, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return c, true, nil
}

// Target builds the push destination from the configured names.
func (c Config) Target() target.Identifier {
	return target.Identifier{
		Registry: c.Registry,
		Account:  c.Account,
		Model:    c.Model,
	}
}

// Validate checks that the configuration can produce a valid publish run.
func (c Config) Validate() error {
	if c.Account == "" {
		return apperrors.ErrAccountRequired
	}
	if err := c.Target().Validate(); err != nil {
		return err
	}
	if c.Cog.Version == "" {
		return fmt.Errorf("cog version must not be empty")
	}
	if c.Push.Retries < 0 {
		return fmt.Errorf("push retries must not be negative, got %d", c.Push.Retries)
	}
	return nil
}
