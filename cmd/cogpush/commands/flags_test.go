package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tomparisbiz/cogpush/internal/config"
	"github.com/urfave/cli/v2"
)

// runResolve runs resolveConfig through a real cli.App so flag and env
// precedence behaves exactly as in production.
func runResolve(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()

	var got config.Config
	var resolveErr error
	app := &cli.App{
		Flags: append(commonFlags(), &cli.IntFlag{Name: "retries"}),
		Action: func(c *cli.Context) error {
			got, resolveErr = resolveConfig(c)
			return nil
		},
	}

	err := app.Run(append([]string{"cogpush"}, args...))
	assert.NoError(t, err)
	return got, resolveErr
}

func TestResolveConfigDefaults(t *testing.T) {
	cfg, err := runResolve(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, "cyberpony-multi-lora", cfg.Model)
	assert.Equal(t, "r8.im", cfg.Registry)
	assert.Equal(t, config.DefaultCogVersion, cfg.Cog.Version)
}

func TestResolveConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cogpush.yaml")
	err := os.WriteFile(path, []byte("account: from-file\ncog:\n  version: v0.0.1\n"), 0o644)
	assert.NoError(t, err)

	cfg, err := runResolve(t,
		"--config", path,
		"--account", "from-flag",
		"--retries", "3",
	)
	assert.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Account)
	// Fields without a flag override keep the file value
	assert.Equal(t, "v0.0.1", cfg.Cog.Version)
	assert.Equal(t, 3, cfg.Push.Retries)
}

func TestResolveConfigEnvBackedFlags(t *testing.T) {
	t.Setenv("REPLICATE_USERNAME", "alice")
	t.Setenv("COG_VERSION", "v0.9.9")

	cfg, err := runResolve(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, "alice", cfg.Account)
	assert.Equal(t, "v0.9.9", cfg.Cog.Version)
	assert.Equal(t, "r8.im/alice/cyberpony-multi-lora", cfg.Target().String())
}
