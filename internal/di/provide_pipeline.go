package di

import (
	"github.com/tomparisbiz/cogpush/internal/config"
	"github.com/tomparisbiz/cogpush/internal/installer"
	"github.com/tomparisbiz/cogpush/internal/step"
)

// ProvideExecutor constructs the step executor wired to the process's
// standard streams.
func ProvideExecutor() *step.Executor {
	return step.NewExecutor()
}

// ProvideInstaller constructs the cog installer from the resolved
// configuration, defaulting the install dir to the user cache dir.
func ProvideInstaller(cfg *config.Config) (*installer.Installer, error) {
	dir := cfg.Cog.InstallDir
	if dir == "" {
		var err error
		dir, err = installer.DefaultInstallDir()
		if err != nil {
			return nil, err
		}
	}
	return installer.New(cfg.Cog.Version, dir), nil
}
