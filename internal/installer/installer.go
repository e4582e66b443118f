// Package installer fetches a pinned release build of the cog binary and
// places it on disk for the rest of the run.
package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the release download root for cog.
const DefaultBaseURL = "https://github.com/replicate/cog/releases/download"

// BinaryName is the file name the binary is installed under.
const BinaryName = "cog"

// Installer downloads one immutable release asset. No retry is performed;
// a failed download is fatal to the run.
type Installer struct {
	// Version is the pinned release tag, e.g. "v0.9.13".
	Version string

	// Dir is the directory the binary is installed into.
	Dir string

	// BaseURL is the release download root. Defaults to DefaultBaseURL.
	BaseURL string

	// Client is the HTTP client used for the download. Defaults to
	// http.DefaultClient.
	Client *http.Client
}

// New returns an Installer for the given release version and install
// directory.
func New(version, dir string) *Installer {
	return &Installer{
		Version: version,
		Dir:     dir,
		BaseURL: DefaultBaseURL,
		Client:  http.DefaultClient,
	}
}

// AssetName returns the release asset for the current platform. Cog names
// assets after `uname -s` and `uname -m`.
func AssetName() string {
	osName := map[string]string{
		"linux":  "Linux",
		"darwin": "Darwin",
	}[runtime.GOOS]
	if osName == "" {
		osName = runtime.GOOS
	}

	arch := runtime.GOARCH
	switch runtime.GOARCH {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		if runtime.GOOS == "linux" {
			arch = "aarch64"
		}
	}

	return fmt.Sprintf("%s_%s_%s", BinaryName, osName, arch)
}

// URL returns the fixed versioned download URL.
func (i *Installer) URL() string {
	base := i.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return fmt.Sprintf("%s/%s/%s", base, i.Version, AssetName())
}

// BinaryPath returns where the binary lives after a successful Install.
func (i *Installer) BinaryPath() string {
	return filepath.Join(i.Dir, BinaryName)
}

// Install downloads the pinned release, marks it executable, and moves it
// into place. The write goes through a temp file so a re-run or a failed
// download never leaves a half-written binary on the path.
func (i *Installer) Install(ctx context.Context) (string, error) {
	logger := zerolog.Ctx(ctx)
	url := i.URL()
	logger.Info().Str("url", url).Str("dir", i.Dir).Msg("installing cog")

	if err := os.MkdirAll(i.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create install dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build download request: %w", err)
	}

	client := i.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download %s: unexpected status %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(i.Dir, BinaryName+".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write binary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmp.Name(), 0o755); err != nil {
		return "", fmt.Errorf("failed to mark binary executable: %w", err)
	}

	path := i.BinaryPath()
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to move binary into place: %w", err)
	}

	logger.Info().Str("binary", path).Str("version", i.Version).Msg("cog installed")
	return path, nil
}

// DefaultInstallDir returns a per-user directory for the installed binary.
func DefaultInstallDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user cache dir: %w", err)
	}
	return filepath.Join(cache, "cogpush", "bin"), nil
}
