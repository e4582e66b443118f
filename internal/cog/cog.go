// Package cog builds the shell-invocation descriptors for the installed cog
// binary. Cog's build and push internals are opaque to this tool; it is
// driven purely through its CLI.
package cog

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	apperrors "github.com/tomparisbiz/cogpush/internal/errors"
	"github.com/tomparisbiz/cogpush/internal/secrets"
	"github.com/tomparisbiz/cogpush/internal/step"
	"github.com/tomparisbiz/cogpush/internal/target"
)

// APITokenEnv is the environment variable cog reads the push authorization
// token from.
const APITokenEnv = "REPLICATE_API_TOKEN"

// Client invokes a specific installed cog binary.
type Client struct {
	binary   string
	executor *step.Executor
}

// New returns a Client for the binary at the given path.
func New(binary string, executor *step.Executor) *Client {
	return &Client{binary: binary, executor: executor}
}

// Resolve locates an already-installed cog binary: an explicit path wins,
// then the configured install dir, then PATH lookup.
func Resolve(explicit, installDir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if installDir != "" {
		candidate := filepath.Join(installDir, "cog")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	path, err := exec.LookPath("cog")
	if err != nil {
		return "", apperrors.ErrBinaryNotFound
	}
	return path, nil
}

// Binary returns the path of the wrapped binary.
func (c *Client) Binary() string {
	return c.binary
}

// VersionStep reports the installed version, confirming the binary runs.
func (c *Client) VersionStep() step.Step {
	return step.Step{
		Name:    "verify",
		Command: c.binary,
		Args:    []string{"--version"},
	}
}

// LoginStep authenticates against Replicate. The token travels on stdin so
// it never shows up in process listings.
func (c *Client) LoginStep(token secrets.Token) step.Step {
	return step.Step{
		Name:    "login",
		Command: c.binary,
		Args:    []string{"login", "--token-stdin"},
		Stdin:   token.Reader(),
	}
}

// PushStep builds and publishes the target. The API token is handed to cog
// through its environment, not its arguments.
func (c *Client) PushStep(id target.Identifier, apiToken secrets.Token) step.Step {
	return step.Step{
		Name:    "push",
		Command: c.binary,
		Args:    []string{"push", id.String()},
		Env: map[string]string{
			APITokenEnv: apiToken.Reveal(),
		},
	}
}

// Verify runs the version step immediately.
func (c *Client) Verify(ctx context.Context) error {
	return c.executor.RunStep(ctx, c.VersionStep())
}

// Login runs the login step immediately.
func (c *Client) Login(ctx context.Context, token secrets.Token) error {
	return c.executor.RunStep(ctx, c.LoginStep(token))
}

// Push runs the push step immediately.
func (c *Client) Push(ctx context.Context, id target.Identifier, apiToken secrets.Token) error {
	return c.executor.RunStep(ctx, c.PushStep(id, apiToken))
}

// PushWithRetry runs the push step with bounded exponential backoff. Only
// step failures (non-zero exits) are retried; a command that cannot start
// or a cancelled context is not. Zero retries means a single attempt.
func (c *Client) PushWithRetry(ctx context.Context, id target.Identifier, apiToken secrets.Token, retries int) error {
	if retries <= 0 {
		return c.Push(ctx, id, apiToken)
	}

	backoff := retry.WithMaxRetries(uint64(retries), retry.NewExponential(2*time.Second))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.Push(ctx, id, apiToken)
		var stepErr *step.StepError
		if errors.As(err, &stepErr) {
			zerolog.Ctx(ctx).Warn().
				Int("exit_code", stepErr.ExitCode).
				Msg("push failed, will retry")
			return retry.RetryableError(err)
		}
		return err
	})
}
