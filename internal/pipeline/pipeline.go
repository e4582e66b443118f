// Package pipeline sequences the three publish steps: install the pinned
// cog binary, authenticate it, and push the target model. Steps run
// strictly in order; the first failure aborts the run with no retry of the
// earlier steps and no rollback.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
	"github.com/tomparisbiz/cogpush/internal/cog"
	apperrors "github.com/tomparisbiz/cogpush/internal/errors"
	"github.com/tomparisbiz/cogpush/internal/secrets"
	"github.com/tomparisbiz/cogpush/internal/step"
	"github.com/tomparisbiz/cogpush/internal/target"
)

// BinaryInstaller places the cog binary on disk and returns its path.
type BinaryInstaller interface {
	Install(ctx context.Context) (string, error)
}

// Options carries the per-run inputs.
type Options struct {
	// Target is the push destination.
	Target target.Identifier

	// LoginToken authenticates `cog login`. Delivered via stdin only.
	LoginToken secrets.Token

	// APIToken authorizes `cog push`. Delivered via environment only.
	APIToken secrets.Token

	// PushRetries is the number of additional push attempts after a
	// failed push. Zero preserves the original one-shot behavior.
	// Install and login are never retried.
	PushRetries int
}

// Pipeline is the publish orchestrator. A Pipeline runs exactly once.
type Pipeline struct {
	installer BinaryInstaller
	executor  *step.Executor
	opts      Options

	runID string
	state State
}

// New creates a Pipeline with a fresh run ID.
func New(installer BinaryInstaller, executor *step.Executor, opts Options) *Pipeline {
	return &Pipeline{
		installer: installer,
		executor:  executor,
		opts:      opts,
		runID:     ksuid.New().String(),
		state:     StatePending,
	}
}

// RunID returns the run identifier carried in log context.
func (p *Pipeline) RunID() string {
	return p.runID
}

// State returns the current orchestration state.
func (p *Pipeline) State() State {
	return p.state
}

// Run executes the publish sequence. The error from a failed run reports
// the phase it failed in and wraps the step failure, so the exit code is
// recoverable with errors.As.
func (p *Pipeline) Run(ctx context.Context) error {
	if p.state != StatePending {
		return fmt.Errorf("pipeline already ran (state %s)", p.state)
	}

	logger := zerolog.Ctx(ctx).With().
		Str("run_id", p.runID).
		Str("target", p.opts.Target.String()).
		Logger()
	ctx = logger.WithContext(ctx)

	if err := p.transition(ctx, StateInstalling); err != nil {
		return err
	}
	binary, err := p.installer.Install(ctx)
	if err != nil {
		return p.fail(ctx, err)
	}
	client := cog.New(binary, p.executor)
	if err := client.Verify(ctx); err != nil {
		return p.fail(ctx, err)
	}

	if err := p.transition(ctx, StateAuthenticating); err != nil {
		return err
	}
	if p.opts.LoginToken.Empty() {
		return p.fail(ctx, apperrors.ErrLoginTokenRequired)
	}
	if err := client.Login(ctx, p.opts.LoginToken); err != nil {
		return p.fail(ctx, err)
	}

	if err := p.transition(ctx, StatePushing); err != nil {
		return err
	}
	if p.opts.APIToken.Empty() {
		return p.fail(ctx, apperrors.ErrAPITokenRequired)
	}
	if err := client.PushWithRetry(ctx, p.opts.Target, p.opts.APIToken, p.opts.PushRetries); err != nil {
		return p.fail(ctx, err)
	}

	if err := p.transition(ctx, StateDone); err != nil {
		return err
	}
	logger.Info().Msg("publish complete")
	return nil
}

func (p *Pipeline) transition(ctx context.Context, to State) error {
	if !isAllowedTransition(p.state, to) {
		return fmt.Errorf("disallowed transition: %s -> %s", p.state, to)
	}
	zerolog.Ctx(ctx).Debug().
		Stringer("from", p.state).
		Stringer("to", to).
		Msg("state transition")
	p.state = to
	return nil
}

// fail moves the run to the terminal Failed state and wraps the cause with
// the phase it failed in.
func (p *Pipeline) fail(ctx context.Context, cause error) error {
	failedIn := p.state
	if isAllowedTransition(p.state, StateFailed) {
		p.state = StateFailed
	}
	zerolog.Ctx(ctx).Error().Err(cause).Stringer("state", failedIn).Msg("publish failed")
	return fmt.Errorf("publish failed while %s: %w", failedIn, cause)
}
