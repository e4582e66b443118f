package step

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
)

// Executor runs steps sequentially, inheriting the parent environment plus
// per-step overrides. Execution is strictly ordered: a failing step aborts
// the remainder of the list.
type Executor struct {
	// Stdout and Stderr receive the child process output. They default to
	// the executor process's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecutor returns an Executor wired to the process's standard streams.
func NewExecutor() *Executor {
	return &Executor{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes steps in order. It returns on the first failure, leaving the
// remaining steps untouched.
func (e *Executor) Run(ctx context.Context, steps []Step) error {
	for _, s := range steps {
		if err := e.RunStep(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// RunStep executes a single step, blocking until the process exits. A
// non-zero exit is returned as a *StepError; a process that could not be
// started is returned as a wrapped error.
func (e *Executor) RunStep(ctx context.Context, s Step) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("step", s.Name).
		Str("command", s.Command).
		Strs("args", s.Args).
		Msg("running step")

	cmd := exec.CommandContext(ctx, s.Command, s.Args...)
	cmd.Dir = s.Dir
	cmd.Stdin = s.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	cmd.Env = mergedEnv(s.Env)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if ctx.Err() != nil {
				return fmt.Errorf("step %q cancelled: %w", s.Name, ctx.Err())
			}
			return &StepError{Step: s.Name, ExitCode: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to start step %q: %w", s.Name, err)
	}
	return nil
}

// mergedEnv layers the overrides over the inherited environment. Later
// entries win for duplicate keys, so appending the overrides is enough.
func mergedEnv(overrides map[string]string) []string {
	env := os.Environ()
	for key, value := range overrides {
		env = append(env, key+"="+value)
	}
	return env
}
