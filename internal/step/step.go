// Package step models the shell invocations that make up a publish run and
// executes them in order with early-exit-on-failure semantics.
package step

import (
	"fmt"
	"io"
)

// Step describes one external command invocation.
type Step struct {
	// Name identifies the step in errors and logs (install, login, push).
	Name string

	// Command is the binary to run.
	Command string

	// Args are the command arguments. Secret tokens must never appear here.
	Args []string

	// Env holds environment variable overrides added on top of the
	// inherited environment.
	Env map[string]string

	// Stdin, when non-nil, is piped to the process. Used to deliver the
	// login token without exposing it in process listings.
	Stdin io.Reader

	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// StepError reports a step that exited non-zero. It is the only failure
// class a run produces for completed-but-failed commands.
type StepError struct {
	Step     string
	ExitCode int
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed with exit code %d", e.Step, e.ExitCode)
}
