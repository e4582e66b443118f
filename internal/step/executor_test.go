package step

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestExecutor() (*Executor, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Executor{Stdout: &stdout, Stderr: &stderr}, &stdout, &stderr
}

func TestRunStepCapturesExitCode(t *testing.T) {
	e, _, _ := newTestExecutor()

	err := e.RunStep(context.Background(), Step{
		Name:    "failing",
		Command: "/bin/sh",
		Args:    []string{"-c", "exit 3"},
	})

	var stepErr *StepError
	assert.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "failing", stepErr.Step)
	assert.Equal(t, 3, stepErr.ExitCode)
	assert.Contains(t, stepErr.Error(), `step "failing" failed with exit code 3`)
}

func TestRunStepSuccess(t *testing.T) {
	e, stdout, _ := newTestExecutor()

	err := e.RunStep(context.Background(), Step{
		Name:    "echo",
		Command: "/bin/sh",
		Args:    []string{"-c", "echo hello"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "hello\n", stdout.String())
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	e, _, _ := newTestExecutor()
	marker := filepath.Join(t.TempDir(), "never-created")

	err := e.Run(context.Background(), []Step{
		{Name: "first", Command: "/bin/sh", Args: []string{"-c", "exit 1"}},
		{Name: "second", Command: "touch", Args: []string{marker}},
	})

	var stepErr *StepError
	assert.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "first", stepErr.Step)

	_, statErr := os.Stat(marker)
	assert.True(t, os.IsNotExist(statErr), "second step must not run after a failure")
}

func TestRunExecutesInOrder(t *testing.T) {
	e, stdout, _ := newTestExecutor()

	err := e.Run(context.Background(), []Step{
		{Name: "a", Command: "/bin/sh", Args: []string{"-c", "echo a"}},
		{Name: "b", Command: "/bin/sh", Args: []string{"-c", "echo b"}},
		{Name: "c", Command: "/bin/sh", Args: []string{"-c", "echo c"}},
	})

	assert.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", stdout.String())
}

func TestRunStepEnvOverride(t *testing.T) {
	e, stdout, _ := newTestExecutor()

	err := e.RunStep(context.Background(), Step{
		Name:    "env",
		Command: "/bin/sh",
		Args:    []string{"-c", `printf "%s" "$COGPUSH_TEST_OVERRIDE"`},
		Env:     map[string]string{"COGPUSH_TEST_OVERRIDE": "from-step"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "from-step", stdout.String())
}

func TestRunStepEnvOverrideWinsOverInherited(t *testing.T) {
	t.Setenv("COGPUSH_TEST_OVERRIDE", "from-parent")
	e, stdout, _ := newTestExecutor()

	err := e.RunStep(context.Background(), Step{
		Name:    "env",
		Command: "/bin/sh",
		Args:    []string{"-c", `printf "%s" "$COGPUSH_TEST_OVERRIDE"`},
		Env:     map[string]string{"COGPUSH_TEST_OVERRIDE": "from-step"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "from-step", stdout.String())
}

func TestRunStepInheritsParentEnv(t *testing.T) {
	t.Setenv("COGPUSH_TEST_INHERITED", "inherited-value")
	e, stdout, _ := newTestExecutor()

	err := e.RunStep(context.Background(), Step{
		Name:    "env",
		Command: "/bin/sh",
		Args:    []string{"-c", `printf "%s" "$COGPUSH_TEST_INHERITED"`},
	})

	assert.NoError(t, err)
	assert.Equal(t, "inherited-value", stdout.String())
}

func TestRunStepStdin(t *testing.T) {
	e, stdout, _ := newTestExecutor()

	err := e.RunStep(context.Background(), Step{
		Name:    "stdin",
		Command: "cat",
		Stdin:   strings.NewReader("token-on-stdin"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "token-on-stdin", stdout.String())
}

func TestRunStepStartFailure(t *testing.T) {
	e, _, _ := newTestExecutor()

	err := e.RunStep(context.Background(), Step{
		Name:    "missing",
		Command: "/nonexistent/binary",
	})

	assert.Error(t, err)
	var stepErr *StepError
	assert.False(t, errors.As(err, &stepErr), "start failures are not step failures")
	assert.Contains(t, err.Error(), `failed to start step "missing"`)
}

func TestRunStepCancellation(t *testing.T) {
	e, _, _ := newTestExecutor()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := e.RunStep(ctx, Step{
		Name:    "sleepy",
		Command: "sleep",
		Args:    []string{"10"},
	})

	assert.Error(t, err)
	var stepErr *StepError
	assert.False(t, errors.As(err, &stepErr), "cancellation is not a step failure")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
