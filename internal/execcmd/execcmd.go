// Package execcmd wraps subprocess invocation behind a small interface so
// the runner can be exercised with scripted results in tests.
package execcmd

import (
	"context"
	"errors"
	"io"
	"os/exec"
)

// Command describes a single subprocess invocation. Argv is the full command
// line; Env, when non-nil, is the complete environment for the process.
type Command struct {
	Argv   []string
	Dir    string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// Runner spawns external commands and reports their exit codes.
type Runner interface {
	// Run blocks until the command exits. It returns the process exit code
	// and a non-nil error when the command did not exit zero. When no exit
	// code is available (e.g. the binary was not found), the code is -1.
	Run(ctx context.Context, cmd Command) (int, error)
}

// OSRunner is the real Runner backed by os/exec.
type OSRunner struct{}

// ErrEmptyCommand is returned when a step has no argv to execute.
var ErrEmptyCommand = errors.New("empty command")

// Run implements Runner using exec.CommandContext. The subprocess inherits
// the given streams directly so its diagnostics pass through untouched.
func (OSRunner) Run(ctx context.Context, c Command) (int, error) {
	if len(c.Argv) == 0 {
		return -1, ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, c.Argv[0], c.Argv[1:]...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), err
	}
	return -1, err
}
