package runner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vk/stagehand/internal/ctxlog"
	"github.com/vk/stagehand/internal/execcmd"
	"github.com/vk/stagehand/internal/plan"
)

// StepError reports the first failing step of a run. ExitCode carries the
// subprocess exit status so it can be propagated as the process exit code.
type StepError struct {
	StepName string
	ExitCode int
	Err      error
}

// Error implements the error interface for StepError.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.StepName, e.Err)
}

// Unwrap exposes the underlying execution error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Options configures a Runner.
type Options struct {
	// Environ is the base environment for every step ("KEY=VALUE" pairs).
	Environ []string
	// Stdout and Stderr receive the subprocesses' streams untouched.
	Stdout io.Writer
	Stderr io.Writer
	// DryRun logs the resolved commands without spawning anything.
	DryRun bool
}

// Runner drives a plan over an execcmd.Runner.
type Runner struct {
	exec execcmd.Runner
	opts Options
}

// New creates a Runner that executes steps through the given backend.
func New(exec execcmd.Runner, opts Options) *Runner {
	return &Runner{exec: exec, opts: opts}
}

// Run executes the plan's steps in order. It returns nil only when every
// step exited zero; otherwise it returns a *StepError for the failing step
// after marking the remaining steps skipped.
func (r *Runner) Run(ctx context.Context, p *plan.Plan) error {
	logger := ctxlog.FromContext(ctx)

	for i, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			r.skipFrom(ctx, p, i, err)
			return err
		}

		stepLogger := logger.With("step", step.Name)
		step.Status = plan.Running
		stepLogger.Info("▶️ Starting step", "command", strings.Join(step.Command, " "))

		if r.opts.DryRun {
			step.Status = plan.Succeeded
			stepLogger.Info("Dry run, command not executed.")
			continue
		}

		start := time.Now()
		code, err := r.exec.Run(ctx, execcmd.Command{
			Argv:   step.Command,
			Dir:    step.Dir,
			Env:    r.stepEnviron(step),
			Stdout: r.opts.Stdout,
			Stderr: r.opts.Stderr,
		})
		step.Duration = time.Since(start)
		step.ExitCode = code

		if err != nil {
			step.Status = plan.Failed
			stepLogger.Error("Step failed.", "exit_code", code, "error", err, "duration", step.Duration)
			r.skipFrom(ctx, p, i+1, err)
			return &StepError{StepName: step.Name, ExitCode: code, Err: err}
		}

		step.Status = plan.Succeeded
		stepLogger.Info("✅ Finished step", "duration", step.Duration)
	}

	return nil
}

// skipFrom marks every step at index i and beyond as skipped.
func (r *Runner) skipFrom(ctx context.Context, p *plan.Plan, i int, cause error) {
	logger := ctxlog.FromContext(ctx)
	for _, step := range p.Steps[i:] {
		step.Status = plan.Skipped
		logger.Warn("Skipping step.", "step", step.Name, "cause", cause)
	}
}

// stepEnviron overlays the step's own env entries on the base environment.
// Later entries win, which gives step-level values precedence.
func (r *Runner) stepEnviron(step *plan.Step) []string {
	if len(step.Env) == 0 {
		return r.opts.Environ
	}
	environ := make([]string, 0, len(r.opts.Environ)+len(step.Env))
	environ = append(environ, r.opts.Environ...)
	for k, v := range step.Env {
		environ = append(environ, k+"="+v)
	}
	return environ
}
