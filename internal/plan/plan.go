package plan

import (
	"context"
	"time"
)

// Status describes the lifecycle state of a single step.
type Status int

const (
	Pending Status = iota
	Running
	Succeeded
	Failed
	Skipped
)

// String returns the human-readable form used in logs.
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Step is a single external command in the pipeline. Command holds the full
// argv; Dir and Env are optional per-step overrides on top of the pipeline's
// base environment.
type Step struct {
	Name    string
	Command []string
	Dir     string
	Env     map[string]string

	// Execution bookkeeping, written by the runner.
	Status   Status
	ExitCode int
	Duration time.Duration
}

// Plan is an ordered pipeline of steps. Order is execution order; there is
// no dependency graph because execution is strictly sequential.
type Plan struct {
	Name  string
	Steps []*Step
}

// Loader translates an on-disk pipeline definition into a Plan. The environ
// slice ("KEY=VALUE" pairs) backs any environment interpolation the format
// supports.
type Loader interface {
	Load(ctx context.Context, environ []string, paths ...string) (*Plan, error)
}
