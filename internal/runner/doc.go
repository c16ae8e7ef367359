// Package runner executes a plan strictly sequentially with fail-fast
// semantics: the first failing step aborts the run and every later step is
// marked skipped without ever starting. There is no retry, no cleanup, and
// no per-step timeout; cancellation comes only from the caller's context.
package runner
