// Package plan defines the format-agnostic model of a deployment pipeline:
// an ordered list of external commands executed strictly one after another.
// Loaders (e.g. the HCL loader) translate their on-disk formats into this
// model, and the runner consumes it without knowing where it came from.
package plan
