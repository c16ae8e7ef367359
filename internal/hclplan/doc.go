// Package hclplan is the HCL implementation of plan.Loader. It discovers
// .hcl files from file or directory paths, decodes `pipeline` and `step`
// blocks, and evaluates attribute expressions against an EvalContext that
// exposes the merged process environment as the `env` object.
package hclplan
