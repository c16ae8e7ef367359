package hclplan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/stagehand/internal/ctxlog"
	"github.com/vk/stagehand/internal/plan"
)

// Loader is the HCL-specific implementation of the plan.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL plan loader.
func NewLoader() *Loader {
	return &Loader{}
}

var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "pipeline", LabelNames: []string{"name"}},
		{Type: "step", LabelNames: []string{"name"}},
	},
}

var stepSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "run", Required: true},
		{Name: "dir"},
		{Name: "env"},
	},
}

// Load orchestrates the HCL plan loading process. Paths may be single files
// or directories walked for .hcl files; step order follows file order.
func (l *Loader) Load(ctx context.Context, environ []string, paths ...string) (*plan.Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL plan loader started.", "path_count", len(paths))

	files, err := l.discoverFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl plan files found in %s", strings.Join(paths, ", "))
	}
	logger.Debug("Discovered plan files.", "count", len(files))

	evalCtx := newEvalContext(environ)
	parser := hclparse.NewParser()

	p := &plan.Plan{Name: "deploy"}
	named := false
	seen := make(map[string]string)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse plan file %s: %w", file, diags)
		}

		content, diags := hclFile.Body.Content(rootSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode plan file %s: %w", file, diags)
		}

		for _, block := range content.Blocks {
			switch block.Type {
			case "pipeline":
				if named {
					return nil, fmt.Errorf("%s: duplicate pipeline block %q (pipeline already named %q)", file, block.Labels[0], p.Name)
				}
				p.Name = block.Labels[0]
				named = true
			case "step":
				step, err := l.decodeStep(block, evalCtx)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", file, err)
				}
				if prev, dup := seen[step.Name]; dup {
					return nil, fmt.Errorf("%s: duplicate step %q (already defined in %s)", file, step.Name, prev)
				}
				seen[step.Name] = file
				p.Steps = append(p.Steps, step)
			}
		}
	}

	if len(p.Steps) == 0 {
		return nil, fmt.Errorf("plan %q defines no steps", p.Name)
	}

	logger.Debug("HCL plan loading complete.", "pipeline", p.Name, "steps", len(p.Steps))
	return p, nil
}

// decodeStep translates a single `step` block into the plan model.
func (l *Loader) decodeStep(block *hcl.Block, evalCtx *hcl.EvalContext) (*plan.Step, error) {
	name := block.Labels[0]
	content, diags := block.Body.Content(stepSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid step %q: %w", name, diags)
	}

	step := &plan.Step{Name: name}

	runVal, diags := content.Attributes["run"].Expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("step %q: failed to evaluate run: %w", name, diags)
	}
	argv, err := toStringSlice(runVal)
	if err != nil {
		return nil, fmt.Errorf("step %q: run must be a list of strings: %w", name, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("step %q: run must not be empty", name)
	}
	step.Command = argv

	if attr, ok := content.Attributes["dir"]; ok {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("step %q: failed to evaluate dir: %w", name, diags)
		}
		dir, err := toString(val)
		if err != nil {
			return nil, fmt.Errorf("step %q: dir must be a string: %w", name, err)
		}
		step.Dir = dir
	}

	if attr, ok := content.Attributes["env"]; ok {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("step %q: failed to evaluate env: %w", name, diags)
		}
		envMap, err := toStringMap(val)
		if err != nil {
			return nil, fmt.Errorf("step %q: env must be a map of strings: %w", name, err)
		}
		step.Env = envMap
	}

	return step, nil
}

// newEvalContext exposes the merged environment as the `env` object so plan
// files can reference variables like env.DJANGO_SETTINGS_MODULE.
func newEvalContext(environ []string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			vars[k] = cty.StringVal(v)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

// discoverFiles walks all given paths and returns a flat list of .hcl files.
func (l *Loader) discoverFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing plan path %s: %w", path, err)
		}

		if !info.IsDir() {
			if _, dup := seen[path]; !dup {
				files = append(files, path)
				seen[path] = struct{}{}
			}
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(p) == ".hcl" {
				if _, dup := seen[p]; !dup {
					files = append(files, p)
					seen[p] = struct{}{}
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func toString(val cty.Value) (string, error) {
	val, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", err
	}
	if val.IsNull() {
		return "", fmt.Errorf("value is null")
	}
	return val.AsString(), nil
}

func toStringSlice(val cty.Value) ([]string, error) {
	val, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, err
	}
	if val.IsNull() {
		return nil, fmt.Errorf("value is null")
	}
	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if v.IsNull() {
			return nil, fmt.Errorf("element %d is null", len(out))
		}
		out = append(out, v.AsString())
	}
	return out, nil
}

func toStringMap(val cty.Value) (map[string]string, error) {
	val, err := convert.Convert(val, cty.Map(cty.String))
	if err != nil {
		return nil, err
	}
	if val.IsNull() {
		return nil, fmt.Errorf("value is null")
	}
	out := make(map[string]string)
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		if v.IsNull() {
			return nil, fmt.Errorf("value for %q is null", k.AsString())
		}
		out[k.AsString()] = v.AsString()
	}
	return out, nil
}
