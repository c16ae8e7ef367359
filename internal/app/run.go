package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/stagehand/internal/ctxlog"
	"github.com/vk/stagehand/internal/envfile"
	"github.com/vk/stagehand/internal/plan"
	"github.com/vk/stagehand/internal/runner"
)

// Run executes the deployment pipeline: resolve the environment, resolve the
// plan, then hand it to the sequential runner. The first failing step aborts
// the whole run.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
	}

	if a.config.Chdir != "" {
		if err := os.Chdir(a.config.Chdir); err != nil {
			return fmt.Errorf("failed to change working directory: %w", err)
		}
		a.logger.Debug("Working directory changed.", "dir", a.config.Chdir)
	}

	var fileEnv map[string]string
	if a.config.EnvFile != "" {
		var err error
		fileEnv, err = envfile.Load(a.config.EnvFile, a.config.EnvFileExplicit)
		if err != nil {
			return err
		}
	}
	environ := envfile.Merge(fileEnv)
	if len(fileEnv) > 0 {
		a.logger.Debug("Env file merged into step environment.", "file", a.config.EnvFile, "vars", len(fileEnv))
	}

	p, err := a.resolvePlan(ctx, environ)
	if err != nil {
		return err
	}

	run := runner.New(a.exec, runner.Options{
		Environ: environ,
		Stdout:  a.outW,
		Stderr:  a.errW,
		DryRun:  a.config.DryRun,
	})

	a.logger.Info("🚀 Starting pipeline", "pipeline", p.Name, "steps", len(p.Steps))
	if err := run.Run(ctx, p); err != nil {
		a.logger.Error("Pipeline aborted.", "pipeline", p.Name, "error", err)
		return err
	}

	a.logger.Info("🏁 Pipeline finished.", "pipeline", p.Name)
	return nil
}

// resolvePlan loads the plan from disk, or falls back to the conventional
// install/collectstatic/migrate pipeline when no plan file was named and
// none exists at the conventional path.
func (a *App) resolvePlan(ctx context.Context, environ []string) (*plan.Plan, error) {
	if _, err := os.Stat(a.config.PlanPath); err != nil {
		if os.IsNotExist(err) && !a.config.PlanExplicit {
			a.logger.Info("No plan file found, using the conventional pipeline.", "path", a.config.PlanPath)
			return plan.Default(a.config.Python, a.config.Pip), nil
		}
		return nil, fmt.Errorf("error accessing plan path %s: %w", a.config.PlanPath, err)
	}

	p, err := a.loader.Load(ctx, environ, a.config.PlanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	return p, nil
}
