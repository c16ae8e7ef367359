package app

import (
	"io"
	"log/slog"

	"github.com/vk/stagehand/internal/execcmd"
	"github.com/vk/stagehand/internal/plan"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	config *Config
	loader plan.Loader
	exec   execcmd.Runner
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. The loader and
// execution backend are injected so tests can substitute either.
func NewApp(outW, errW io.Writer, cfg *Config, loader plan.Loader, exec execcmd.Runner) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		errW:   errW,
		logger: logger,
		config: cfg,
		loader: loader,
		exec:   exec,
	}
}
