package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// PlanPath is the plan file or directory. PlanExplicit records whether
	// the operator named it; only then is a missing path an error, otherwise
	// the built-in default pipeline is used.
	PlanPath     string
	PlanExplicit bool

	// Chdir switches the working directory before anything else runs.
	Chdir string

	// EnvFile is the dotenv file merged into every step's environment.
	// EnvFileExplicit mirrors PlanExplicit for missing-file handling.
	EnvFile         string
	EnvFileExplicit bool

	DryRun bool

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	// Python and Pip are the interpreters used by the default pipeline.
	Python string
	Pip    string
}

// NewConfig validates a Config and fills interpreter defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PlanPath == "" && cfg.PlanExplicit {
		return nil, errors.New("plan path cannot be empty when set explicitly")
	}
	if cfg.Python == "" {
		cfg.Python = "python"
	}
	if cfg.Pip == "" {
		cfg.Pip = "pip"
	}
	return &cfg, nil
}
