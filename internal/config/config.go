// Package config reads ambient defaults from STAGEHAND_* environment
// variables. CLI flags take precedence over anything parsed here.
package config

import (
	"github.com/caarlos0/env/v11"
)

// Env holds the environment-variable configuration surface.
type Env struct {
	LogLevel  string `env:"STAGEHAND_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"STAGEHAND_LOG_FORMAT" envDefault:"text"`
	PlanPath  string `env:"STAGEHAND_PLAN" envDefault:"deploy.hcl"`
	EnvFile   string `env:"STAGEHAND_ENV_FILE"`
	Python    string `env:"STAGEHAND_PYTHON" envDefault:"python"`
	Pip       string `env:"STAGEHAND_PIP" envDefault:"pip"`
}

// FromEnv parses the STAGEHAND_* variables into an Env.
func FromEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, err
	}
	return cfg, nil
}
