package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vk/stagehand/internal/app"
	"github.com/vk/stagehand/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Invoking the binary with no arguments is valid and runs the conventional
// pipeline, matching the original deploy script.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	envCfg, err := config.FromEnv()
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid environment configuration: %v", err)}
	}

	flagSet := flag.NewFlagSet("stagehand", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Stagehand - a fail-fast deployment pipeline runner.

Usage:
  stagehand [options] [PLAN_PATH]

Arguments:
  PLAN_PATH
    Path to a single .hcl plan file or a directory containing .hcl files.
    When omitted, deploy.hcl is used if present; otherwise the conventional
    install / collectstatic / migrate pipeline runs as-is.

Options:
`)
		flagSet.PrintDefaults()
	}

	planFlag := flagSet.String("plan", "", "Path to the plan file or directory.")
	pFlag := flagSet.String("p", "", "Path to the plan file or directory (shorthand).")
	chdirFlag := flagSet.String("chdir", "", "Working directory for the whole run.")
	envFileFlag := flagSet.String("env-file", "", "Dotenv file merged into every step's environment. Defaults to .env when present.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Log the resolved commands without executing them.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", envCfg.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envCfg.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	planPath := ""
	planExplicit := true
	if *planFlag != "" {
		planPath = *planFlag
	} else if *pFlag != "" {
		planPath = *pFlag
	} else if flagSet.NArg() > 0 {
		planPath = flagSet.Arg(0)
	} else {
		planPath = envCfg.PlanPath
		// A plan named through STAGEHAND_PLAN is as deliberate as a flag; a
		// typo there must fail instead of silently running the built-in
		// pipeline. Only the conventional deploy.hcl lookup may fall back.
		_, planExplicit = os.LookupEnv("STAGEHAND_PLAN")
	}

	envFile := *envFileFlag
	envFileExplicit := envFile != ""
	if envFile == "" {
		envFile = envCfg.EnvFile
		if envFile == "" {
			envFile = ".env"
		}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg, err := app.NewConfig(app.Config{
		PlanPath:        planPath,
		PlanExplicit:    planExplicit,
		Chdir:           *chdirFlag,
		EnvFile:         envFile,
		EnvFileExplicit: envFileExplicit,
		DryRun:          *dryRunFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
		Python:          envCfg.Python,
		Pip:             envCfg.Pip,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return cfg, false, nil
}
