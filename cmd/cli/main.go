package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/stagehand/internal/app"
	"github.com/vk/stagehand/internal/cli"
	"github.com/vk/stagehand/internal/execcmd"
	"github.com/vk/stagehand/internal/hclplan"
	"github.com/vk/stagehand/internal/runner"
)

// main is the entrypoint for the stagehand application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)

		// A failing step's own exit status is the process exit status.
		var stepErr *runner.StepError
		if errors.As(err, &stepErr) && stepErr.ExitCode > 0 {
			os.Exit(stepErr.ExitCode)
		}
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, errW io.Writer, args []string) (err error) {
	// A bug in config or plan loading must surface as a clean error and a
	// non-zero exit, never a stack trace.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("a critical startup error occurred: %v", r)
		}
	}()

	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Instantiate the concrete HCL loader and the real command backend.
	loader := hclplan.NewLoader()
	stagehandApp := app.NewApp(outW, errW, appConfig, loader, execcmd.OSRunner{})

	return stagehandApp.Run(context.Background())
}
