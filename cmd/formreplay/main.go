package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/environment"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

const serviceName = "formreplay"

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		slog.Error("application error", logger.Error(err))
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:  serviceName,
		Usage: "Replay a scripted form session on a virtual clock",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Value:   string(environment.Development),
				Usage:   "Environment (development, staging, production)",
				EnvVars: []string{"APP_ENV"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "warn",
				Usage:   "Diagnostic log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "Load variables from .env files before reading FORM_* settings",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Replay a script and print every published state",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "script",
						Aliases:  []string{"s"},
						Usage:    "Path to the YAML script",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   string(logger.FormatText),
						Usage:   "Output format (json, text)",
					},
				},
				Action: func(c *cli.Context) error {
					return run(c, stdout, stderr)
				},
			},
		},
	}
}

func run(c *cli.Context, stdout, stderr io.Writer) error {
	format := logger.Format(c.String("format"))
	if format != logger.FormatJSON && format != logger.FormatText {
		return fmt.Errorf("invalid format %q: must be %q or %q", format, logger.FormatJSON, logger.FormatText)
	}
	level, err := logger.ParseLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	if err := config.LoadEnv(c.StringSlice("env-file")...); err != nil {
		return err
	}

	env := environment.Parse(c.String("env"))
	runID := slog.String("run_id", uuid.NewString())
	out := logger.New(
		logger.WithEnvironment(env, serviceName),
		logger.WithOutput(stdout),
		logger.WithFormat(format),
		logger.WithLevel(slog.LevelInfo),
		logger.WithAttr(runID),
	)
	// diagnostics take the environment from the record context
	diag := logger.New(
		logger.WithOutput(stderr),
		logger.WithFormat(logger.FormatText),
		logger.WithLevel(level),
		logger.WithAttr(slog.String("service", serviceName), runID),
		logger.WithContextExtractors(environment.LoggerExtractor()),
	)

	cfg, err := form.LoadConfig()
	if err != nil {
		return err
	}
	script, err := loadScript(c.String("script"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = environment.WithContext(ctx, env)

	r := &replayer{script: script, cfg: cfg, out: out, log: diag}
	return r.run(ctx)
}
