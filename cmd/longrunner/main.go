package main

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/draganm/taskfixtures/internal/logging"
	"github.com/draganm/taskfixtures/internal/longrunner"
	"github.com/draganm/taskfixtures/internal/signals"
)

func main() {
	app := &cli.App{
		Name:  "longrunner",
		Usage: "A task that keeps running until it receives a termination signal",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:    "interval",
				Usage:   "Pause between status lines",
				Value:   longrunner.DefaultInterval,
				EnvVars: []string{"LONGRUNNER_INTERVAL"},
			},
			logging.LevelFlag,
		},
		Before: logging.Setup,
		Action: func(c *cli.Context) error {
			ctx, stop := signals.NotifyContext(c.Context)
			defer stop()

			instance := uuid.New()
			slog.Debug("Starting long-runner", "instance", instance, "interval", c.Duration("interval"))

			return longrunner.Run(ctx, longrunner.Config{
				Out:      c.App.Writer,
				Interval: c.Duration("interval"),
				Instance: instance,
			})
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running app", "error", err)
		os.Exit(1)
	}
}
