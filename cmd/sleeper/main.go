package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/draganm/taskfixtures/internal/logging"
	"github.com/draganm/taskfixtures/internal/signals"
	"github.com/draganm/taskfixtures/internal/sleeper"
)

func main() {
	app := &cli.App{
		Name:  "sleeper",
		Usage: "A task that sleeps for T seconds and exits successfully",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "duration",
				Aliases: []string{"t"},
				Usage:   "Sleep duration, in seconds or as a Go duration",
				EnvVars: []string{"T"},
			},
			logging.LevelFlag,
		},
		Before: logging.Setup,
		Action: func(c *cli.Context) error {
			d, err := sleeper.ParseDuration(c.String("duration"))
			if err != nil {
				return err
			}

			ctx, stop := signals.NotifyContext(c.Context)
			defer stop()

			return sleeper.Run(ctx, c.App.Writer, d)
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running app", "error", err)
		os.Exit(1)
	}
}
