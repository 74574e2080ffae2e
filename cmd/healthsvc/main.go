package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/draganm/taskfixtures/internal/healthsvc"
	"github.com/draganm/taskfixtures/internal/logging"
	"github.com/draganm/taskfixtures/internal/signals"
)

func main() {
	app := &cli.App{
		Name:  "healthsvc",
		Usage: "An HTTP service with fixed and time-gated health-check endpoints",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "port",
				Usage:    "Listen port",
				EnvVars:  []string{"PORT0"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "host",
				Usage:    "Listen host",
				EnvVars:  []string{"TASK_HOST"},
				Required: true,
			},
			&cli.BoolFlag{
				Name:    "slow-healthy",
				Usage:   "Serve /slowhealthy, which reports sick until --healthy-after has passed",
				EnvVars: []string{"SLOW_HEALTHY"},
			},
			&cli.DurationFlag{
				Name:    "healthy-after",
				Usage:   "How long /slowhealthy reports sick after startup",
				Value:   healthsvc.DefaultHealthyAfter,
				EnvVars: []string{"HEALTHY_AFTER"},
			},
			logging.LevelFlag,
		},
		Before: logging.Setup,
		Action: func(c *cli.Context) error {
			ctx, stop := signals.NotifyContext(c.Context)
			defer stop()

			server, err := healthsvc.New(&healthsvc.Config{
				Host:         c.String("host"),
				Port:         c.Int("port"),
				SlowHealthy:  c.Bool("slow-healthy"),
				HealthyAfter: c.Duration("healthy-after"),
			})
			if err != nil {
				return err
			}

			return server.Run(ctx)
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running app", "error", err)
		os.Exit(1)
	}
}
