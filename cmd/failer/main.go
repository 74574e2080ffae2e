package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/draganm/taskfixtures/internal/logging"
)

func main() {
	app := &cli.App{
		Name:  "failer",
		Usage: "A task that fails immediately",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "exit-code",
				Usage:   "Exit code to fail with",
				Value:   1,
				EnvVars: []string{"FAILER_EXIT_CODE"},
			},
			logging.LevelFlag,
		},
		Before: logging.Setup,
		Action: func(c *cli.Context) error {
			code := c.Int("exit-code")
			if code <= 0 || code > 255 {
				return fmt.Errorf("exit code must be between 1 and 255, got %d", code)
			}

			fmt.Fprintln(c.App.Writer, "Failing now")
			fmt.Fprintln(c.App.ErrWriter, "ERROR: intentional failure")
			return cli.Exit("", code)
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running app", "error", err)
		os.Exit(1)
	}
}
