package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"
)

// LevelFlag is shared by all fixture commands.
var LevelFlag = &cli.StringFlag{
	Name:    "log-level",
	Usage:   "Log level (debug, info, warn, error)",
	Value:   "info",
	EnvVars: []string{"LOG_LEVEL"},
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// Setup installs a logger for the command's log level as the slog default.
func Setup(c *cli.Context) error {
	log, err := New(c.App.Writer, c.String(LevelFlag.Name))
	if err != nil {
		return err
	}
	slog.SetDefault(log)
	return nil
}
