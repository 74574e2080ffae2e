// Package longrunner implements a task that runs until it is told to stop.
package longrunner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/draganm/taskfixtures/internal/signals"
)

// DefaultInterval is the pause between status lines.
const DefaultInterval = 5 * time.Second

// Config holds long-runner configuration
type Config struct {
	Out      io.Writer
	Interval time.Duration
	Instance uuid.UUID
}

// Run prints a status line every interval until ctx is cancelled. Cancellation
// is the normal way to end the task, so Run returns nil when it happens.
func Run(ctx context.Context, cfg Config) error {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	if cfg.Instance == uuid.Nil {
		cfg.Instance = uuid.New()
	}

	startTime := time.Now()
	fmt.Fprintf(cfg.Out, "Long-running fixture started (instance %s)\n", cfg.Instance)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			if sig, ok := signals.Received(ctx); ok {
				fmt.Fprintf(cfg.Out, "Received signal %v after %v, exiting\n", sig, time.Since(startTime).Round(time.Millisecond))
			} else {
				fmt.Fprintf(cfg.Out, "Stopped after %v, exiting\n", time.Since(startTime).Round(time.Millisecond))
			}
			return nil
		case <-timer.C:
			fmt.Fprintf(cfg.Out, "Still running... (%v elapsed)\n", time.Since(startTime).Round(time.Second))
			timer.Reset(interval)
		}
	}
}
