// Package sleeper implements a task that sleeps for a while and then exits.
package sleeper

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/draganm/taskfixtures/internal/signals"
)

// DefaultDuration is used when T is unset.
const DefaultDuration = 2 * time.Second

const maxSeconds = float64(math.MaxInt64) / float64(time.Second)

// ParseDuration accepts plain seconds ("2") or a Go duration ("1500ms").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultDuration, nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(secs) && !math.IsInf(secs, 0) {
		if secs < 0 {
			return 0, fmt.Errorf("negative sleep %q", s)
		}
		if secs >= maxSeconds {
			return 0, fmt.Errorf("sleep %q is too long", s)
		}
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid sleep duration %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative sleep %q", s)
	}
	return d, nil
}

// Run sleeps for d, or until ctx is cancelled. Both outcomes are a clean exit.
func Run(ctx context.Context, out io.Writer, d time.Duration) error {
	fmt.Fprintf(out, "Sleeping %v...\n", d)

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		fmt.Fprintln(out, "Awake")
	case <-ctx.Done():
		if sig, ok := signals.Received(ctx); ok {
			fmt.Fprintf(out, "Received signal %v, exiting\n", sig)
		} else {
			fmt.Fprintln(out, "Interrupted, exiting")
		}
	}
	return nil
}
