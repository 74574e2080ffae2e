package signals

import (
	"context"
	"errors"
	"os"
	"os/signal"
)

// ReceivedError is the cancellation cause of a context returned by NotifyContext.
type ReceivedError struct {
	Signal os.Signal
}

func (e *ReceivedError) Error() string {
	return "received signal " + e.Signal.String()
}

// NotifyContext returns a context that is cancelled when one of the
// Termination signals arrives. Calling stop releases the signal handler.
func NotifyContext(parent context.Context) (ctx context.Context, stop context.CancelFunc) {
	return notifyContext(parent, Termination...)
}

func notifyContext(parent context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, sigs...)

	go func() {
		select {
		case sig := <-sigChan:
			cancel(&ReceivedError{Signal: sig})
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel(context.Canceled)
	}
}

// Received reports the signal that cancelled ctx, if any.
func Received(ctx context.Context) (os.Signal, bool) {
	var recv *ReceivedError
	if errors.As(context.Cause(ctx), &recv) {
		return recv.Signal, true
	}
	return nil, false
}
