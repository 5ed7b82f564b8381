package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Signals are the process signals that start a graceful shutdown.
var Signals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// WithSignals returns a context cancelled on the first of Signals. The
// returned stop func releases the signal handler; after it a second
// signal kills the process as usual.
func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, Signals...)
}
