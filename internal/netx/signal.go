package netx

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// CancelOnSignal calls cancelFunc on SIGINT, SIGTERM or SIGQUIT. The
// returned function stops listening for signals.
func CancelOnSignal(cancelFunc context.CancelFunc) (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancelFunc()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
