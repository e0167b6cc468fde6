package async

import (
	"context"
	"errors"
)

var ErrNotReady = errors.New("worker not ready")

// Worker is a long running loop. Run must call done exactly once when it
// returns.
type Worker interface {
	Run(context.Context, func())
	Shutdown()
}

// ReadyNotifier is implemented by workers that subscribe to the broker
// after Run starts. Ready is closed once the subscriptions are in place.
type ReadyNotifier interface {
	Ready() <-chan struct{}
}

// WaitReady blocks until every worker implementing ReadyNotifier is ready.
// Other workers are skipped.
func WaitReady(ctx context.Context, workers ...Worker) error {
	for _, worker := range workers {
		notifier, ok := worker.(ReadyNotifier)
		if !ok {
			continue
		}
		select {
		case <-notifier.Ready():
		case <-ctx.Done():
			return errors.Join(ErrNotReady, ctx.Err())
		}
	}
	return nil
}
