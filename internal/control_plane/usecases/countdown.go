package usecases

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const (
	DefaultCountdownFrom     = 10
	DefaultCountdownInterval = time.Second
)

type CountdownOpts struct {
	From     int
	Interval time.Duration
}

func NewCountdown(opts CountdownOpts) *Countdown {
	if opts.From <= 0 {
		opts.From = DefaultCountdownFrom
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultCountdownInterval
	}
	return &Countdown{opts: opts}
}

// Countdown ticks From, From-1, ..., 1 one interval apart and fires the
// launch callback one interval after the last tick.
type Countdown struct {
	opts CountdownOpts
}

func (c *Countdown) Opts() CountdownOpts {
	return c.opts
}

// Start runs the sequence on its own goroutine. Callbacks run on that
// goroutine with a context that keeps parent's values, ignores its
// cancellation and is done once the handle is cancelled. They must not call
// Stop on the returned handle.
func (c *Countdown) Start(
	parent context.Context,
	onTick func(ctx context.Context, remaining int),
	onLaunch func(ctx context.Context),
) *CountdownHandle {
	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	h := &CountdownHandle{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(h.done)
		ticker := time.NewTicker(c.opts.Interval)
		defer ticker.Stop()

		remaining := c.opts.From
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if ctx.Err() != nil {
				return
			}
			if remaining == 0 {
				h.launched.Store(true)
				onLaunch(ctx)
				return
			}
			onTick(ctx, remaining)
			remaining--
		}
	}()

	return h
}

type CountdownHandle struct {
	cancel   context.CancelFunc
	done     chan struct{}
	once     sync.Once
	launched atomic.Bool
}

// Cancel halts the sequence without waiting for its goroutine. A callback
// blocked on its context returns once Cancel is called.
func (h *CountdownHandle) Cancel() {
	h.once.Do(h.cancel)
}

// Stop halts the sequence and waits for its goroutine. It reports whether
// the launch was prevented.
func (h *CountdownHandle) Stop() bool {
	h.Cancel()
	<-h.done
	return !h.launched.Load()
}

func (h *CountdownHandle) Done() <-chan struct{} {
	return h.done
}

func (h *CountdownHandle) Launched() bool {
	return h.launched.Load()
}
