package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"ground-control/internal/data_plane/dto"
	"ground-control/internal/infra/async"
	"ground-control/internal/infra/serial"
)

var ErrWrite = errors.New("toggle command not written")

const (
	_defaultYield        = 20 * time.Millisecond
	_defaultDegradedPoll = 250 * time.Millisecond
	_defaultEventBuffer  = 256
	_cleanupTimeout      = time.Second
)

type SerialWorkerOpts struct {
	PinWidth    int
	DefaultPins string
	// Yield is the pause after every read attempt. It leaves the link lock
	// free for senders between polls.
	Yield        time.Duration
	DegradedPoll time.Duration
	EventBuffer  int
}

func NewSerialWorker(link serial.Link, parser *dto.Parser, opts SerialWorkerOpts) (*SerialWorker, error) {
	if opts.PinWidth <= 0 {
		opts.PinWidth = dto.DefaultPinWidth
	}
	if opts.Yield <= 0 {
		opts.Yield = _defaultYield
	}
	if opts.DegradedPoll <= 0 {
		opts.DegradedPoll = _defaultDegradedPoll
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = _defaultEventBuffer
	}
	if _, err := dto.FormatToggle(opts.DefaultPins, opts.PinWidth); err != nil {
		return nil, fmt.Errorf("default pins: %w", err)
	}

	w := &SerialWorker{
		link:   link,
		parser: parser,
		opts:   opts,
		pins:   opts.DefaultPins,
		events: make(chan dto.SerialEvent, opts.EventBuffer),
		stop:   make(chan struct{}),
	}
	w.running.Store(true)
	return w, nil
}

var _ async.Worker = (*SerialWorker)(nil)

// SerialWorker polls a serial link for lines and reports them, parsed, on
// Events. A single lock gates every physical read and write: the poll loop
// only tries it and skips a cycle when contended, SendToggle waits for it.
type SerialWorker struct {
	link   serial.Link
	parser *dto.Parser
	opts   SerialWorkerOpts

	linkMu sync.Mutex

	pinsMu sync.RWMutex
	pins   string

	running  atomic.Bool
	started  atomic.Bool
	degraded atomic.Bool

	emitMu sync.RWMutex
	closed bool
	events chan dto.SerialEvent

	stop     chan struct{}
	stopOnce sync.Once
}

// Events is closed after the Cleanup event once Run returns.
func (w *SerialWorker) Events() <-chan dto.SerialEvent {
	return w.events
}

func (w *SerialWorker) Run(ctx context.Context, done func()) {
	defer done()
	if !w.started.CompareAndSwap(false, true) {
		slog.Warn("serial worker already started")
		return
	}
	slog.Debug("serial worker started")
	defer w.finish()

	for w.running.Load() {
		if ctx.Err() != nil {
			slog.Warn("serial worker cancelled")
			return
		}

		if w.degraded.Load() {
			w.pause(ctx, w.opts.DegradedPoll)
			continue
		}

		if !w.linkMu.TryLock() {
			w.pause(ctx, w.opts.Yield)
			continue
		}
		line, err := w.link.ReadLine()
		w.linkMu.Unlock()

		if errors.Is(err, serial.ErrLineTooLong) {
			slog.Warn("serial line dropped", slog.Any("error", err))
			w.emit(ctx, dto.ParseFailure{Err: &dto.ParseError{Reason: "line too long", Err: err}})
			w.pause(ctx, w.opts.Yield)
			continue
		}
		if err != nil {
			w.degraded.Store(true)
			slog.Error("serial read failed, worker degraded", slog.Any("error", err))
			w.emit(ctx, dto.IoFailure{Op: "read", Err: err})
			continue
		}

		if line != "" {
			w.dispatch(ctx, line)
		}
		w.pause(ctx, w.opts.Yield)
	}
}

func (w *SerialWorker) dispatch(ctx context.Context, line string) {
	w.emit(ctx, dto.RawLine{Line: line})

	parsed, err := w.parser.Parse(line)
	if err != nil {
		slog.Warn("unparseable serial line", slog.String("line", line), slog.Any("error", err))
		w.emit(ctx, dto.ParseFailure{Raw: line, Err: err})
		return
	}

	for _, p := range parsed {
		switch e := p.(type) {
		case dto.ValveStatus:
			w.emit(ctx, e)
		case dto.PressureReading:
			w.emit(ctx, e)
		case dto.Unrecognized:
			slog.Debug("unrecognized serial line", slog.String("line", e.Raw))
		}
	}
}

// Shutdown asks the loop to stop at the top of its next iteration. A read
// or send in flight completes first.
func (w *SerialWorker) Shutdown() {
	w.running.Store(false)
	w.stopOnce.Do(func() { close(w.stop) })
}

// SendToggle writes pins, padded to the pin width, followed by "\n". Empty
// pins send the pending default. It blocks until the link is free.
func (w *SerialWorker) SendToggle(ctx context.Context, pins string) error {
	if pins == "" {
		pins = w.Pins()
	}
	payload, err := dto.FormatToggle(pins, w.opts.PinWidth)
	if err != nil {
		return err
	}

	w.linkMu.Lock()
	ok := w.link.Write([]byte(payload + "\n"))
	w.linkMu.Unlock()

	if !ok {
		err := fmt.Errorf("%w: %s", ErrWrite, payload)
		slog.Error("toggle command failed", slog.String("payload", payload))
		w.emit(ctx, dto.IoFailure{Op: "write", Err: err})
		return err
	}

	slog.Info("toggle command sent", slog.String("payload", payload))
	return nil
}

func (w *SerialWorker) SetPins(pins string) error {
	if _, err := dto.FormatToggle(pins, w.opts.PinWidth); err != nil {
		return err
	}
	w.pinsMu.Lock()
	w.pins = pins
	w.pinsMu.Unlock()
	return nil
}

func (w *SerialWorker) Pins() string {
	w.pinsMu.RLock()
	defer w.pinsMu.RUnlock()
	return w.pins
}

func (w *SerialWorker) PinWidth() int {
	return w.opts.PinWidth
}

func (w *SerialWorker) Running() bool {
	return w.running.Load() && w.started.Load()
}

// Degraded reports whether a read failure suspended polling. Only a new
// worker on a new link leaves this state.
func (w *SerialWorker) Degraded() bool {
	return w.degraded.Load()
}

func (w *SerialWorker) emit(ctx context.Context, event dto.SerialEvent) {
	w.emitMu.RLock()
	defer w.emitMu.RUnlock()
	if w.closed {
		return
	}
	select {
	case w.events <- event:
	case <-ctx.Done():
		slog.Warn("serial event dropped", slog.String("event", fmt.Sprintf("%T", event)))
	}
}

func (w *SerialWorker) finish() {
	w.running.Store(false)
	w.emitMu.Lock()
	defer w.emitMu.Unlock()
	select {
	case w.events <- dto.Cleanup{}:
	case <-time.After(_cleanupTimeout):
		slog.Warn("cleanup event dropped")
	}
	w.closed = true
	close(w.events)
	slog.Debug("serial worker stopped")
}

func (w *SerialWorker) pause(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-w.stop:
	case <-t.C:
	}
}
