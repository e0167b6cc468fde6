package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ground-control/internal/control_plane/domain"
	"ground-control/internal/data_plane/dto"
	"ground-control/internal/infra/async"
	"ground-control/internal/infra/serial"

	"github.com/google/uuid"
)

const (
	BrokerTopicSerialEvents    async.BrokerTopicName = "serial_events"
	BrokerTopicProcedureEvents async.BrokerTopicName = "procedure_events"
)

var (
	ErrLinkNotConfigured = errors.New("serial link not configured")
	ErrWorkerRunning     = errors.New("serial worker already running")
	ErrWorkerNotRunning  = errors.New("serial worker not running")
)

type PendingTask struct {
	Stage   domain.StageID
	Task    *domain.Task
	Message string
}

type LinkStatus struct {
	Configured bool
	Port       string
	BaudRate   int
	Running    bool
	Degraded   bool
	Pins       string
	PinWidth   int
}

type MissionControllerOpts struct {
	Station     string
	ReadTimeout time.Duration
	Countdown   CountdownOpts
}

func NewMissionController(
	machine *domain.LaunchStateMachine,
	broker async.InternalBroker,
	openLink LinkOpener,
	newSession SessionFactory,
	listPorts PortLister,
	opts MissionControllerOpts,
) *MissionController {
	return &MissionController{
		machine:    machine,
		broker:     broker,
		openLink:   openLink,
		newSession: newSession,
		listPorts:  listPorts,
		countdown:  NewCountdown(opts.Countdown),
		opts:       opts,
	}
}

var _ MissionService = (*MissionController)(nil)

// MissionController is the operator facing entry point. Procedure changes
// are serialized by mu and published once it is released, so a slow
// subscriber never holds up another operator call. Serial events are relayed
// to the broker by a single pump goroutine so their order is kept.
type MissionController struct {
	mu sync.Mutex

	machine    *domain.LaunchStateMachine
	broker     async.InternalBroker
	openLink   LinkOpener
	newSession SessionFactory
	listPorts  PortLister
	countdown  *Countdown
	opts       MissionControllerOpts

	link      serial.Link
	linkOpts  serial.LinkOpts
	session   SerialSession
	cancelRun context.CancelFunc
	pumpDone  chan struct{}
	sequence  *CountdownHandle
}

func (c *MissionController) SetupLink(ctx context.Context, port string, baud int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return ErrWorkerRunning
	}
	if c.link != nil {
		if err := c.link.Close(); err != nil {
			slog.Warn("closing previous serial link", slog.Any("error", err))
		}
		c.link = nil
	}

	opts := serial.LinkOpts{Port: port, BaudRate: baud, ReadTimeout: c.opts.ReadTimeout}
	link, err := c.openLink(opts)
	if err != nil {
		slog.Error("serial link setup failed", slog.String("port", port), slog.Any("error", err))
		return err
	}
	c.link = link
	c.linkOpts = opts
	slog.Info("serial link configured", slog.String("port", port), slog.Int("baud_rate", baud))
	return nil
}

func (c *MissionController) StartWorker(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return ErrWorkerRunning
	}
	if c.link == nil {
		return ErrLinkNotConfigured
	}

	session, err := c.newSession(c.link)
	if err != nil {
		return fmt.Errorf("creating serial worker: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.session = session
	c.cancelRun = cancel
	c.pumpDone = make(chan struct{})

	go session.Run(runCtx, func() {})
	go c.pump(runCtx, session.Events(), c.pumpDone)

	slog.Info("serial worker started", slog.String("port", c.linkOpts.Port))
	return nil
}

// StopWorker stops the worker, waits for its cleanup and closes the link.
// A new SetupLink is required before the next StartWorker.
func (c *MissionController) StopWorker(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		if c.link != nil {
			c.closeLink()
			return nil
		}
		return ErrWorkerNotRunning
	}

	c.session.Shutdown()
	select {
	case <-c.pumpDone:
	case <-ctx.Done():
		slog.Warn("serial worker stop timed out, cancelling")
		c.cancelRun()
		<-c.pumpDone
	}
	c.cancelRun()
	c.session = nil
	c.closeLink()
	slog.Info("serial worker stopped")
	return nil
}

func (c *MissionController) closeLink() {
	if err := c.link.Close(); err != nil {
		slog.Error("closing serial link", slog.Any("error", err))
	}
	c.link = nil
}

func (c *MissionController) pump(ctx context.Context, events <-chan dto.SerialEvent, done chan struct{}) {
	defer close(done)
	for e := range events {
		c.publish(ctx, BrokerTopicSerialEvents, c.serialEnvelope(e))
	}
}

func (c *MissionController) activeSession() (SerialSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil, ErrWorkerNotRunning
	}
	return c.session, nil
}

func (c *MissionController) SendToggle(ctx context.Context, pins string) error {
	session, err := c.activeSession()
	if err != nil {
		return err
	}
	if err := session.SendToggle(ctx, pins); err != nil {
		return err
	}

	envelope := c.envelope(dto.KindToggle)
	envelope.Line = pins
	if pins == "" {
		envelope.Line = session.Pins()
	}
	c.publish(ctx, BrokerTopicSerialEvents, envelope)
	return nil
}

func (c *MissionController) SetPins(ctx context.Context, pins string) error {
	session, err := c.activeSession()
	if err != nil {
		return err
	}
	return session.SetPins(pins)
}

func (c *MissionController) AdvanceStage(ctx context.Context) domain.Transition {
	announced := make(chan struct{})
	defer close(announced)

	c.mu.Lock()
	t := c.machine.Advance()
	envelope, ok := c.transitionEnvelope(t)
	if ok && t.Ignition {
		c.startCountdown(ctx, announced)
	}
	c.mu.Unlock()

	if ok {
		c.publish(ctx, BrokerTopicProcedureEvents, envelope)
	}
	return t
}

func (c *MissionController) RegressStage(ctx context.Context) domain.Transition {
	c.mu.Lock()
	t := c.machine.Regress()
	envelope, ok := c.transitionEnvelope(t)
	c.mu.Unlock()

	if ok {
		c.publish(ctx, BrokerTopicProcedureEvents, envelope)
	}
	return t
}

// Abort cancels a running countdown under mu without waiting for it. The
// transition is published after mu is released, once the countdown
// goroutine has exited or ctx is done.
func (c *MissionController) Abort(ctx context.Context) domain.Transition {
	c.mu.Lock()
	t := c.machine.Abort()
	envelope, ok := c.transitionEnvelope(t)
	sequence := c.sequence
	if ok && sequence != nil {
		sequence.Cancel()
		c.sequence = nil
	}
	c.mu.Unlock()

	if !ok {
		return t
	}
	if sequence != nil {
		select {
		case <-sequence.Done():
			if sequence.Launched() {
				slog.Error("abort arrived after launch")
			} else {
				slog.Warn("countdown halted by abort")
			}
		case <-ctx.Done():
			slog.Warn("countdown cancelled, not waiting for it to exit", slog.Any("error", ctx.Err()))
		}
	}
	c.publish(ctx, BrokerTopicProcedureEvents, envelope)
	return t
}

func (c *MissionController) MarkTask(ctx context.Context, task domain.TaskID, complete bool) error {
	c.mu.Lock()
	var err error
	if complete {
		err = c.machine.MarkTaskComplete(task)
	} else {
		err = c.machine.MarkTaskIncomplete(task)
	}
	stage := c.machine.Current()
	c.mu.Unlock()

	if err != nil {
		slog.Warn("task update rejected",
			slog.String("task", string(task)),
			slog.Bool("complete", complete),
			slog.Any("error", err))
		return err
	}

	envelope := c.envelope(dto.KindTaskUpdate)
	envelope.Stage = string(stage)
	envelope.Task = string(task)
	envelope.Message = "incomplete"
	if complete {
		envelope.Message = "complete"
	}
	c.publish(ctx, BrokerTopicProcedureEvents, envelope)
	return nil
}

func (c *MissionController) CurrentStage() domain.StageID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Current()
}

func (c *MissionController) Procedure() domain.ProcedureSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Snapshot()
}

func (c *MissionController) NextPendingTask() PendingTask {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := PendingTask{Stage: c.machine.Current()}
	task, ok := c.machine.NextPendingTask()
	if !ok {
		result.Message = domain.NoPendingTaskMessage
		return result
	}
	result.Task = &task
	result.Message = string(task.Prompt)
	return result
}

func (c *MissionController) LinkStatus() LinkStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := LinkStatus{
		Configured: c.link != nil,
	}
	if c.link != nil {
		status.Port = c.linkOpts.Port
		status.BaudRate = c.linkOpts.BaudRate
	}
	if c.session != nil {
		status.Running = c.session.Running()
		status.Degraded = c.session.Degraded()
		status.Pins = c.session.Pins()
		status.PinWidth = c.session.PinWidth()
	}
	return status
}

func (c *MissionController) ListPorts() ([]string, error) {
	return c.listPorts()
}

// Close stops the countdown and the worker. It is used on process shutdown.
func (c *MissionController) Close(ctx context.Context) {
	c.mu.Lock()
	sequence := c.sequence
	c.sequence = nil
	c.mu.Unlock()

	if sequence != nil {
		sequence.Cancel()
		select {
		case <-sequence.Done():
		case <-ctx.Done():
		}
	}

	if err := c.StopWorker(ctx); err != nil && !errors.Is(err, ErrWorkerNotRunning) {
		slog.Error("stopping serial worker", slog.Any("error", err))
	}
}

// startCountdown must be called with mu held. No tick is published before
// announced is closed, which keeps the ignition event first. Ticks are
// published with the handle's context so cancelling the handle unblocks a
// stalled delivery.
func (c *MissionController) startCountdown(ctx context.Context, announced <-chan struct{}) {
	stage := string(c.machine.Current())
	slog.Warn("ignition commanded, countdown started", slog.Int("from", c.countdown.Opts().From))

	c.sequence = c.countdown.Start(ctx,
		func(ctx context.Context, remaining int) {
			select {
			case <-announced:
			case <-ctx.Done():
				return
			}
			envelope := c.envelope(dto.KindCountdown)
			envelope.Stage = stage
			envelope.Remaining = remaining
			c.publish(ctx, BrokerTopicProcedureEvents, envelope)
		},
		func(ctx context.Context) {
			envelope := c.envelope(dto.KindLaunch)
			envelope.Stage = stage
			envelope.Message = "BLASTOFF"
			slog.Warn("launch")
			c.publish(ctx, BrokerTopicProcedureEvents, envelope)
		},
	)
}

// transitionEnvelope logs t and builds its procedure event. It reports false
// for a rejected transition, which is not published.
func (c *MissionController) transitionEnvelope(t domain.Transition) (dto.Envelope, bool) {
	if !t.OK() {
		slog.Warn("stage transition rejected",
			slog.String("kind", string(t.Kind)),
			slog.String("stage", string(t.From)),
			slog.Any("error", t.Err))
		return dto.Envelope{}, false
	}

	slog.Info("stage transition",
		slog.String("kind", string(t.Kind)),
		slog.String("from", string(t.From)),
		slog.String("to", string(t.To)),
		slog.Bool("ignition", t.Ignition))

	envelope := c.envelope(dto.KindStageTransition)
	envelope.Stage = string(t.To)
	envelope.Message = fmt.Sprintf("%s %s -> %s", t.Kind, t.From, t.To)
	if t.Ignition {
		envelope.Message = "ignition"
	}
	return envelope, true
}

func (c *MissionController) envelope(kind dto.EnvelopeKind) dto.Envelope {
	return dto.Envelope{
		ID:         uuid.NewString(),
		Station:    c.opts.Station,
		Kind:       kind,
		OccurredAt: time.Now().UTC(),
	}
}

func (c *MissionController) serialEnvelope(e dto.SerialEvent) dto.Envelope {
	switch v := e.(type) {
	case dto.RawLine:
		envelope := c.envelope(dto.KindRawLine)
		envelope.Line = v.Line
		return envelope
	case dto.ValveStatus:
		envelope := c.envelope(dto.KindValveStatus)
		envelope.Valve = &v
		return envelope
	case dto.PressureReading:
		envelope := c.envelope(dto.KindPressureReading)
		envelope.Pressure = &v
		return envelope
	case dto.ParseFailure:
		envelope := c.envelope(dto.KindParseError)
		envelope.Line = v.Raw
		envelope.Message = v.Err.Error()
		return envelope
	case dto.IoFailure:
		envelope := c.envelope(dto.KindIoError)
		envelope.Message = fmt.Sprintf("%s: %v", v.Op, v.Err)
		return envelope
	default:
		return c.envelope(dto.KindCleanup)
	}
}

func (c *MissionController) publish(ctx context.Context, topic async.BrokerTopicName, envelope dto.Envelope) {
	err := c.broker.Publish(ctx, topic, async.BrokerMessage{Event: string(envelope.Kind), Value: envelope})
	if errors.Is(err, async.ErrTopicNotFound) {
		slog.Debug("no subscribers", slog.String("topic", string(topic)))
		return
	}
	if err != nil {
		slog.Error("publishing mission event",
			slog.String("topic", string(topic)),
			slog.String("kind", string(envelope.Kind)),
			slog.Any("error", err))
	}
}
