package workers_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"ground-control/internal/data_plane/dto"
	"ground-control/internal/data_plane/workers"
	"ground-control/internal/infra/serial"
	mockserial "ground-control/test/unit/doubles/infra/serial"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

// recordingLink serves scripted lines and records every physical access so
// overlapping reads and writes can be detected.
type recordingLink struct {
	mu       sync.Mutex
	lines    []string
	readErr  error
	reads    atomic.Int32
	written  []string
	inUse    atomic.Int32
	overlaps atomic.Int32
	hold     time.Duration
}

func (l *recordingLink) enter() {
	if l.inUse.Add(1) > 1 {
		l.overlaps.Add(1)
	}
	time.Sleep(l.hold)
}

func (l *recordingLink) exit() {
	l.inUse.Add(-1)
}

func (l *recordingLink) ReadLine() (string, error) {
	l.enter()
	defer l.exit()
	l.reads.Add(1)

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.lines) == 0 {
		if l.readErr != nil {
			err := l.readErr
			l.readErr = nil
			return "", err
		}
		return "", nil
	}
	line := l.lines[0]
	l.lines = l.lines[1:]
	return line, nil
}

func (l *recordingLink) Write(data []byte) bool {
	l.enter()
	defer l.exit()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.written = append(l.written, string(data))
	return true
}

func (l *recordingLink) Close() error {
	return nil
}

func (l *recordingLink) Written() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.written...)
}

func newParser() *dto.Parser {
	parser, err := dto.NewParser(dto.DefaultParserConfig())
	Expect(err).NotTo(HaveOccurred())
	return parser
}

func collect(events <-chan dto.SerialEvent, n int) []dto.SerialEvent {
	result := make([]dto.SerialEvent, 0, n)
	for len(result) < n {
		select {
		case e, ok := <-events:
			if !ok {
				return result
			}
			result = append(result, e)
		case <-time.After(2 * time.Second):
			return result
		}
	}
	return result
}

var _ = Describe("SerialWorker", func() {
	var (
		link   *recordingLink
		worker *workers.SerialWorker
		ctx    context.Context
		cancel context.CancelFunc
		done   chan struct{}
	)

	start := func() {
		var err error
		worker, err = workers.NewSerialWorker(link, newParser(), workers.SerialWorkerOpts{
			PinWidth:     8,
			DefaultPins:  "1",
			Yield:        time.Millisecond,
			DegradedPoll: 5 * time.Millisecond,
		})
		Expect(err).NotTo(HaveOccurred())
		done = make(chan struct{})
		go worker.Run(ctx, func() { close(done) })
	}

	BeforeEach(func() {
		link = &recordingLink{}
		worker = nil
		ctx, cancel = context.WithCancel(context.Background())
	})

	AfterEach(func() {
		if worker != nil {
			worker.Shutdown()
			Eventually(done).Should(BeClosed())
		}
		cancel()
	})

	It("emits raw lines followed by their parsed events in order", func() {
		link.lines = []string{"10, 200, 450", "Toggle PIN3 1", "controller ready", "Toggle PINx 1"}
		start()

		events := collect(worker.Events(), 9)
		Expect(events).To(HaveLen(9))
		Expect(events[0]).To(Equal(dto.RawLine{Line: "10, 200, 450"}))
		Expect(events[1]).To(Equal(dto.PressureReading{Sensor: 1, Value: 10, Band: dto.BandSafe}))
		Expect(events[2]).To(Equal(dto.PressureReading{Sensor: 2, Value: 200, Band: dto.BandSafe}))
		Expect(events[3]).To(Equal(dto.PressureReading{Sensor: 3, Value: 450, Band: dto.BandUnsafe}))
		Expect(events[4]).To(Equal(dto.RawLine{Line: "Toggle PIN3 1"}))
		Expect(events[5]).To(Equal(dto.ValveStatus{Pin: 3, Open: true}))
		Expect(events[6]).To(Equal(dto.RawLine{Line: "controller ready"}))
		Expect(events[7]).To(Equal(dto.RawLine{Line: "Toggle PINx 1"}))

		failure, ok := events[8].(dto.ParseFailure)
		Expect(ok).To(BeTrue())
		Expect(failure.Raw).To(Equal("Toggle PINx 1"))
		Expect(failure.Err).To(MatchError(dto.ErrParse))
	})

	It("reports a read failure once and stops reading", func() {
		link.readErr = errors.New("device unplugged")
		start()

		events := collect(worker.Events(), 1)
		Expect(events).To(HaveLen(1))
		failure, ok := events[0].(dto.IoFailure)
		Expect(ok).To(BeTrue())
		Expect(failure.Op).To(Equal("read"))
		Expect(worker.Degraded()).To(BeTrue())

		reads := link.reads.Load()
		Consistently(func() int32 { return link.reads.Load() }, 50*time.Millisecond).Should(Equal(reads))
		Consistently(worker.Events(), 30*time.Millisecond).ShouldNot(Receive())
	})

	It("reports an overlong line as a parse failure and keeps reading", func() {
		link.readErr = fmt.Errorf("%w: more than %d bytes", serial.ErrLineTooLong, serial.MaxLineLength)
		start()

		events := collect(worker.Events(), 1)
		Expect(events).To(HaveLen(1))
		failure, ok := events[0].(dto.ParseFailure)
		Expect(ok).To(BeTrue())
		Expect(failure.Err).To(MatchError(dto.ErrParse))
		Expect(failure.Err).To(MatchError(serial.ErrLineTooLong))
		Expect(worker.Degraded()).To(BeFalse())

		link.mu.Lock()
		link.lines = []string{"5, 7"}
		link.mu.Unlock()
		events = collect(worker.Events(), 3)
		Expect(events).To(HaveLen(3))
		Expect(events[0]).To(Equal(dto.RawLine{Line: "5, 7"}))
	})

	It("emits cleanup and closes the stream on shutdown", func() {
		start()
		Eventually(func() int32 { return link.reads.Load() }).Should(BeNumerically(">", 0))

		worker.Shutdown()
		Eventually(done).Should(BeClosed())

		var last dto.SerialEvent
		for e := range worker.Events() {
			last = e
		}
		Expect(last).To(Equal(dto.Cleanup{}))
		Expect(worker.Running()).To(BeFalse())
	})

	It("stops when its context is cancelled", func() {
		start()
		cancel()
		Eventually(done).Should(BeClosed())
	})

	Context("SendToggle", func() {
		It("pads the pins to the slot width", func() {
			start()
			Expect(worker.SendToggle(ctx, "13")).To(Succeed())
			Expect(link.Written()).To(Equal([]string{"13000000\n"}))
		})

		It("falls back to the pending pins", func() {
			start()
			Expect(worker.SendToggle(ctx, "")).To(Succeed())
			Expect(worker.SetPins("0101")).To(Succeed())
			Expect(worker.SendToggle(ctx, "")).To(Succeed())
			Expect(link.Written()).To(Equal([]string{"10000000\n", "01010000\n"}))
		})

		It("rejects pins wider than the slot width", func() {
			start()
			Expect(worker.SendToggle(ctx, "123456789")).To(MatchError(dto.ErrInvalidToggle))
			Expect(worker.SetPins("x")).To(MatchError(dto.ErrInvalidToggle))
			Expect(link.Written()).To(BeEmpty())
		})

		It("never overlaps with polling reads", func() {
			link.hold = 200 * time.Microsecond
			start()

			var wg sync.WaitGroup
			for i := 0; i < 40; i++ {
				wg.Add(1)
				go func() {
					defer GinkgoRecover()
					defer wg.Done()
					Expect(worker.SendToggle(ctx, "11")).To(Succeed())
				}()
			}
			wg.Wait()

			Expect(link.Written()).To(HaveLen(40))
			Expect(link.reads.Load()).To(BeNumerically(">", 0))
			Expect(link.overlaps.Load()).To(BeZero())
		})
	})
})

var _ = Describe("SerialWorker write failures", func() {
	var ctrl *gomock.Controller

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	It("returns an error and reports it as an event", func() {
		link := mockserial.NewMockLink(ctrl)
		link.EXPECT().Write([]byte("00000000\n")).Return(false)

		worker, err := workers.NewSerialWorker(link, newParser(), workers.SerialWorkerOpts{DefaultPins: "0"})
		Expect(err).NotTo(HaveOccurred())

		err = worker.SendToggle(context.Background(), "")
		Expect(err).To(MatchError(workers.ErrWrite))

		var event dto.SerialEvent
		Eventually(worker.Events()).Should(Receive(&event))
		Expect(event).To(BeAssignableToTypeOf(dto.IoFailure{}))
		Expect(event.(dto.IoFailure).Op).To(Equal("write"))
	})

	It("refuses invalid default pins", func() {
		link := mockserial.NewMockLink(ctrl)
		_, err := workers.NewSerialWorker(link, newParser(), workers.SerialWorkerOpts{PinWidth: 2, DefaultPins: "111"})
		Expect(err).To(MatchError(dto.ErrInvalidToggle))
	})
})
