package usecases_test

import (
	"context"
	"errors"
	"time"

	"ground-control/internal/control_plane/usecases"
	"ground-control/internal/data_plane/dto"
	"ground-control/internal/infra/async"
	"ground-control/internal/logger"
	mockusecases "ground-control/test/unit/doubles/control_plane/usecases"
	mockasync "ground-control/test/unit/doubles/infra/async"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// startWorker runs worker until the test ends and waits for its
// subscriptions.
func startWorker(worker async.Worker) {
	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go worker.Run(ctx, func() { close(finished) })
	ginkgo.DeferCleanup(func() {
		cancel()
		gomega.Eventually(finished).Should(gomega.BeClosed())
	})
	gomega.Expect(async.WaitReady(ctx, worker)).To(gomega.Succeed())
}

func publishEnvelope(broker async.InternalBroker, topic async.BrokerTopicName, envelope dto.Envelope) {
	gomega.Expect(broker.Publish(context.Background(), topic, async.BrokerMessage{
		Event: string(envelope.Kind),
		Value: envelope,
	})).To(gomega.Succeed())
}

var _ = ginkgo.Describe("Mission workers", func() {
	var (
		ctrl   *gomock.Controller
		broker *async.LocalBroker
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		broker = async.NewLocalBroker()
		ginkgo.DeferCleanup(broker.Stop)
	})

	ginkgo.Context("TelemetrySnapshotWorker", func() {
		var store *mockusecases.MockTelemetrySnapshotStore

		ginkgo.BeforeEach(func() {
			store = mockusecases.NewMockTelemetrySnapshotStore(ctrl)
			startWorker(usecases.NewTelemetrySnapshotWorker(broker, store))
		})

		ginkgo.It("should fold a valve status into an empty snapshot", func() {
			saved := make(chan usecases.TelemetrySnapshot, 1)
			store.EXPECT().Load(gomock.Any()).Return(usecases.TelemetrySnapshot{}, usecases.ErrSnapshotNotFound)
			store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, snapshot usecases.TelemetrySnapshot) error {
					saved <- snapshot
					return nil
				})

			at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			publishEnvelope(broker, usecases.BrokerTopicSerialEvents, dto.Envelope{
				ID:         "evt-1",
				Kind:       dto.KindValveStatus,
				OccurredAt: at,
				Valve:      &dto.ValveStatus{Pin: 3, Open: true},
			})

			var snapshot usecases.TelemetrySnapshot
			gomega.Eventually(saved).Should(gomega.Receive(&snapshot))
			gomega.Expect(snapshot.Valves).To(gomega.HaveKeyWithValue(3, true))
			gomega.Expect(snapshot.UpdatedAt).To(gomega.Equal(at))
		})

		ginkgo.It("should leave the store alone when it cannot be read", func() {
			loaded := make(chan struct{})
			store.EXPECT().Load(gomock.Any()).DoAndReturn(func(context.Context) (usecases.TelemetrySnapshot, error) {
				close(loaded)
				return usecases.TelemetrySnapshot{}, errors.New("cache unavailable")
			})

			publishEnvelope(broker, usecases.BrokerTopicSerialEvents, dto.Envelope{
				Kind:     dto.KindPressureReading,
				Pressure: &dto.PressureReading{Sensor: 1, Value: 10, Band: dto.BandSafe},
			})

			gomega.Eventually(loaded).Should(gomega.BeClosed())
			gomega.Consistently(func() bool { return ctrl.Satisfied() }, 50*time.Millisecond).Should(gomega.BeTrue())
		})
	})

	ginkgo.Context("TelemetryBridgeWorker", func() {
		var bridge *mockusecases.MockTelemetryBridge

		ginkgo.BeforeEach(func() {
			bridge = mockusecases.NewMockTelemetryBridge(ctrl)
			startWorker(usecases.NewTelemetryBridgeWorker(broker, bridge))
		})

		ginkgo.It("should skip raw lines and relay procedure events", func() {
			relayed := make(chan dto.Envelope, 2)
			bridge.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, envelope dto.Envelope) error {
					relayed <- envelope
					return nil
				}).AnyTimes()

			publishEnvelope(broker, usecases.BrokerTopicSerialEvents, dto.Envelope{ID: "raw", Kind: dto.KindRawLine, Line: "10, 20"})
			publishEnvelope(broker, usecases.BrokerTopicProcedureEvents, dto.Envelope{ID: "stage", Kind: dto.KindStageTransition, Stage: "HIGH_PRESSURE"})

			var envelope dto.Envelope
			gomega.Eventually(relayed).Should(gomega.Receive(&envelope))
			gomega.Expect(envelope.ID).To(gomega.Equal("stage"))
			gomega.Consistently(relayed, 50*time.Millisecond).ShouldNot(gomega.Receive())
		})
	})

	ginkgo.Context("TelemetryExportWorker", func() {
		ginkgo.It("should keep running after an export failure", func() {
			exporter := mockusecases.NewMockTelemetryExporter(ctrl)
			startWorker(usecases.NewTelemetryExportWorker(broker, exporter))

			exported := make(chan string, 2)
			gomock.InOrder(
				exporter.EXPECT().Export(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, envelope dto.Envelope) error {
						exported <- envelope.ID
						return errors.New("broker unavailable")
					}),
				exporter.EXPECT().Export(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, envelope dto.Envelope) error {
						exported <- envelope.ID
						return nil
					}),
			)

			publishEnvelope(broker, usecases.BrokerTopicSerialEvents, dto.Envelope{ID: "first", Kind: dto.KindRawLine})
			publishEnvelope(broker, usecases.BrokerTopicSerialEvents, dto.Envelope{ID: "second", Kind: dto.KindRawLine})

			gomega.Eventually(exported).Should(gomega.Receive(gomega.Equal("first")))
			gomega.Eventually(exported).Should(gomega.Receive(gomega.Equal("second")))
		})
	})

	ginkgo.Context("JournalWorker", func() {
		ginkgo.It("should write the journal line and append the row", func() {
			core, entries := observer.New(zapcore.DebugLevel)
			repository := mockusecases.NewMockEventRepository(ctrl)
			startWorker(usecases.NewJournalWorker(broker, repository, logger.NewJournalFromCore(core)))

			appended := make(chan dto.Envelope, 1)
			repository.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, envelope dto.Envelope) error {
					appended <- envelope
					return nil
				})

			publishEnvelope(broker, usecases.BrokerTopicSerialEvents, dto.Envelope{
				ID:      "evt-io",
				Kind:    dto.KindIoError,
				Message: "serial i/o failed",
			})

			gomega.Eventually(appended).Should(gomega.Receive())
			gomega.Eventually(entries.Len).Should(gomega.Equal(1))
			entry := entries.All()[0]
			gomega.Expect(entry.LoggerName).To(gomega.Equal("mission"))
			gomega.Expect(entry.Level).To(gomega.Equal(zapcore.ErrorLevel))
			gomega.Expect(entry.Message).To(gomega.Equal(string(dto.KindIoError)))
			gomega.Expect(entry.ContextMap()).To(gomega.HaveKeyWithValue("error", "serial i/o failed"))
		})
	})

	ginkgo.Context("subscription failures", func() {
		ginkgo.It("should report ready and serve the topics it could subscribe to", func() {
			mockBroker := mockasync.NewMockInternalBroker(ctrl)
			receiver := make(chan async.BrokerMessage, 1)
			subscription := async.Subscription{ID: "sub-1", Receiver: receiver}

			mockBroker.EXPECT().Subscribe(usecases.BrokerTopicSerialEvents).Return(async.Subscription{}, errors.New("broker stopped"))
			mockBroker.EXPECT().Subscribe(usecases.BrokerTopicProcedureEvents).Return(subscription, nil)
			mockBroker.EXPECT().Unsubscribe(usecases.BrokerTopicProcedureEvents, subscription).DoAndReturn(
				func(async.BrokerTopicName, async.Subscription) error {
					close(receiver)
					return nil
				})

			bridge := mockusecases.NewMockTelemetryBridge(ctrl)
			relayed := make(chan dto.Envelope, 1)
			bridge.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, envelope dto.Envelope) error {
					relayed <- envelope
					return nil
				})

			startWorker(usecases.NewTelemetryBridgeWorker(mockBroker, bridge))
			receiver <- async.BrokerMessage{Value: dto.Envelope{ID: "abort", Kind: dto.KindStageTransition}}

			gomega.Eventually(relayed).Should(gomega.Receive())
		})
	})

	ginkgo.Context("RetentionWorker", func() {
		ginkgo.It("should purge rows older than the max age when the schedule is due", func() {
			repository := mockusecases.NewMockEventRepository(ctrl)
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()

			worker, err := usecases.NewRetentionWorker(ticker, repository, usecases.RetentionOpts{
				Schedule: "0 * * * *",
				MaxAge:   24 * time.Hour,
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			now := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
			worker.SetClock(func() time.Time { return now })
			gomega.Expect(worker.Tick(context.Background())).To(gomega.BeFalse())

			now = now.Add(30 * time.Minute)
			repository.EXPECT().DeleteBefore(gomock.Any(), now.Add(-24*time.Hour)).Return(int64(4), nil)
			gomega.Expect(worker.Tick(context.Background())).To(gomega.BeTrue())
		})

		ginkgo.It("should reject a malformed schedule", func() {
			_, err := usecases.NewRetentionWorker(time.NewTicker(time.Hour), nil, usecases.RetentionOpts{Schedule: "every hour"})
			gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("parsing retention schedule")))
		})
	})
})
