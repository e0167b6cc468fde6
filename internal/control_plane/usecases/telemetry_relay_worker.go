package usecases

import (
	"context"
	"log/slog"

	"ground-control/internal/data_plane/dto"
	"ground-control/internal/infra/async"
)

// NewTelemetryExportWorker ships every mission event to the telemetry stream.
func NewTelemetryExportWorker(broker async.InternalBroker, exporter TelemetryExporter) *TelemetryRelayWorker {
	return &TelemetryRelayWorker{
		envelopeConsumer: newEnvelopeConsumer("telemetry_export", broker),
		relay:            exporter.Export,
	}
}

// NewTelemetryBridgeWorker mirrors mission events to the MQTT broker. Raw
// lines are skipped since their parsed events follow.
func NewTelemetryBridgeWorker(broker async.InternalBroker, bridge TelemetryBridge) *TelemetryRelayWorker {
	return &TelemetryRelayWorker{
		envelopeConsumer: newEnvelopeConsumer("telemetry_bridge", broker),
		relay:            bridge.Publish,
		skip:             map[dto.EnvelopeKind]bool{dto.KindRawLine: true},
	}
}

var _ async.Worker = &TelemetryRelayWorker{}

type TelemetryRelayWorker struct {
	*envelopeConsumer
	relay func(context.Context, dto.Envelope) error
	skip  map[dto.EnvelopeKind]bool
}

func (w *TelemetryRelayWorker) Run(ctx context.Context, done func()) {
	defer done()
	w.consume(ctx, w.handleEvent)
}

func (w *TelemetryRelayWorker) handleEvent(ctx context.Context, envelope dto.Envelope) {
	if w.skip[envelope.Kind] {
		return
	}
	if err := w.relay(ctx, envelope); err != nil {
		slog.Error("relaying mission event",
			slog.String("worker", w.name),
			slog.String("id", envelope.ID),
			slog.String("kind", string(envelope.Kind)),
			slog.Any("error", err))
	}
}
