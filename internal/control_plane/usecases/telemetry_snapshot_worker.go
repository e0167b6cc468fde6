package usecases

import (
	"context"
	"errors"
	"log/slog"
	"maps"

	"ground-control/internal/data_plane/dto"
	"ground-control/internal/infra/async"
)

func NewTelemetrySnapshotWorker(broker async.InternalBroker, store TelemetrySnapshotStore) *TelemetrySnapshotWorker {
	return &TelemetrySnapshotWorker{
		envelopeConsumer: newEnvelopeConsumer("telemetry_snapshot", broker, BrokerTopicSerialEvents),
		store:            store,
	}
}

var _ async.Worker = &TelemetrySnapshotWorker{}

// TelemetrySnapshotWorker folds valve and pressure events into the latest
// known state of the stand.
type TelemetrySnapshotWorker struct {
	*envelopeConsumer
	store TelemetrySnapshotStore
}

func (w *TelemetrySnapshotWorker) Run(ctx context.Context, done func()) {
	defer done()
	w.consume(ctx, w.handleEvent)
}

func (w *TelemetrySnapshotWorker) handleEvent(ctx context.Context, envelope dto.Envelope) {
	switch envelope.Kind {
	case dto.KindRawLine, dto.KindValveStatus, dto.KindPressureReading:
	default:
		return
	}

	snapshot, err := w.store.Load(ctx)
	if err != nil && !errors.Is(err, ErrSnapshotNotFound) {
		slog.Error("loading telemetry snapshot", slog.Any("error", err))
		return
	}

	snapshot = ApplyEnvelope(snapshot, envelope)
	if err := w.store.Save(ctx, snapshot); err != nil {
		slog.Error("saving telemetry snapshot", slog.Any("error", err))
	}
}

// ApplyEnvelope returns snapshot updated with the state carried by envelope.
// The input maps are not modified.
func ApplyEnvelope(snapshot TelemetrySnapshot, envelope dto.Envelope) TelemetrySnapshot {
	result := TelemetrySnapshot{
		Valves:    maps.Clone(snapshot.Valves),
		Pressures: maps.Clone(snapshot.Pressures),
		LastLine:  snapshot.LastLine,
		UpdatedAt: snapshot.UpdatedAt,
	}
	if result.Valves == nil {
		result.Valves = make(map[int]bool)
	}
	if result.Pressures == nil {
		result.Pressures = make(map[int]dto.PressureReading)
	}

	switch envelope.Kind {
	case dto.KindRawLine:
		result.LastLine = envelope.Line
	case dto.KindValveStatus:
		if envelope.Valve == nil {
			return result
		}
		result.Valves[envelope.Valve.Pin] = envelope.Valve.Open
	case dto.KindPressureReading:
		if envelope.Pressure == nil {
			return result
		}
		result.Pressures[envelope.Pressure.Sensor] = *envelope.Pressure
	default:
		return result
	}
	result.UpdatedAt = envelope.OccurredAt
	return result
}

func NewTelemetryService(store TelemetrySnapshotStore) *SimpleTelemetryService {
	return &SimpleTelemetryService{store: store}
}

var _ TelemetryService = &SimpleTelemetryService{}

type SimpleTelemetryService struct {
	store TelemetrySnapshotStore
}

// Snapshot returns an empty snapshot until the first reading arrives.
func (s *SimpleTelemetryService) Snapshot(ctx context.Context) (TelemetrySnapshot, error) {
	snapshot, err := s.store.Load(ctx)
	if errors.Is(err, ErrSnapshotNotFound) {
		return TelemetrySnapshot{
			Valves:    map[int]bool{},
			Pressures: map[int]dto.PressureReading{},
		}, nil
	}
	return snapshot, err
}
