package usecases

import (
	"context"
	"log/slog"

	"ground-control/internal/data_plane/dto"
	"ground-control/internal/infra/async"
	"ground-control/internal/logger"
)

func NewJournalWorker(broker async.InternalBroker, repository EventRepository, journal logger.Logger) *JournalWorker {
	return &JournalWorker{
		envelopeConsumer: newEnvelopeConsumer("journal", broker),
		repository:       repository,
		journal:          journal,
	}
}

var _ async.Worker = &JournalWorker{}

// JournalWorker records every mission event twice: as a JSON line in the
// journal file and as a row in the event repository.
type JournalWorker struct {
	*envelopeConsumer
	repository EventRepository
	journal    logger.Logger
}

func (w *JournalWorker) Run(ctx context.Context, done func()) {
	defer done()
	defer func() {
		if err := w.journal.Sync(); err != nil {
			slog.Debug("journal sync", slog.Any("error", err))
		}
	}()
	w.consume(ctx, w.handleEvent)
}

func (w *JournalWorker) handleEvent(ctx context.Context, envelope dto.Envelope) {
	w.write(envelope)
	if err := w.repository.Append(ctx, envelope); err != nil {
		slog.Error("appending mission event",
			slog.String("id", envelope.ID),
			slog.String("kind", string(envelope.Kind)),
			slog.Any("error", err))
	}
}

func (w *JournalWorker) write(e dto.Envelope) {
	fields := []interface{}{
		"id", e.ID,
		"station", e.Station,
		"occurred_at", e.OccurredAt,
	}
	switch e.Kind {
	case dto.KindRawLine:
		fields = append(fields, "line", e.Line)
	case dto.KindValveStatus:
		if e.Valve != nil {
			fields = append(fields, "pin", e.Valve.Pin, "open", e.Valve.Open)
		}
	case dto.KindPressureReading:
		if e.Pressure != nil {
			fields = append(fields, "sensor", e.Pressure.Sensor, "value", e.Pressure.Value, "band", e.Pressure.Band)
		}
	case dto.KindParseError:
		w.journal.Warnw(string(e.Kind), append(fields, "line", e.Line, "error", e.Message)...)
		return
	case dto.KindIoError:
		w.journal.Errorw(string(e.Kind), append(fields, "error", e.Message)...)
		return
	case dto.KindToggle:
		fields = append(fields, "pins", e.Line)
	case dto.KindCountdown:
		fields = append(fields, "stage", e.Stage, "remaining", e.Remaining)
	case dto.KindStageTransition, dto.KindTaskUpdate, dto.KindLaunch:
		fields = append(fields, "stage", e.Stage, "task", e.Task, "message", e.Message)
	}
	w.journal.Infow(string(e.Kind), fields...)
}

func NewJournalService(repository EventRepository) *SimpleJournalService {
	return &SimpleJournalService{repository: repository}
}

var _ JournalService = &SimpleJournalService{}

type SimpleJournalService struct {
	repository EventRepository
}

func (s *SimpleJournalService) Find(ctx context.Context, filter EventFilter, pagination Pagination) ([]dto.Envelope, int, error) {
	return s.repository.Find(ctx, filter, pagination)
}

func (s *SimpleJournalService) Get(ctx context.Context, id string) (dto.Envelope, error) {
	return s.repository.Get(ctx, id)
}
