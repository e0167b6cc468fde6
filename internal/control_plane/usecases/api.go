package usecases

import (
	"context"

	"ground-control/internal/control_plane/domain"
	"ground-control/internal/data_plane/dto"
)

//go:generate mockgen -source=./api.go -destination=../../../test/unit/doubles/control_plane/usecases/api_mock.go -package=usecases -mock_names=MissionService=MockMissionService,TelemetryService=MockTelemetryService,JournalService=MockJournalService

type MissionService interface {
	SetupLink(ctx context.Context, port string, baud int) error
	StartWorker(ctx context.Context) error
	StopWorker(ctx context.Context) error
	SendToggle(ctx context.Context, pins string) error
	SetPins(ctx context.Context, pins string) error
	AdvanceStage(ctx context.Context) domain.Transition
	RegressStage(ctx context.Context) domain.Transition
	Abort(ctx context.Context) domain.Transition
	MarkTask(ctx context.Context, task domain.TaskID, complete bool) error
	CurrentStage() domain.StageID
	Procedure() domain.ProcedureSnapshot
	NextPendingTask() PendingTask
	LinkStatus() LinkStatus
	ListPorts() ([]string, error)
}

type TelemetryService interface {
	Snapshot(ctx context.Context) (TelemetrySnapshot, error)
}

type JournalService interface {
	Find(ctx context.Context, filter EventFilter, pagination Pagination) ([]dto.Envelope, int, error)
	Get(ctx context.Context, id string) (dto.Envelope, error)
}
