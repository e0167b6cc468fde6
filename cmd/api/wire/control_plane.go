//go:build wireinject
// +build wireinject

package wire

import (
	"ground-control/cmd/config"
	"ground-control/internal/control_plane/domain"
	"ground-control/internal/control_plane/httpapi"
	"ground-control/internal/control_plane/persistence"
	"ground-control/internal/control_plane/usecases"
	"ground-control/internal/infra/async"

	"github.com/google/wire"
)

var MissionSet = wire.NewSet(
	provideProcedureModel,
	domain.NewLaunchStateMachine,
	provideParser,
	provideLinkOpener,
	providePortLister,
	provideSessionFactory,
	provideMissionControllerOpts,
	usecases.NewMissionController,
	wire.Bind(new(usecases.MissionService), new(*usecases.MissionController)),
)

var JournalSet = wire.NewSet(
	provideDatabase,
	persistence.NewEventRepository,
	wire.Bind(new(usecases.EventRepository), new(*persistence.SimpleEventRepository)),
	usecases.NewJournalService,
	wire.Bind(new(usecases.JournalService), new(*usecases.SimpleJournalService)),
	provideJournal,
	usecases.NewJournalWorker,
	provideRetentionWorker,
)

var TelemetrySet = wire.NewSet(
	provideCache,
	provideSnapshotStoreConfig,
	persistence.NewTelemetrySnapshotStore,
	wire.Bind(new(usecases.TelemetrySnapshotStore), new(*persistence.CachedTelemetrySnapshotStore)),
	usecases.NewTelemetryService,
	wire.Bind(new(usecases.TelemetryService), new(*usecases.SimpleTelemetryService)),
	usecases.NewTelemetrySnapshotWorker,
	usecases.NewMetricPublisherWorker,
	provideTelemetryExportWorker,
	provideTelemetryBridgeWorker,
)

var HTTPSet = wire.NewSet(
	httpapi.NewProcedureController,
	httpapi.NewLinkController,
	httpapi.NewTelemetryController,
	httpapi.NewEventController,
	httpapi.NewEventStreamController,
	provideControllers,
	providePostgresPool,
	provideHealthChecks,
	provideServer,
)

func InitializeApplication(cfg config.AppConfig) (*Application, func(), error) {
	wire.Build(
		provideBroker,
		wire.Bind(new(async.InternalBroker), new(*async.LocalBroker)),
		MissionSet,
		JournalSet,
		TelemetrySet,
		HTTPSet,
		provideWorkers,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil
}
