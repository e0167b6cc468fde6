package wire

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ground-control/cmd/config"
	"ground-control/internal/control_plane/domain"
	"ground-control/internal/control_plane/httpapi"
	"ground-control/internal/control_plane/persistence"
	"ground-control/internal/control_plane/usecases"
	"ground-control/internal/data_plane/dto"
	"ground-control/internal/data_plane/workers"
	"ground-control/internal/infra/async"
	"ground-control/internal/infra/cache"
	"ground-control/internal/infra/httpserver"
	"ground-control/internal/infra/mqtt"
	"ground-control/internal/infra/node"
	"ground-control/internal/infra/pubsub"
	"ground-control/internal/infra/serial"
	"ground-control/internal/infra/sql"
	"ground-control/internal/logger"
)

const _clientIDPrefix = "ground-control"

// Application is everything cmd/api starts and stops.
type Application struct {
	Config      config.AppConfig
	Broker      *async.LocalBroker
	Mission     *usecases.MissionController
	Server      *httpserver.StandardServer
	EventStream *httpapi.EventStreamController
	Workers     []async.Worker
}

func provideProcedureModel(cfg config.AppConfig) (*domain.ProcedureModel, error) {
	if len(cfg.Procedure.Stages) == 0 {
		return domain.NewDefaultProcedureModel()
	}

	stages := make([]domain.Stage, 0, len(cfg.Procedure.Stages))
	for _, sc := range cfg.Procedure.Stages {
		builder := domain.NewStageBuilder().
			WithID(domain.StageID(sc.ID)).
			WithTitle(domain.Title(sc.Title))
		for _, tc := range sc.Tasks {
			builder = builder.WithTask(domain.TaskID(tc.ID), domain.Description(tc.Description), domain.Prompt(tc.Prompt))
		}
		stage, err := builder.Build()
		if err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}
	return domain.NewProcedureModel(stages...)
}

func provideBroker() *async.LocalBroker {
	return async.NewLocalBroker()
}

func provideParser(cfg config.AppConfig) (*dto.Parser, error) {
	return dto.NewParser(cfg.Parser)
}

func provideLinkOpener() usecases.LinkOpener {
	return func(opts serial.LinkOpts) (serial.Link, error) {
		return serial.Open(opts)
	}
}

func providePortLister() usecases.PortLister {
	return serial.ListPorts
}

func provideSessionFactory(cfg config.AppConfig, parser *dto.Parser) usecases.SessionFactory {
	opts := workers.SerialWorkerOpts{
		PinWidth:     cfg.Serial.PinWidth,
		DefaultPins:  cfg.Serial.DefaultPins,
		Yield:        cfg.Serial.Yield,
		DegradedPoll: cfg.Serial.DegradedPoll,
	}
	return func(link serial.Link) (usecases.SerialSession, error) {
		return workers.NewSerialWorker(link, parser, opts)
	}
}

func provideMissionControllerOpts(cfg config.AppConfig) usecases.MissionControllerOpts {
	return usecases.MissionControllerOpts{
		Station:     cfg.General.Station,
		ReadTimeout: cfg.Serial.ReadTimeout,
		Countdown:   cfg.Procedure.Countdown,
	}
}

func provideDatabase(cfg config.AppConfig) (sql.ORM, error) {
	if cfg.IsLocal() {
		return sql.NewMemoryORM("ground_control")
	}
	return sql.NewPosgreORM(cfg.Database.Postgres)
}

// providePostgresPool is only opened outside local runs and backs the
// database health check.
func providePostgresPool(cfg config.AppConfig) (sql.Database, func(), error) {
	if cfg.IsLocal() {
		return nil, func() {}, nil
	}

	db := sql.NewPostgreDatabase(cfg.Database.Postgres)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Open(ctx); err != nil {
		return nil, nil, err
	}
	return db, db.Close, nil
}

func provideCache(cfg config.AppConfig) (cache.Cache, func(), error) {
	if cfg.Cache.Backend == config.CacheBackendRedis && !cfg.IsLocal() {
		redisCache, err := cache.NewRedisCache(context.Background(), cfg.Cache.Redis)
		if err != nil {
			return nil, nil, err
		}
		return redisCache, func() {
			if err := redisCache.Close(); err != nil {
				slog.Error("closing redis cache", slog.Any("error", err))
			}
		}, nil
	}

	memoryCache, err := cache.New(cfg.Cache.Memory)
	if err != nil {
		return nil, nil, err
	}
	return memoryCache, memoryCache.Close, nil
}

func provideSnapshotStoreConfig(cfg config.AppConfig) persistence.TelemetrySnapshotStoreConfig {
	return cfg.Cache.Snapshot
}

func provideJournal(cfg config.AppConfig) (logger.Logger, func(), error) {
	journal, err := logger.NewJournal(cfg.Journal)
	if err != nil {
		return nil, nil, err
	}
	return journal, func() { _ = journal.Sync() }, nil
}

func provideRetentionWorker(cfg config.AppConfig, repository usecases.EventRepository) (*usecases.RetentionWorker, func(), error) {
	tick := cfg.Database.RetentionTick
	if tick <= 0 {
		tick = time.Minute
	}
	ticker := time.NewTicker(tick)
	worker, err := usecases.NewRetentionWorker(ticker, repository, cfg.Database.Retention)
	if err != nil {
		ticker.Stop()
		return nil, nil, err
	}
	return worker, ticker.Stop, nil
}

// TelemetryExportWorker and TelemetryBridgeWorker are optional: a nil value
// means the integration is disabled.
type TelemetryExportWorker struct{ *usecases.TelemetryRelayWorker }
type TelemetryBridgeWorker struct{ *usecases.TelemetryRelayWorker }

func provideTelemetryExportWorker(cfg config.AppConfig, broker async.InternalBroker) (*TelemetryExportWorker, func(), error) {
	if !cfg.Kafka.Enabled && !cfg.IsLocal() {
		return nil, func() {}, nil
	}

	factory, err := pubsub.NewFactory(pubsub.FactoryOptions{
		Environment:       cfg.General.Environment,
		KafkaBrokers:      cfg.Kafka.Brokers,
		SchemaRegistryURL: cfg.Kafka.SchemaRegistryURL,
		ConsumerGroup:     cfg.Kafka.Group,
	})
	if err != nil {
		return nil, nil, err
	}

	publisher, err := factory.NewPublisher(pubsub.TelemetryTopic)
	if err != nil {
		return nil, nil, err
	}

	if consumers := factory.GetConsumerFactory(); consumers != nil {
		tap := func(ctx context.Context, envelope dto.Envelope) {
			slog.DebugContext(ctx, "telemetry exported",
				slog.String("kind", string(envelope.Kind)),
				slog.String("station", envelope.Station))
		}
		if err := pubsub.NewExportTap(consumers.New(), tap); err != nil {
			return nil, nil, err
		}
	}

	cleanup := func() {}
	if closer, ok := publisher.(interface{ Close() error }); ok {
		cleanup = func() {
			if err := closer.Close(); err != nil {
				slog.Error("closing telemetry publisher", slog.Any("error", err))
			}
		}
	}

	exporter := pubsub.NewTelemetryExporter(publisher)
	return &TelemetryExportWorker{usecases.NewTelemetryExportWorker(broker, exporter)}, cleanup, nil
}

func provideTelemetryBridgeWorker(cfg config.AppConfig, broker async.InternalBroker) (*TelemetryBridgeWorker, func(), error) {
	if !cfg.MQTTClient.Enabled {
		return nil, func() {}, nil
	}

	clientConfig := cfg.MQTTClient
	if clientConfig.ClientID == "" {
		clientConfig.ClientID = node.GetNodeInfo().ClientID(_clientIDPrefix)
	}
	client, err := mqtt.NewSimpleClient(clientConfig)
	if err != nil {
		return nil, nil, err
	}

	bridge := mqtt.NewTelemetryBridge(client, clientConfig.TopicPrefix)
	return &TelemetryBridgeWorker{usecases.NewTelemetryBridgeWorker(broker, bridge)}, client.Disconnect, nil
}

func provideWorkers(
	journal *usecases.JournalWorker,
	metrics *usecases.MetricPublisherWorker,
	snapshot *usecases.TelemetrySnapshotWorker,
	retention *usecases.RetentionWorker,
	export *TelemetryExportWorker,
	bridge *TelemetryBridgeWorker,
) []async.Worker {
	result := []async.Worker{journal, metrics, snapshot, retention}
	if export != nil {
		result = append(result, export)
	}
	if bridge != nil {
		result = append(result, bridge)
	}
	return result
}

func provideHealthChecks(db sql.Database, c cache.Cache, mission *usecases.MissionController) map[string]httpserver.HealthCheck {
	checks := map[string]httpserver.HealthCheck{
		"serial": func(context.Context) error {
			if mission.LinkStatus().Degraded {
				return errors.New("serial link degraded")
			}
			return nil
		},
	}
	if db != nil {
		checks["database"] = db.Ping
	}
	if pinger, ok := c.(interface{ Ping(context.Context) error }); ok {
		checks["cache"] = pinger.Ping
	}
	return checks
}

func provideControllers(
	procedure *httpapi.ProcedureController,
	link *httpapi.LinkController,
	telemetry *httpapi.TelemetryController,
	events *httpapi.EventController,
	stream *httpapi.EventStreamController,
) []httpserver.Controller {
	return []httpserver.Controller{procedure, link, telemetry, events, stream}
}

func provideServer(cfg config.AppConfig, checks map[string]httpserver.HealthCheck, controllers []httpserver.Controller) *httpserver.StandardServer {
	return httpserver.NewServer(cfg.HTTP, checks, controllers...)
}
