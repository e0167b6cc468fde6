package driver

import (
	"context"
	"net/http/httptest"
	"sync"
	"time"

	"ground-control/internal/control_plane/domain"
	"ground-control/internal/control_plane/httpapi"
	"ground-control/internal/control_plane/persistence"
	"ground-control/internal/control_plane/usecases"
	"ground-control/internal/data_plane/dto"
	"ground-control/internal/data_plane/workers"
	"ground-control/internal/infra/async"
	"ground-control/internal/infra/cache"
	"ground-control/internal/infra/httpserver"
	"ground-control/internal/infra/serial"
	"ground-control/internal/infra/sql"
	"ground-control/internal/logger"

	"github.com/google/uuid"
)

const _readyTimeout = 2 * time.Second

// Station runs the whole control plane in process, against a FakeStand,
// behind a real HTTP server.
type Station struct {
	Stand  *FakeStand
	API    *APIDriver
	server *httptest.Server

	broker  *async.LocalBroker
	mission *usecases.MissionController
	stream  *httpapi.EventStreamController
	cache   *cache.RistrettoCache
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

type StationOpts struct {
	CountdownFrom     int
	CountdownInterval time.Duration
}

func StartStation(opts StationOpts) (*Station, error) {
	stand := NewFakeStand()
	broker := async.NewLocalBroker()

	model, err := domain.NewDefaultProcedureModel()
	if err != nil {
		return nil, err
	}
	parser, err := dto.NewParser(dto.DefaultParserConfig())
	if err != nil {
		return nil, err
	}

	openLink := func(serial.LinkOpts) (serial.Link, error) { return stand, nil }
	newSession := func(link serial.Link) (usecases.SerialSession, error) {
		return workers.NewSerialWorker(link, parser, workers.SerialWorkerOpts{
			Yield:        2 * time.Millisecond,
			DegradedPoll: 10 * time.Millisecond,
		})
	}
	listPorts := func() ([]string, error) { return []string{"/dev/ttyFAKE0"}, nil }

	mission := usecases.NewMissionController(
		domain.NewLaunchStateMachine(model),
		broker,
		openLink,
		newSession,
		listPorts,
		usecases.MissionControllerOpts{
			Station: "functional",
			Countdown: usecases.CountdownOpts{
				From:     opts.CountdownFrom,
				Interval: opts.CountdownInterval,
			},
		},
	)

	orm, err := sql.NewMemoryORM("functional_" + uuid.NewString())
	if err != nil {
		return nil, err
	}
	events, err := persistence.NewEventRepository(orm)
	if err != nil {
		return nil, err
	}
	snapshotCache, err := cache.New(nil)
	if err != nil {
		return nil, err
	}
	snapshots := persistence.NewTelemetrySnapshotStore(snapshotCache, events, persistence.TelemetrySnapshotStoreConfig{})

	journal := usecases.NewJournalWorker(broker, events, logger.NewNopJournal())
	snapshot := usecases.NewTelemetrySnapshotWorker(broker, snapshots)
	stream := httpapi.NewEventStreamController(broker)

	server := httpserver.NewServer(httpserver.Config{}, nil,
		httpapi.NewProcedureController(mission),
		httpapi.NewLinkController(mission),
		httpapi.NewTelemetryController(usecases.NewTelemetryService(snapshots)),
		httpapi.NewEventController(usecases.NewJournalService(events)),
		stream,
	)

	ctx, cancel := context.WithCancel(context.Background())
	s := &Station{
		Stand:   stand,
		server:  httptest.NewServer(server.Handler()),
		broker:  broker,
		mission: mission,
		stream:  stream,
		cache:   snapshotCache,
		cancel:  cancel,
	}
	s.API = NewAPIDriver(s.server.URL)

	workers := []async.Worker{journal, snapshot}
	for _, worker := range workers {
		s.wg.Add(1)
		go worker.Run(ctx, s.wg.Done)
	}

	readyCtx, cancelReady := context.WithTimeout(ctx, _readyTimeout)
	defer cancelReady()
	if err := async.WaitReady(readyCtx, workers...); err != nil {
		s.Stop()
		return nil, err
	}

	return s, nil
}

func (s *Station) Stop() {
	s.server.Close()
	s.stream.Shutdown()
	s.mission.Close(context.Background())
	s.cancel()
	s.wg.Wait()
	s.broker.Stop()
	s.cache.Close()
}
