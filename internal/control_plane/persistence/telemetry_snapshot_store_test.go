package persistence_test

import (
	"context"
	"time"

	"ground-control/internal/control_plane/persistence"
	"ground-control/internal/control_plane/usecases"
	"ground-control/internal/data_plane/dto"
	"ground-control/internal/infra/cache"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TelemetrySnapshotStore", func() {
	var (
		ctx   context.Context
		repo  *persistence.SimpleEventRepository
		mem   *cache.RistrettoCache
		store *persistence.CachedTelemetrySnapshotStore
		base  time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		repo, err = persistence.NewEventRepository(newMemoryORM())
		Expect(err).NotTo(HaveOccurred())
		mem, err = cache.New(nil)
		Expect(err).NotTo(HaveOccurred())
		store = persistence.NewTelemetrySnapshotStore(mem, repo, persistence.TelemetrySnapshotStoreConfig{})
		base = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	})

	AfterEach(func() {
		mem.Close()
	})

	It("reports a missing snapshot on an empty journal", func() {
		_, err := store.Load(ctx)
		Expect(err).To(MatchError(usecases.ErrSnapshotNotFound))
	})

	It("returns what was saved", func() {
		saved := usecases.TelemetrySnapshot{
			Valves:    map[int]bool{1: true, 4: false},
			Pressures: map[int]dto.PressureReading{1: {Sensor: 1, Value: 420, Band: dto.BandUnsafe}},
			LastLine:  "420",
			UpdatedAt: base,
		}
		Expect(store.Save(ctx, saved)).To(Succeed())

		loaded, err := store.Load(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(saved))
	})

	It("rebuilds the snapshot from the journal on a cache miss", func() {
		open := envelope(dto.KindValveStatus, base)
		open.Valve = &dto.ValveStatus{Pin: 2, Open: true}
		closed := envelope(dto.KindValveStatus, base.Add(time.Second))
		closed.Valve = &dto.ValveStatus{Pin: 2, Open: false}
		reading := envelope(dto.KindPressureReading, base.Add(2*time.Second))
		reading.Pressure = &dto.PressureReading{Sensor: 1, Value: 120, Band: dto.BandSafe}
		for _, e := range []dto.Envelope{open, closed, reading, envelope(dto.KindLaunch, base.Add(time.Minute))} {
			Expect(repo.Append(ctx, e)).To(Succeed())
		}

		loaded, err := store.Load(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Valves).To(Equal(map[int]bool{2: false}))
		Expect(loaded.Pressures[1].Value).To(Equal(120))
		Expect(loaded.UpdatedAt).To(BeTemporally("==", reading.OccurredAt))
	})
})
