package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"ground-control/internal/control_plane/usecases"
	"ground-control/internal/infra/cache"
)

const (
	_snapshotKey         = "telemetry_snapshot"
	_snapshotReplayDepth = 512
)

type TelemetrySnapshotStoreConfig struct {
	KeyPrefix string        `mapstructure:"key_prefix"`
	TTL       time.Duration `mapstructure:"ttl"`
}

func NewTelemetrySnapshotStore(c cache.Cache, events usecases.EventRepository, config TelemetrySnapshotStoreConfig) *CachedTelemetrySnapshotStore {
	return &CachedTelemetrySnapshotStore{
		cache:  c,
		events: events,
		key:    config.KeyPrefix + _snapshotKey,
		ttl:    config.TTL,
	}
}

var _ usecases.TelemetrySnapshotStore = (*CachedTelemetrySnapshotStore)(nil)

// CachedTelemetrySnapshotStore keeps the snapshot as a JSON string so the
// in-memory and redis caches hold the same representation. A cache miss is
// rebuilt by replaying the most recent journal entries.
type CachedTelemetrySnapshotStore struct {
	cache  cache.Cache
	events usecases.EventRepository
	key    string
	ttl    time.Duration
}

func (s *CachedTelemetrySnapshotStore) Load(ctx context.Context) (usecases.TelemetrySnapshot, error) {
	value, err := s.cache.GetOrSet(ctx, s.key, s.ttl, func() (any, error) {
		return s.replay(ctx)
	})
	if err != nil {
		return usecases.TelemetrySnapshot{}, err
	}

	raw, ok := value.(string)
	if !ok {
		return usecases.TelemetrySnapshot{}, fmt.Errorf("unexpected snapshot type %T", value)
	}
	var snapshot usecases.TelemetrySnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return usecases.TelemetrySnapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return snapshot, nil
}

func (s *CachedTelemetrySnapshotStore) Save(ctx context.Context, snapshot usecases.TelemetrySnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if !s.cache.Set(ctx, s.key, string(data), s.ttl) {
		return fmt.Errorf("storing snapshot under %s", s.key)
	}
	return nil
}

func (s *CachedTelemetrySnapshotStore) replay(ctx context.Context) (any, error) {
	events, _, err := s.events.Find(ctx, usecases.EventFilter{}, usecases.Pagination{Limit: _snapshotReplayDepth})
	if err != nil {
		return nil, fmt.Errorf("replaying journal: %w", err)
	}

	var snapshot usecases.TelemetrySnapshot
	for _, e := range slices.Backward(events) {
		snapshot = usecases.ApplyEnvelope(snapshot, e)
	}
	if snapshot.UpdatedAt.IsZero() {
		return nil, usecases.ErrSnapshotNotFound
	}
	slog.Debug("telemetry snapshot rebuilt from journal", slog.Int("events", len(events)))

	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return string(data), nil
}
