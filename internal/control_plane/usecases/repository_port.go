package usecases

import (
	"context"
	"errors"
	"time"

	"ground-control/internal/data_plane/dto"
)

//go:generate mockgen -source=repository_port.go -destination=../../../test/unit/doubles/control_plane/usecases/repository_port_mock.go -package=usecases -mock_names=EventRepository=MockEventRepository,TelemetrySnapshotStore=MockTelemetrySnapshotStore

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrSnapshotNotFound = errors.New("telemetry snapshot not found")
)

type Pagination struct {
	Limit  int
	Offset int
}

type EventFilter struct {
	Kind  dto.EnvelopeKind
	Since time.Time
}

type EventRepository interface {
	Append(context.Context, dto.Envelope) error
	Get(context.Context, string) (dto.Envelope, error)
	Find(context.Context, EventFilter, Pagination) ([]dto.Envelope, int, error)
	DeleteBefore(context.Context, time.Time) (int64, error)
}

// TelemetrySnapshot is the latest known state of every valve and sensor.
type TelemetrySnapshot struct {
	Valves    map[int]bool                `json:"valves"`
	Pressures map[int]dto.PressureReading `json:"pressures"`
	LastLine  string                      `json:"last_line"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

type TelemetrySnapshotStore interface {
	Load(context.Context) (TelemetrySnapshot, error)
	Save(context.Context, TelemetrySnapshot) error
}
