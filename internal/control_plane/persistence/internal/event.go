package internal

import (
	"time"

	"ground-control/internal/data_plane/dto"
)

type EventSet []Event

func (EventSet) TableName() string {
	return "mission_events"
}

func (s EventSet) ToDomain() []dto.Envelope {
	result := make([]dto.Envelope, len(s))
	for i, v := range s {
		result[i] = v.ToDomain()
	}
	return result
}

// Event is one journal row. Seq keeps insertion order for events sharing a
// timestamp.
type Event struct {
	Seq        uint64    `gorm:"primaryKey;autoIncrement"`
	ID         string    `gorm:"uniqueIndex;size:36"`
	Station    string    `gorm:"size:64"`
	Kind       string    `gorm:"index;size:32"`
	OccurredAt time.Time `gorm:"index"`
	Line       string
	ValvePin   *int
	ValveOpen  *bool
	Sensor     *int
	Pressure   *int
	Band       string `gorm:"size:16"`
	Stage      string `gorm:"size:64"`
	Task       string `gorm:"size:64"`
	Remaining  int
	Message    string
}

func (Event) TableName() string {
	return "mission_events"
}

func FromEnvelope(e dto.Envelope) Event {
	result := Event{
		ID:         e.ID,
		Station:    e.Station,
		Kind:       string(e.Kind),
		OccurredAt: e.OccurredAt.UTC(),
		Line:       e.Line,
		Stage:      e.Stage,
		Task:       e.Task,
		Remaining:  e.Remaining,
		Message:    e.Message,
	}
	if e.Valve != nil {
		result.ValvePin = &e.Valve.Pin
		result.ValveOpen = &e.Valve.Open
	}
	if e.Pressure != nil {
		result.Sensor = &e.Pressure.Sensor
		result.Pressure = &e.Pressure.Value
		result.Band = string(e.Pressure.Band)
	}
	return result
}

func (v Event) ToDomain() dto.Envelope {
	result := dto.Envelope{
		ID:         v.ID,
		Station:    v.Station,
		Kind:       dto.EnvelopeKind(v.Kind),
		OccurredAt: v.OccurredAt.UTC(),
		Line:       v.Line,
		Stage:      v.Stage,
		Task:       v.Task,
		Remaining:  v.Remaining,
		Message:    v.Message,
	}
	if v.ValvePin != nil && v.ValveOpen != nil {
		result.Valve = &dto.ValveStatus{Pin: *v.ValvePin, Open: *v.ValveOpen}
	}
	if v.Sensor != nil && v.Pressure != nil {
		result.Pressure = &dto.PressureReading{Sensor: *v.Sensor, Value: *v.Pressure, Band: dto.Band(v.Band)}
	}
	return result
}
