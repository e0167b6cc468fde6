package dto

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

type EnvelopeKind string

const (
	KindRawLine         EnvelopeKind = "raw_line"
	KindValveStatus     EnvelopeKind = "valve_status"
	KindPressureReading EnvelopeKind = "pressure_reading"
	KindParseError      EnvelopeKind = "parse_error"
	KindIoError         EnvelopeKind = "io_error"
	KindCleanup         EnvelopeKind = "cleanup"
	KindStageTransition EnvelopeKind = "stage_transition"
	KindTaskUpdate      EnvelopeKind = "task_update"
	KindCountdown       EnvelopeKind = "countdown"
	KindLaunch          EnvelopeKind = "launch"
	KindToggle          EnvelopeKind = "toggle"
)

var EnvelopeKinds = []EnvelopeKind{
	KindRawLine,
	KindValveStatus,
	KindPressureReading,
	KindParseError,
	KindIoError,
	KindCleanup,
	KindStageTransition,
	KindTaskUpdate,
	KindCountdown,
	KindLaunch,
	KindToggle,
}

func IsEnvelopeKind(value string) bool {
	return slices.Contains(EnvelopeKinds, EnvelopeKind(value))
}

// Envelope is the transport form of every mission event leaving the
// process: journal rows, websocket frames, MQTT and Kafka messages.
type Envelope struct {
	ID         string           `json:"id" msgpack:"id"`
	Station    string           `json:"station" msgpack:"st"`
	Kind       EnvelopeKind     `json:"kind" msgpack:"k"`
	OccurredAt time.Time        `json:"occurred_at" msgpack:"t"`
	Line       string           `json:"line,omitempty" msgpack:"l,omitempty"`
	Valve      *ValveStatus     `json:"valve,omitempty" msgpack:"vs,omitempty"`
	Pressure   *PressureReading `json:"pressure,omitempty" msgpack:"pr,omitempty"`
	Stage      string           `json:"stage,omitempty" msgpack:"sg,omitempty"`
	Task       string           `json:"task,omitempty" msgpack:"tk,omitempty"`
	Remaining  int              `json:"remaining,omitempty" msgpack:"rm,omitempty"`
	Message    string           `json:"message,omitempty" msgpack:"m,omitempty"`
}

func (e Envelope) ToMessagePack() ([]byte, error) {
	data, err := msgpack.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("msgpack marshaling: %w", err)
	}
	return data, nil
}

func EnvelopeFromMessagePack(data []byte) (Envelope, error) {
	var e Envelope
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return Envelope{}, fmt.Errorf("msgpack unmarshaling: %w", err)
	}
	return e, nil
}

func (e Envelope) ToJSON() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("json marshaling: %w", err)
	}
	return data, nil
}
