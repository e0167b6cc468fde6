package avro

import (
	"time"

	"ground-control/internal/data_plane/dto"
)

const TelemetryRecordSchemaName = "telemetry_records"

// TelemetryRecord is the flattened, schema friendly form of a mission
// event. Optional readings are nullable unions.
type TelemetryRecord struct {
	ID         string    `avro:"id"`
	Station    string    `avro:"station"`
	Kind       string    `avro:"kind"`
	OccurredAt time.Time `avro:"occurred_at"`
	Line       string    `avro:"line"`
	ValvePin   *int      `avro:"valve_pin"`
	ValveOpen  *bool     `avro:"valve_open"`
	Sensor     *int      `avro:"sensor"`
	Pressure   *int      `avro:"pressure"`
	Band       *string   `avro:"band"`
	Stage      string    `avro:"stage"`
	Task       string    `avro:"task"`
	Remaining  int       `avro:"remaining"`
	Message    string    `avro:"message"`
	TraceID    string    `avro:"trace_id"`
	SpanID     string    `avro:"span_id"`
}

const telemetryRecordSchema = `{
	"type": "record",
	"name": "TelemetryRecord",
	"namespace": "groundcontrol",
	"fields": [
		{"name": "id", "type": "string"},
		{"name": "station", "type": "string"},
		{"name": "kind", "type": "string"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
		{"name": "line", "type": "string", "default": ""},
		{"name": "valve_pin", "type": ["null", "int"], "default": null},
		{"name": "valve_open", "type": ["null", "boolean"], "default": null},
		{"name": "sensor", "type": ["null", "int"], "default": null},
		{"name": "pressure", "type": ["null", "int"], "default": null},
		{"name": "band", "type": ["null", "string"], "default": null},
		{"name": "stage", "type": "string", "default": ""},
		{"name": "task", "type": "string", "default": ""},
		{"name": "remaining", "type": "int", "default": 0},
		{"name": "message", "type": "string", "default": ""},
		{"name": "trace_id", "type": "string", "default": ""},
		{"name": "span_id", "type": "string", "default": ""}
	]
}`

// TelemetryRecordSchema returns the Avro schema registered for the
// telemetry topic.
func TelemetryRecordSchema() string {
	return telemetryRecordSchema
}

func ToTelemetryRecord(envelope dto.Envelope) *TelemetryRecord {
	record := &TelemetryRecord{
		ID:         envelope.ID,
		Station:    envelope.Station,
		Kind:       string(envelope.Kind),
		OccurredAt: envelope.OccurredAt.UTC().Truncate(time.Millisecond),
		Line:       envelope.Line,
		Stage:      envelope.Stage,
		Task:       envelope.Task,
		Remaining:  envelope.Remaining,
		Message:    envelope.Message,
	}

	if envelope.Valve != nil {
		pin, open := envelope.Valve.Pin, envelope.Valve.Open
		record.ValvePin = &pin
		record.ValveOpen = &open
	}
	if envelope.Pressure != nil {
		sensor, value, band := envelope.Pressure.Sensor, envelope.Pressure.Value, string(envelope.Pressure.Band)
		record.Sensor = &sensor
		record.Pressure = &value
		record.Band = &band
	}

	return record
}

func (r *TelemetryRecord) ToEnvelope() dto.Envelope {
	envelope := dto.Envelope{
		ID:         r.ID,
		Station:    r.Station,
		Kind:       dto.EnvelopeKind(r.Kind),
		OccurredAt: r.OccurredAt,
		Line:       r.Line,
		Stage:      r.Stage,
		Task:       r.Task,
		Remaining:  r.Remaining,
		Message:    r.Message,
	}

	if r.ValvePin != nil && r.ValveOpen != nil {
		envelope.Valve = &dto.ValveStatus{Pin: *r.ValvePin, Open: *r.ValveOpen}
	}
	if r.Sensor != nil && r.Pressure != nil {
		reading := &dto.PressureReading{Sensor: *r.Sensor, Value: *r.Pressure}
		if r.Band != nil {
			reading.Band = dto.Band(*r.Band)
		}
		envelope.Pressure = reading
	}

	return envelope
}
