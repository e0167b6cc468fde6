package avro

import (
	"fmt"

	"github.com/hamba/avro/v2"
)

// AvroCodec encodes TelemetryRecords as plain Avro binary against the
// built in schema. It is used when no schema registry is configured.
type AvroCodec struct {
	schema avro.Schema
}

func NewAvroCodec() (*AvroCodec, error) {
	schema, err := avro.Parse(telemetryRecordSchema)
	if err != nil {
		return nil, fmt.Errorf("parsing telemetry schema: %w", err)
	}
	return &AvroCodec{schema: schema}, nil
}

func (c *AvroCodec) Encode(value any) ([]byte, error) {
	record, err := asRecord(value)
	if err != nil {
		return nil, err
	}

	data, err := avro.Marshal(c.schema, record)
	if err != nil {
		return nil, fmt.Errorf("marshaling to Avro: %w", err)
	}
	return data, nil
}

func (c *AvroCodec) Decode(data []byte) (any, error) {
	record := &TelemetryRecord{}
	if err := avro.Unmarshal(c.schema, data, record); err != nil {
		return nil, fmt.Errorf("unmarshaling from Avro: %w", err)
	}
	return record, nil
}

func asRecord(value any) (*TelemetryRecord, error) {
	switch v := value.(type) {
	case *TelemetryRecord:
		return v, nil
	case TelemetryRecord:
		return &v, nil
	default:
		return nil, fmt.Errorf("no Avro schema found for message type: %T", value)
	}
}
