package avro

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"ground-control/internal/infra/cache"

	"github.com/linkedin/goavro/v2"
)

const (
	_defaultSchemaCacheTTL = 5 * time.Minute
	_defaultCodecCacheTTL  = 5 * time.Minute
	_magicByte             = 0
	_headerSize            = 5
)

var ErrWireFormat = errors.New("invalid confluent wire format")

// ConfluentAvroCodec frames TelemetryRecords in the Confluent wire format:
// a zero magic byte, the big endian schema id, then Avro binary.
type ConfluentAvroCodec struct {
	schemaRegistry SchemaRegistry
	subject        string
	schemaCache    cache.Cache
	codecCache     cache.Cache
}

func NewConfluentAvroCodec(schemaRegistry SchemaRegistry) (*ConfluentAvroCodec, error) {
	schemaCache, err := cache.New(&cache.CacheConfig{
		MaxCost:     1 << 20,
		NumCounters: 1e4,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("creating schema cache: %w", err)
	}
	codecCache, err := cache.New(&cache.CacheConfig{
		MaxCost:     1 << 20,
		NumCounters: 1e4,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("creating codec cache: %w", err)
	}

	return &ConfluentAvroCodec{
		schemaRegistry: schemaRegistry,
		subject:        TelemetryRecordSchemaName + "-value",
		schemaCache:    schemaCache,
		codecCache:     codecCache,
	}, nil
}

// schemaID registers the built in schema the first time the subject is
// missing from the registry.
func (c *ConfluentAvroCodec) schemaID(ctx context.Context) (int, error) {
	value, err := c.schemaCache.GetOrSet(ctx, c.subject, _defaultSchemaCacheTTL, func() (any, error) {
		if id, err := c.schemaRegistry.LatestSchemaID(c.subject); err == nil {
			return id, nil
		}
		return c.schemaRegistry.RegisterSchema(c.subject, telemetryRecordSchema)
	})
	if err != nil {
		return 0, fmt.Errorf("getting schema ID: %w", err)
	}
	return value.(int), nil
}

func (c *ConfluentAvroCodec) codecByID(ctx context.Context, schemaID int) (*goavro.Codec, error) {
	value, err := c.codecCache.GetOrSet(ctx, fmt.Sprintf("schema_%d", schemaID), _defaultCodecCacheTTL, func() (any, error) {
		schema, err := c.schemaRegistry.SchemaByID(schemaID)
		if err != nil {
			return nil, err
		}
		codec, err := goavro.NewCodec(schema)
		if err != nil {
			return nil, fmt.Errorf("creating codec from schema: %w", err)
		}
		return codec, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*goavro.Codec), nil
}

func (c *ConfluentAvroCodec) Encode(value any) ([]byte, error) {
	record, err := asRecord(value)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	schemaID, err := c.schemaID(ctx)
	if err != nil {
		return nil, err
	}
	codec, err := c.codecByID(ctx, schemaID)
	if err != nil {
		return nil, fmt.Errorf("getting codec by schema ID: %w", err)
	}

	result := make([]byte, _headerSize, _headerSize+128)
	result[0] = _magicByte
	binary.BigEndian.PutUint32(result[1:_headerSize], uint32(schemaID))

	result, err = codec.BinaryFromNative(result, toNative(record))
	if err != nil {
		return nil, fmt.Errorf("encoding to Avro: %w", err)
	}
	return result, nil
}

func (c *ConfluentAvroCodec) Decode(data []byte) (any, error) {
	if len(data) < _headerSize {
		return nil, fmt.Errorf("%w: too short", ErrWireFormat)
	}
	if data[0] != _magicByte {
		return nil, fmt.Errorf("%w: magic byte %d", ErrWireFormat, data[0])
	}
	schemaID := int(binary.BigEndian.Uint32(data[1:_headerSize]))

	codec, err := c.codecByID(context.Background(), schemaID)
	if err != nil {
		return nil, fmt.Errorf("getting codec by schema ID: %w", err)
	}

	native, _, err := codec.NativeFromBinary(data[_headerSize:])
	if err != nil {
		return nil, fmt.Errorf("decoding Avro data: %w", err)
	}
	fields, ok := native.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: record expected, got %T", ErrWireFormat, native)
	}
	return fromNative(fields), nil
}

func toNative(r *TelemetryRecord) map[string]any {
	native := map[string]any{
		"id":          r.ID,
		"station":     r.Station,
		"kind":        r.Kind,
		"occurred_at": r.OccurredAt,
		"line":        r.Line,
		"valve_pin":   nil,
		"valve_open":  nil,
		"sensor":      nil,
		"pressure":    nil,
		"band":        nil,
		"stage":       r.Stage,
		"task":        r.Task,
		"remaining":   int32(r.Remaining),
		"message":     r.Message,
		"trace_id":    r.TraceID,
		"span_id":     r.SpanID,
	}
	if r.ValvePin != nil {
		native["valve_pin"] = goavro.Union("int", int32(*r.ValvePin))
	}
	if r.ValveOpen != nil {
		native["valve_open"] = goavro.Union("boolean", *r.ValveOpen)
	}
	if r.Sensor != nil {
		native["sensor"] = goavro.Union("int", int32(*r.Sensor))
	}
	if r.Pressure != nil {
		native["pressure"] = goavro.Union("int", int32(*r.Pressure))
	}
	if r.Band != nil {
		native["band"] = goavro.Union("string", *r.Band)
	}
	return native
}

func fromNative(m map[string]any) *TelemetryRecord {
	record := &TelemetryRecord{
		ID:        getString(m, "id"),
		Station:   getString(m, "station"),
		Kind:      getString(m, "kind"),
		Line:      getString(m, "line"),
		Stage:     getString(m, "stage"),
		Task:      getString(m, "task"),
		Remaining: getInt(m, "remaining"),
		Message:   getString(m, "message"),
		TraceID:   getString(m, "trace_id"),
		SpanID:    getString(m, "span_id"),
		ValvePin:  getUnionInt(m, "valve_pin"),
		Sensor:    getUnionInt(m, "sensor"),
		Pressure:  getUnionInt(m, "pressure"),
	}
	if t, ok := m["occurred_at"].(time.Time); ok {
		record.OccurredAt = t.UTC()
	}
	if union, ok := m["valve_open"].(map[string]any); ok {
		if v, ok := union["boolean"].(bool); ok {
			record.ValveOpen = &v
		}
	}
	if union, ok := m["band"].(map[string]any); ok {
		if v, ok := union["string"].(string); ok {
			record.Band = &v
		}
	}
	return record
}

func getString(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

func getInt(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func getUnionInt(m map[string]any, key string) *int {
	union, ok := m[key].(map[string]any)
	if !ok {
		return nil
	}
	v := getInt(union, "int")
	return &v
}
