package pubsub

import (
	"context"
	"fmt"

	"ground-control/internal/data_plane/dto"
	"ground-control/internal/infra/avro"
)

const TelemetryTopic Topic = "ground_control.telemetry"

// TelemetryExporter turns mission events into TelemetryRecords keyed by
// station, so one station's events stay ordered within a partition.
type TelemetryExporter struct {
	publisher Publisher
}

func NewTelemetryExporter(publisher Publisher) *TelemetryExporter {
	return &TelemetryExporter{publisher: publisher}
}

func (e *TelemetryExporter) Export(ctx context.Context, envelope dto.Envelope) error {
	record := avro.ToTelemetryRecord(envelope)
	headers := TraceHeadersFrom(ctx)
	record.TraceID = headers.TraceID
	record.SpanID = headers.SpanID

	if err := e.publisher.Publish(ctx, Key(envelope.Station), record); err != nil {
		return fmt.Errorf("exporting %s: %w", envelope.Kind, err)
	}
	return nil
}

// NewExportTap consumes exported records back in local runs and hands the
// decoded envelope, with its trace restored, to handle.
func NewExportTap(consumer Consumer, handle func(context.Context, dto.Envelope)) error {
	return consumer.Consume(TelemetryTopic, func(ctx context.Context, _ Key, message Message) error {
		record, ok := message.(*avro.TelemetryRecord)
		if !ok {
			return fmt.Errorf("unexpected export message %T", message)
		}
		headers := TraceHeaders{TraceID: record.TraceID, SpanID: record.SpanID, Sampled: true}
		ctx = headers.Into(ctx)
		handle(ctx, record.ToEnvelope())
		return nil
	})
}
