package mqtt

import (
	"context"
	"fmt"
	"strings"

	"ground-control/internal/data_plane/dto"
)

const DefaultTopicPrefix = "ground-control"

// TelemetryBridge mirrors mission events to
// <prefix>/<station>/<kind> as messagepack payloads.
type TelemetryBridge struct {
	client Client
	prefix string
}

func NewTelemetryBridge(client Client, prefix string) *TelemetryBridge {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return &TelemetryBridge{client: client, prefix: prefix}
}

func (b *TelemetryBridge) Topic(envelope dto.Envelope) string {
	station := envelope.Station
	if station == "" {
		station = "default"
	}
	return b.prefix + "/" + station + "/" + string(envelope.Kind)
}

// Subscription returns the wildcard topic that matches every event of
// every station under the prefix.
func (b *TelemetryBridge) Subscription() string {
	return b.prefix + "/+/+"
}

func (b *TelemetryBridge) Publish(ctx context.Context, envelope dto.Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := envelope.ToMessagePack()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", envelope.Kind, err)
	}
	return b.client.Publish(b.Topic(envelope), payload)
}

func DecodeEnvelope(msg Message) (dto.Envelope, error) {
	return dto.EnvelopeFromMessagePack(msg.Payload())
}
