package pubsub

import (
	"fmt"

	"ground-control/internal/infra/avro"

	"github.com/lovoo/goka"
)

const EnvironmentLocal = "local"

type FactoryOptions struct {
	Environment       string
	KafkaBrokers      []string
	SchemaRegistryURL string
	ConsumerGroup     string
}

// Factory picks the in-memory transport for local runs and Kafka
// everywhere else.
type Factory struct {
	publisherFactory PublisherFactory
	consumerFactory  ConsumerFactory
}

func NewFactory(opts FactoryOptions) (*Factory, error) {
	if opts.Environment == EnvironmentLocal {
		return &Factory{
			publisherFactory: NewMemoryPublisherFactory(),
			consumerFactory:  NewMemoryConsumerFactory(opts.ConsumerGroup),
		}, nil
	}

	codec, err := newTelemetryCodec(opts.SchemaRegistryURL)
	if err != nil {
		return nil, err
	}
	return &Factory{
		publisherFactory: NewKafkaPublisherFactory(KafkaPublisherFactoryOptions{
			Brokers: opts.KafkaBrokers,
			Codec:   codec,
		}),
	}, nil
}

// newTelemetryCodec frames records for the schema registry when one is
// configured and falls back to bare Avro otherwise.
func newTelemetryCodec(schemaRegistryURL string) (goka.Codec, error) {
	if schemaRegistryURL != "" {
		codec, err := avro.NewConfluentAvroCodec(avro.NewSchemaRegistry(schemaRegistryURL))
		if err != nil {
			return nil, fmt.Errorf("creating confluent codec: %w", err)
		}
		return codec, nil
	}

	codec, err := avro.NewAvroCodec()
	if err != nil {
		return nil, fmt.Errorf("creating avro codec: %w", err)
	}
	return codec, nil
}

func (f *Factory) GetPublisherFactory() PublisherFactory {
	return f.publisherFactory
}

// GetConsumerFactory is nil outside local runs; nothing in the process
// consumes from Kafka.
func (f *Factory) GetConsumerFactory() ConsumerFactory {
	return f.consumerFactory
}

func (f *Factory) NewPublisher(topic Topic) (Publisher, error) {
	return f.publisherFactory.New(topic)
}
