package pubsub

import "context"

//go:generate mockgen -source=pubsub.go -destination=../../../test/unit/doubles/infra/pubsub/pubsub_mock.go -package=pubsub -mock_names=PublisherFactory=MockPublisherFactory,Publisher=MockPublisher,ConsumerFactory=MockConsumerFactory,Consumer=MockConsumer

type PublisherFactory interface {
	New(Topic) (Publisher, error)
}

type Publisher interface {
	Publish(context.Context, Key, Message) error
}

type Key string
type Message any

type ConsumerFactory interface {
	New() Consumer
}

type Consumer interface {
	Consume(Topic, MessageHandler) error
}

type Topic string
type MessageHandler func(context.Context, Key, Message) error
