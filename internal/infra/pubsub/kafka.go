package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lovoo/goka"
)

const (
	_defaultConnectAttempts = 10
	_defaultRetryInterval   = 5 * time.Second
)

var _ PublisherFactory = (*KafkaPublisherFactory)(nil)

type KafkaPublisherFactoryOptions struct {
	Brokers         []string
	Codec           goka.Codec
	ConnectAttempts int
	RetryInterval   time.Duration
}

func NewKafkaPublisherFactory(opts KafkaPublisherFactoryOptions) *KafkaPublisherFactory {
	if opts.ConnectAttempts <= 0 {
		opts.ConnectAttempts = _defaultConnectAttempts
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = _defaultRetryInterval
	}
	return &KafkaPublisherFactory{opts: opts}
}

type KafkaPublisherFactory struct {
	opts KafkaPublisherFactoryOptions
}

func (f *KafkaPublisherFactory) New(topic Topic) (Publisher, error) {
	publisher, err := NewKafkaPublisher(f.opts, topic)
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}
	return publisher, nil
}

func NewKafkaPublisher(opts KafkaPublisherFactoryOptions, topic Topic) (*SimpleKafkaPublisher, error) {
	brokers := strings.Join(opts.Brokers, ",")
	for try := 1; try <= opts.ConnectAttempts; try++ {
		slog.Debug("connecting to kafka brokers", slog.String("brokers", brokers), slog.String("topic", string(topic)))
		emitter, err := goka.NewEmitter(opts.Brokers, goka.Stream(topic), opts.Codec)
		if err == nil {
			return &SimpleKafkaPublisher{emitter: emitter, topic: topic}, nil
		}
		slog.Warn("kafka emitter not ready",
			slog.Int("attempt", try),
			slog.String("brokers", brokers),
			slog.Any("error", err))
		if try < opts.ConnectAttempts {
			time.Sleep(opts.RetryInterval)
		}
	}

	return nil, fmt.Errorf("impossible to connect to kafka brokers %s after %d attempts", brokers, opts.ConnectAttempts)
}

var _ Publisher = (*SimpleKafkaPublisher)(nil)

type SimpleKafkaPublisher struct {
	emitter *goka.Emitter
	topic   Topic
}

func (p *SimpleKafkaPublisher) Publish(ctx context.Context, key Key, message Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.emitter.EmitSync(string(key), message); err != nil {
		slog.Error("emitting message", slog.String("topic", string(p.topic)), slog.Any("error", err))
		return err
	}
	return nil
}

func (p *SimpleKafkaPublisher) Close() error {
	return p.emitter.Finish()
}
