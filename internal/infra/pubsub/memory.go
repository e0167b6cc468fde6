package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// MemoryBroker delivers messages in process, synchronously and in publish
// order. Every consumer group sees every message once.
type MemoryBroker struct {
	mu        sync.RWMutex
	consumers map[Topic]map[string][]MessageHandler
	published map[Topic]int
}

var (
	memoryBroker     *MemoryBroker
	memoryBrokerOnce sync.Once
)

func GetMemoryBroker() *MemoryBroker {
	memoryBrokerOnce.Do(func() {
		memoryBroker = NewMemoryBroker()
	})
	return memoryBroker
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		consumers: make(map[Topic]map[string][]MessageHandler),
		published: make(map[Topic]int),
	}
}

func (b *MemoryBroker) Publish(ctx context.Context, topic Topic, key Key, message Message) error {
	b.mu.Lock()
	n := b.published[topic]
	b.published[topic]++
	// one member per group handles the message
	handlers := make([]MessageHandler, 0, len(b.consumers[topic]))
	for _, members := range b.consumers[topic] {
		handlers = append(handlers, members[n%len(members)])
	}
	b.mu.Unlock()

	for _, handler := range handlers {
		if err := b.deliver(ctx, handler, key, message); err != nil {
			slog.Error("memory consumer failed", slog.String("topic", string(topic)), slog.Any("error", err))
		}
	}
	return nil
}

func (b *MemoryBroker) deliver(ctx context.Context, handler MessageHandler, key Key, message Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in message handler: %v", r)
		}
	}()
	return handler(ctx, key, message)
}

func (b *MemoryBroker) Subscribe(topic Topic, group string, handler MessageHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.consumers[topic] == nil {
		b.consumers[topic] = make(map[string][]MessageHandler)
	}
	b.consumers[topic][group] = append(b.consumers[topic][group], handler)
	return nil
}

// PublishedCount reports how many messages went through a topic.
func (b *MemoryBroker) PublishedCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.published[topic]
}

func (b *MemoryBroker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.consumers = make(map[Topic]map[string][]MessageHandler)
	b.published = make(map[Topic]int)
}

var _ PublisherFactory = (*MemoryPublisherFactory)(nil)

type MemoryPublisherFactory struct {
	broker *MemoryBroker
}

func NewMemoryPublisherFactory() *MemoryPublisherFactory {
	return &MemoryPublisherFactory{broker: GetMemoryBroker()}
}

func (f *MemoryPublisherFactory) New(topic Topic) (Publisher, error) {
	return &MemoryPublisher{broker: f.broker, topic: topic}, nil
}

type MemoryPublisher struct {
	broker *MemoryBroker
	topic  Topic
}

func (p *MemoryPublisher) Publish(ctx context.Context, key Key, message Message) error {
	return p.broker.Publish(ctx, p.topic, key, message)
}

var _ ConsumerFactory = (*MemoryConsumerFactory)(nil)

type MemoryConsumerFactory struct {
	broker *MemoryBroker
	group  string
}

func NewMemoryConsumerFactory(group string) *MemoryConsumerFactory {
	return &MemoryConsumerFactory{broker: GetMemoryBroker(), group: group}
}

func (f *MemoryConsumerFactory) New() Consumer {
	return &MemoryConsumer{broker: f.broker, group: f.group}
}

type MemoryConsumer struct {
	broker *MemoryBroker
	group  string
}

func (c *MemoryConsumer) Consume(topic Topic, handler MessageHandler) error {
	return c.broker.Subscribe(topic, c.group, handler)
}
