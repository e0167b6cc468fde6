package async

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

type BrokerTopicName string

type BrokerMessage struct {
	Event string
	Value any
	Span  trace.Span
	Error error
}

//go:generate mockgen -source=internal_broker.go -destination=../../../test/unit/doubles/infra/async/internal_broker_mock.go -package=async -mock_names=InternalBroker=MockInternalBroker

type InternalBroker interface {
	Subscribe(topic BrokerTopicName) (Subscription, error)
	Unsubscribe(topic BrokerTopicName, subscription Subscription) error
	Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error
	Stop()
}

var _ InternalBroker = (*LocalBroker)(nil)

var ErrTopicNotFound = errors.New("topic not found")
var ErrSubscriptorNotFound = errors.New("subscriptor not found")

const DefaultReceiverBuffer = 64

func NewLocalBroker() *LocalBroker {
	return NewLocalBrokerWithBuffer(DefaultReceiverBuffer)
}

func NewLocalBrokerWithBuffer(size int) *LocalBroker {
	return &LocalBroker{
		topics: make(map[BrokerTopicName][]*subscriptor),
		buffer: size,
	}
}

// LocalBroker fans messages out to in-process subscribers. Publish delivers
// synchronously, so every subscriber sees a topic's messages in publish
// order. A full receiver blocks the publisher until it drains, the
// subscription ends or ctx is done.
type LocalBroker struct {
	mu     sync.RWMutex
	topics map[BrokerTopicName][]*subscriptor
	buffer int
}

type subscriptor struct {
	mu           sync.RWMutex
	once         sync.Once
	active       bool
	quit         chan struct{}
	subscription Subscription
}

type Subscription struct {
	ID       string
	Receiver chan BrokerMessage
}

func (b *LocalBroker) Subscribe(topic BrokerTopicName) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscription := Subscription{
		ID:       uuid.NewString(),
		Receiver: make(chan BrokerMessage, b.buffer),
	}
	subscriptors := slices.DeleteFunc(slices.Clone(b.topics[topic]), func(s *subscriptor) bool {
		return !s.isActive()
	})
	b.topics[topic] = append(subscriptors, &subscriptor{
		subscription: subscription,
		active:       true,
		quit:         make(chan struct{}),
	})
	return subscription, nil
}

func (b *LocalBroker) Unsubscribe(topic BrokerTopicName, subscription Subscription) error {
	b.mu.RLock()
	subscriptors, ok := b.topics[topic]
	b.mu.RUnlock()
	if !ok {
		return ErrTopicNotFound
	}

	index := slices.IndexFunc(subscriptors, func(s *subscriptor) bool { return s.subscription.ID == subscription.ID })
	if index < 0 {
		return ErrSubscriptorNotFound
	}

	subscriptors[index].safeClose()
	return nil
}

func (b *LocalBroker) Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error {
	msg.Span = trace.SpanFromContext(ctx)
	b.mu.RLock()
	subscriptors, ok := b.topics[topic]
	b.mu.RUnlock()
	if !ok {
		return ErrTopicNotFound
	}

	for _, s := range subscriptors {
		if err := s.deliver(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (b *LocalBroker) Stop() {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, subscriptors := range b.topics {
		for _, s := range subscriptors {
			s.safeClose()
		}
	}
}

func (s *subscriptor) isActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *subscriptor) deliver(ctx context.Context, msg BrokerMessage) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.active {
		return nil
	}
	select {
	case s.subscription.Receiver <- msg:
		return nil
	case <-s.quit:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *subscriptor) safeClose() {
	s.once.Do(func() {
		close(s.quit)
		s.mu.Lock()
		s.active = false
		close(s.subscription.Receiver)
		s.mu.Unlock()
	})
}
