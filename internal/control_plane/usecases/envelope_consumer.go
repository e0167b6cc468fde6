package usecases

import (
	"context"
	"log/slog"
	"sync"

	"ground-control/internal/data_plane/dto"
	"ground-control/internal/infra/async"
)

var MissionTopics = []async.BrokerTopicName{BrokerTopicSerialEvents, BrokerTopicProcedureEvents}

type envelopeHandler func(ctx context.Context, envelope dto.Envelope)

func newEnvelopeConsumer(name string, broker async.InternalBroker, topics ...async.BrokerTopicName) *envelopeConsumer {
	if len(topics) == 0 {
		topics = MissionTopics
	}
	return &envelopeConsumer{
		name:   name,
		broker: broker,
		topics: topics,
		ready:  make(chan struct{}),
		stop:   make(chan struct{}),
	}
}

// envelopeConsumer feeds every envelope published on its topics to a single
// handler goroutine. Messages of one topic keep their publish order.
type envelopeConsumer struct {
	name   string
	broker async.InternalBroker
	topics []async.BrokerTopicName

	ready     chan struct{}
	readyOnce sync.Once
	stop      chan struct{}
	stopOnce  sync.Once
}

// Ready is closed once the subscriptions are in place.
func (c *envelopeConsumer) Ready() <-chan struct{} {
	return c.ready
}

func (c *envelopeConsumer) Shutdown() {
	c.stopOnce.Do(func() { close(c.stop) })
	slog.Info("worker shutdown", slog.String("worker", c.name))
}

func (c *envelopeConsumer) consume(ctx context.Context, handle envelopeHandler) {
	merged := make(chan async.BrokerMessage)
	var forwarders sync.WaitGroup

	subscriptions := make(map[async.BrokerTopicName]async.Subscription, len(c.topics))
	for _, topic := range c.topics {
		sub, err := c.broker.Subscribe(topic)
		if err != nil {
			slog.Error("subscribing",
				slog.String("worker", c.name),
				slog.String("topic", string(topic)),
				slog.Any("error", err))
			continue
		}
		subscriptions[topic] = sub

		forwarders.Add(1)
		go func(receiver <-chan async.BrokerMessage) {
			defer forwarders.Done()
			for msg := range receiver {
				select {
				case merged <- msg:
				case <-c.stop:
					return
				case <-ctx.Done():
					return
				}
			}
		}(sub.Receiver)
	}
	c.readyOnce.Do(func() { close(c.ready) })
	slog.Debug("worker started", slog.String("worker", c.name))

	defer func() {
		for topic, sub := range subscriptions {
			if err := c.broker.Unsubscribe(topic, sub); err != nil {
				slog.Error("unsubscribing", slog.String("worker", c.name), slog.Any("error", err))
			}
		}
		forwarders.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("worker cancelled", slog.String("worker", c.name))
			return
		case <-c.stop:
			return
		case msg := <-merged:
			envelope, ok := msg.Value.(dto.Envelope)
			if !ok {
				slog.Debug("ignoring message", slog.String("worker", c.name), slog.String("event", msg.Event))
				continue
			}
			handle(ctx, envelope)
		}
	}
}
