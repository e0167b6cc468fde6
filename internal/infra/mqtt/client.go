package mqtt

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	_defaultQoS      = 0
	_defaultRetained = false
	_publishTimeout  = 5 * time.Second
	_connectTimeout  = 5 * time.Second
)

var ErrNotConnected = errors.New("mqtt client not connected")

type Client interface {
	Subscribe(topic string, qos byte, callback MessageHandler) error
	Publish(topic string, payload []byte) error

	Disconnect()
}

type ClientConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Broker      string `mapstructure:"broker"`
	ClientID    string `mapstructure:"client_id"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	TopicPrefix string `mapstructure:"topic_prefix"`
}

// subscription is kept so it can be restored after a reconnection.
type subscription struct {
	topic    string
	qos      byte
	callback MessageHandler
}

// NewSimpleClient connects to the broker and keeps reconnecting in the
// background once the first connection succeeded.
func NewSimpleClient(config ClientConfig) (*SimpleClient, error) {
	simpleClient := &SimpleClient{
		subscriptions: make(map[string]subscription),
	}

	onConnectHandler := func(client paho.Client) {
		slog.Info("connected to MQTT broker", slog.String("broker", config.Broker))
		simpleClient.resubscribeAll(client)
	}

	onConnectionLostHandler := func(_ paho.Client, err error) {
		slog.Error("connection lost to MQTT broker", slog.Any("error", err))
	}

	pahoOpts := paho.NewClientOptions().
		AddBroker(config.Broker).
		SetClientID(config.ClientID).
		SetUsername(config.Username).
		SetPassword(config.Password).
		SetOnConnectHandler(onConnectHandler).
		SetAutoReconnect(true).
		SetConnectionLostHandler(onConnectionLostHandler).
		SetKeepAlive(10 * time.Second).
		SetConnectTimeout(_connectTimeout)

	client := paho.NewClient(pahoOpts)
	token := client.Connect()
	if !token.WaitTimeout(_connectTimeout) {
		return nil, fmt.Errorf("connecting to %s: %w", config.Broker, ErrNotConnected)
	}
	if token.Error() != nil {
		return nil, fmt.Errorf("connecting to %s: %w", config.Broker, token.Error())
	}

	simpleClient.client = client
	return simpleClient, nil
}

var _ Client = (*SimpleClient)(nil)

type SimpleClient struct {
	client        paho.Client
	subscriptions map[string]subscription
	mu            sync.RWMutex
}

func (c *SimpleClient) resubscribeAll(client paho.Client) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.subscriptions) == 0 {
		return
	}

	slog.Info("restoring MQTT subscriptions after reconnection", slog.Int("count", len(c.subscriptions)))

	for topic, sub := range c.subscriptions {
		token := client.Subscribe(sub.topic, sub.qos, c.wrap(sub.callback))
		token.WaitTimeout(_publishTimeout)
		if token.Error() != nil {
			slog.Error("failed to restore subscription after reconnection",
				slog.String("topic", topic), slog.Any("error", token.Error()))
		}
	}
}

func (c *SimpleClient) wrap(callback MessageHandler) paho.MessageHandler {
	return func(_ paho.Client, msg paho.Message) {
		callback(c, msg)
	}
}

func (c *SimpleClient) Subscribe(topic string, qos byte, callback MessageHandler) error {
	c.mu.Lock()
	c.subscriptions[topic] = subscription{
		topic:    topic,
		qos:      qos,
		callback: callback,
	}
	c.mu.Unlock()

	token := c.client.Subscribe(topic, qos, c.wrap(callback))
	token.WaitTimeout(_publishTimeout)
	if token.Error() != nil {
		c.mu.Lock()
		delete(c.subscriptions, topic)
		c.mu.Unlock()
		return fmt.Errorf("subscribing to topic %s: %w", topic, token.Error())
	}

	slog.Info("subscribed to MQTT topic", slog.String("topic", topic), slog.Int("qos", int(qos)))
	return nil
}

type MessageHandler func(Client, Message)

type Message interface {
	Topic() string
	MessageID() uint16
	Payload() []byte
	Ack()
}

func (c *SimpleClient) Disconnect() {
	c.mu.Lock()
	c.subscriptions = make(map[string]subscription)
	c.mu.Unlock()

	c.client.Disconnect(uint(_publishTimeout.Milliseconds()))
}

func (c *SimpleClient) Publish(topic string, payload []byte) error {
	if !c.client.IsConnectionOpen() {
		return fmt.Errorf("publishing to topic %s: %w", topic, ErrNotConnected)
	}
	token := c.client.Publish(topic, _defaultQoS, _defaultRetained, payload)
	if !token.WaitTimeout(_publishTimeout) {
		return fmt.Errorf("publishing to topic %s: timed out", topic)
	}
	if token.Error() != nil {
		return fmt.Errorf("publishing to topic %s: %w", topic, token.Error())
	}

	return nil
}
