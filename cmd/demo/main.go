package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ground-control/internal/infra/mqtt"
	"ground-control/internal/infra/node"

	"github.com/spf13/pflag"
)

// demo listens to the telemetry bridge and prints every mission event.
func main() {
	broker := pflag.String("broker", "tcp://localhost:1883", "mqtt broker url")
	prefix := pflag.String("prefix", mqtt.DefaultTopicPrefix, "bridge topic prefix")
	username := pflag.String("username", "", "mqtt username")
	password := pflag.String("password", "", "mqtt password")
	pflag.Parse()

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{AddSource: true, Level: slog.LevelDebug})),
	)
	slog.Info("application starting")

	signalChannel := make(chan os.Signal, 2)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)

	mqttClient, err := mqtt.NewSimpleClient(mqtt.ClientConfig{
		Broker:   *broker,
		ClientID: node.GetNodeInfo().ClientID("ground-control-demo"),
		Username: *username,
		Password: *password, //pragma: allowlist secret
	})
	if err != nil {
		slog.Error("connecting", slog.Any("error", err))
		os.Exit(1)
	}

	bridge := mqtt.NewTelemetryBridge(mqttClient, *prefix)
	messageHandler := func(_ mqtt.Client, msg mqtt.Message) {
		envelope, err := mqtt.DecodeEnvelope(msg)
		if err != nil {
			slog.Warn("undecodable message", slog.String("topic", msg.Topic()), slog.Any("error", err))
			return
		}
		slog.Info("event received",
			slog.String("topic", msg.Topic()),
			slog.String("kind", string(envelope.Kind)),
			slog.String("station", envelope.Station),
			slog.Time("occurred_at", envelope.OccurredAt),
			slog.Any("valve", envelope.Valve),
			slog.Any("pressure", envelope.Pressure),
			slog.String("stage", envelope.Stage),
			slog.Int("remaining", envelope.Remaining),
		)
	}

	if err := mqttClient.Subscribe(bridge.Subscription(), 0, messageHandler); err != nil {
		slog.Error("subscribing", slog.String("topic", bridge.Subscription()), slog.Any("error", err))
		os.Exit(1)
	}
	slog.Debug("subscribed", slog.String("topic", bridge.Subscription()))

	<-signalChannel
	mqttClient.Disconnect()
	slog.Info("good bye!!!")
	os.Exit(0)
}
