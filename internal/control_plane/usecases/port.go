package usecases

import (
	"context"

	"ground-control/internal/data_plane/dto"
	"ground-control/internal/infra/serial"
)

//go:generate mockgen -source=port.go -destination=../../../test/unit/doubles/control_plane/usecases/port_mock.go -package=usecases -mock_names=SerialSession=MockSerialSession,TelemetryExporter=MockTelemetryExporter,TelemetryBridge=MockTelemetryBridge

type LinkOpener func(serial.LinkOpts) (serial.Link, error)

type PortLister func() ([]string, error)

// SerialSession is a running serial worker bound to one open link.
type SerialSession interface {
	Run(ctx context.Context, done func())
	Shutdown()
	Events() <-chan dto.SerialEvent
	SendToggle(ctx context.Context, pins string) error
	SetPins(pins string) error
	Pins() string
	PinWidth() int
	Running() bool
	Degraded() bool
}

type SessionFactory func(serial.Link) (SerialSession, error)

// TelemetryExporter ships mission events to the telemetry stream.
type TelemetryExporter interface {
	Export(ctx context.Context, envelope dto.Envelope) error
}

// TelemetryBridge mirrors mission events to the MQTT broker.
type TelemetryBridge interface {
	Publish(ctx context.Context, envelope dto.Envelope) error
}
