package serial

import (
	"fmt"
	"time"

	bugserial "go.bug.st/serial"
)

//go:generate mockgen -source=port.go -destination=../../../test/unit/doubles/infra/serial/port_mock.go -package=serial

// Port is the subset of a serial device handle used by SerialLink.
type Port interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	SetReadTimeout(t time.Duration) error
	Close() error
}

var (
	openPort     = func(name string, mode *bugserial.Mode) (Port, error) { return bugserial.Open(name, mode) }
	getPortsList = bugserial.GetPortsList
)

// ListPorts enumerates the serial devices present on the host.
func ListPorts() ([]string, error) {
	ports, err := getPortsList()
	if err != nil {
		return nil, fmt.Errorf("%w: listing ports: %w", ErrConnection, err)
	}
	return ports, nil
}
