package serial

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	bugserial "go.bug.st/serial"
)

var (
	ErrConnection = errors.New("serial connection failed")
	ErrIO         = errors.New("serial i/o failed")
	ErrDecode     = errors.New("non ascii data on serial link")
	ErrClosed     = errors.New("serial link closed")

	// ErrLineTooLong reports a line dropped for exceeding MaxLineLength. The
	// link stays usable.
	ErrLineTooLong = errors.New("serial line too long")
)

const (
	DefaultBaudRate    = 115200
	DefaultReadTimeout = 50 * time.Millisecond
	MaxLineLength      = 1024
)

//go:generate mockgen -source=link.go -destination=../../../test/unit/doubles/infra/serial/link_mock.go -package=serial -mock_names=Link=MockLink

// Link is a newline framed, half duplex serial connection.
type Link interface {
	ReadLine() (string, error)
	Write(data []byte) bool
	Close() error
}

type LinkOpts struct {
	Port        string
	BaudRate    int
	ReadTimeout time.Duration
}

var _ Link = (*SerialLink)(nil)

// SerialLink owns the handle of one serial device. ReadLine is not safe for
// concurrent use; callers serialize access to the link.
type SerialLink struct {
	opts       LinkOpts
	port       Port
	pending    []byte
	discarding bool
	closed     atomic.Bool
}

func Open(opts LinkOpts) (*SerialLink, error) {
	if opts.Port == "" {
		return nil, fmt.Errorf("%w: port is required", ErrConnection)
	}
	if opts.BaudRate <= 0 {
		opts.BaudRate = DefaultBaudRate
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}

	port, err := openPort(opts.Port, &bugserial.Mode{
		BaudRate: opts.BaudRate,
		DataBits: 8,
		Parity:   bugserial.NoParity,
		StopBits: bugserial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrConnection, opts.Port, err)
	}

	if err := port.SetReadTimeout(opts.ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("%w: setting read timeout on %s: %w", ErrConnection, opts.Port, err)
	}

	slog.Info("serial link opened",
		slog.String("port", opts.Port),
		slog.Int("baud_rate", opts.BaudRate),
		slog.Duration("read_timeout", opts.ReadTimeout))

	return &SerialLink{
		opts:    opts,
		port:    port,
		pending: make([]byte, 0, 64),
	}, nil
}

func (l *SerialLink) Opts() LinkOpts {
	return l.opts
}

// ReadLine reads one byte at a time until a line feed arrives or a read
// times out with no data. A complete line is returned without its "\n" or
// "\r\n" terminator. On timeout the bytes gathered so far are kept for the
// next call and "" is returned. A line longer than MaxLineLength is dropped
// up to its "\n", which is then reported as ErrLineTooLong.
func (l *SerialLink) ReadLine() (string, error) {
	if l.closed.Load() {
		return "", ErrClosed
	}

	b := make([]byte, 1)
	for {
		n, err := l.port.Read(b)
		if err != nil {
			l.reset()
			return "", fmt.Errorf("%w: reading %s: %w", ErrIO, l.opts.Port, classify(err))
		}
		if n == 0 {
			return "", nil
		}

		c := b[0]
		if c > 0x7f {
			l.reset()
			return "", fmt.Errorf("%w: byte 0x%02x", ErrDecode, c)
		}
		if c == '\n' {
			if l.discarding {
				l.reset()
				return "", fmt.Errorf("%w: more than %d bytes on %s", ErrLineTooLong, MaxLineLength, l.opts.Port)
			}
			return l.flush(), nil
		}
		if l.discarding {
			continue
		}

		l.pending = append(l.pending, c)
		if len(l.pending) > MaxLineLength {
			slog.Warn("serial line exceeds maximum length, dropping it", slog.String("port", l.opts.Port))
			l.pending = l.pending[:0]
			l.discarding = true
		}
	}
}

func (l *SerialLink) reset() {
	l.pending = l.pending[:0]
	l.discarding = false
}

func (l *SerialLink) flush() string {
	line := l.pending
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	s := string(line)
	l.pending = l.pending[:0]
	return s
}

// Write sends data in full. Any failure, including a closed link, is
// reported as false.
func (l *SerialLink) Write(data []byte) bool {
	if l.closed.Load() {
		return false
	}
	for len(data) > 0 {
		n, err := l.port.Write(data)
		if err != nil {
			slog.Error("serial write failed",
				slog.String("port", l.opts.Port),
				slog.Any("error", classify(err)))
			return false
		}
		if n == 0 {
			slog.Error("serial write made no progress", slog.String("port", l.opts.Port))
			return false
		}
		data = data[n:]
	}
	return true
}

// Close releases the device. Calling it more than once is a no-op.
func (l *SerialLink) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := l.port.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", ErrConnection, l.opts.Port, err)
	}
	slog.Info("serial link closed", slog.String("port", l.opts.Port))
	return nil
}

func classify(err error) error {
	var portErr *bugserial.PortError
	if !errors.As(err, &portErr) {
		return err
	}
	switch portErr.Code() {
	case bugserial.PortClosed, bugserial.PortNotFound, bugserial.InvalidSerialPort:
		return fmt.Errorf("device disconnected: %w", err)
	default:
		return err
	}
}
