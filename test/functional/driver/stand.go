package driver

import (
	"sync"

	"ground-control/internal/infra/serial"
)

var _ serial.Link = (*FakeStand)(nil)

// FakeStand plays the test stand microcontroller: it hands out scripted
// lines and records every command written to it.
type FakeStand struct {
	mu      sync.Mutex
	pending []string
	written []string
	closed  bool
}

func NewFakeStand() *FakeStand {
	return &FakeStand{}
}

func (s *FakeStand) Report(lines ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, lines...)
}

func (s *FakeStand) ReadLine() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", serial.ErrClosed
	}
	if len(s.pending) == 0 {
		return "", nil
	}
	line := s.pending[0]
	s.pending = s.pending[1:]
	return line, nil
}

func (s *FakeStand) Write(data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.written = append(s.written, string(data))
	return true
}

func (s *FakeStand) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *FakeStand) Written() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.written...)
}
