package dto

// SerialEvent is what the serial worker reports to its owner: RawLine,
// ValveStatus, PressureReading, ParseFailure, IoFailure or Cleanup.
type SerialEvent interface {
	serialEvent()
}

type RawLine struct {
	Line string
}

type ParseFailure struct {
	Raw string
	Err error
}

type IoFailure struct {
	Op  string
	Err error
}

type Cleanup struct{}

func (RawLine) serialEvent()         {}
func (ValveStatus) serialEvent()     {}
func (PressureReading) serialEvent() {}
func (ParseFailure) serialEvent()    {}
func (IoFailure) serialEvent()       {}
func (Cleanup) serialEvent()         {}
