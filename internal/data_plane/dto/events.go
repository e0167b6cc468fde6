package dto

// ParsedEvent is the structured result of parsing one serial line. It is one
// of ValveStatus, PressureReading or Unrecognized.
type ParsedEvent interface {
	parsedEvent()
}

type ValveStatus struct {
	Pin  int  `json:"pin" msgpack:"p"`
	Open bool `json:"open" msgpack:"o"`
}

type PressureReading struct {
	Sensor int  `json:"sensor" msgpack:"s"`
	Value  int  `json:"value" msgpack:"v"`
	Band   Band `json:"band" msgpack:"b"`
}

type Unrecognized struct {
	Raw string `json:"raw" msgpack:"r"`
}

func (ValveStatus) parsedEvent()     {}
func (PressureReading) parsedEvent() {}
func (Unrecognized) parsedEvent()    {}
