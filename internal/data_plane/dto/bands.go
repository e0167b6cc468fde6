package dto

import (
	"fmt"
	"math"
)

type Band string

const (
	BandSafe   Band = "SAFE"
	BandMid    Band = "MID"
	BandUnsafe Band = "UNSAFE"
)

// Range is an inclusive integer interval.
type Range struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

type BandConfig struct {
	Safe   Range `mapstructure:"safe"`
	Mid    Range `mapstructure:"mid"`
	Unsafe Range `mapstructure:"unsafe"`
}

func DefaultBandConfig() BandConfig {
	return BandConfig{
		Safe:   Range{Min: 0, Max: 299},
		Mid:    Range{Min: 300, Max: 399},
		Unsafe: Range{Min: 400, Max: math.MaxInt},
	}
}

func (c BandConfig) Validate() error {
	for name, r := range map[Band]Range{BandSafe: c.Safe, BandMid: c.Mid, BandUnsafe: c.Unsafe} {
		if r.Min > r.Max {
			return fmt.Errorf("band %s: min %d greater than max %d", name, r.Min, r.Max)
		}
	}
	return nil
}

// Classify checks SAFE, MID and UNSAFE in that order. Values outside every
// configured range are UNSAFE.
func (c BandConfig) Classify(v int) Band {
	switch {
	case c.Safe.Contains(v):
		return BandSafe
	case c.Mid.Contains(v):
		return BandMid
	default:
		return BandUnsafe
	}
}
