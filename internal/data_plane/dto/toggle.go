package dto

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidToggle = errors.New("invalid toggle pins")

const DefaultPinWidth = 8

// FormatToggle returns the fixed width pin-state payload, right padded with
// '0'. The line terminator is not included.
func FormatToggle(pins string, width int) (string, error) {
	if width <= 0 {
		return "", fmt.Errorf("%w: width must be positive", ErrInvalidToggle)
	}
	if len(pins) > width {
		return "", fmt.Errorf("%w: %d pins exceed width %d", ErrInvalidToggle, len(pins), width)
	}
	for i := 0; i < len(pins); i++ {
		if pins[i] < '0' || pins[i] > '9' {
			return "", fmt.Errorf("%w: unexpected %q at slot %d", ErrInvalidToggle, pins[i], i)
		}
	}
	return pins + strings.Repeat("0", width-len(pins)), nil
}
