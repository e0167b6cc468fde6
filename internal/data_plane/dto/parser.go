package dto

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrParse = errors.New("malformed line")

	errUnsigned = errors.New("unsigned decimal expected")
)

type ParseError struct {
	Raw    string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing %q: %s: %v", e.Raw, e.Reason, e.Err)
	}
	return fmt.Sprintf("parsing %q: %s", e.Raw, e.Reason)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

type ParserConfig struct {
	ValveMarker      string     `mapstructure:"valve_marker"`
	ValveSeparator   string     `mapstructure:"valve_separator"`
	ReadingSeparator string     `mapstructure:"reading_separator"`
	Bands            BandConfig `mapstructure:"bands"`
}

func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		ValveMarker:      "Toggle PIN",
		ValveSeparator:   " ",
		ReadingSeparator: ", ",
		Bands:            DefaultBandConfig(),
	}
}

type Parser struct {
	config ParserConfig
}

func NewParser(config ParserConfig) (*Parser, error) {
	if config.ValveMarker == "" {
		return nil, errors.New("valve marker is required")
	}
	if config.ValveSeparator == "" || config.ReadingSeparator == "" {
		return nil, errors.New("separators are required")
	}
	if err := config.Bands.Validate(); err != nil {
		return nil, err
	}
	return &Parser{config: config}, nil
}

func (p *Parser) Bands() BandConfig {
	return p.config.Bands
}

// Parse turns one line, without its terminator, into events. Valve lines
// take precedence over reading lines. Lines matching neither rule yield a
// single Unrecognized event; malformed numbers yield a *ParseError.
func (p *Parser) Parse(line string) ([]ParsedEvent, error) {
	if i := strings.Index(line, p.config.ValveMarker); i >= 0 {
		status, err := p.parseValve(line, line[i+len(p.config.ValveMarker):])
		if err != nil {
			return nil, err
		}
		return []ParsedEvent{status}, nil
	}

	if strings.Contains(line, p.config.ReadingSeparator) {
		return p.parseReadings(line)
	}

	return []ParsedEvent{Unrecognized{Raw: line}}, nil
}

func (p *Parser) parseValve(line, payload string) (ValveStatus, error) {
	pinText, statusText, found := strings.Cut(payload, p.config.ValveSeparator)
	if !found {
		return ValveStatus{}, &ParseError{Raw: line, Reason: "missing valve status"}
	}
	pin, err := parseUnsigned(pinText)
	if err != nil {
		return ValveStatus{}, &ParseError{Raw: line, Reason: "invalid pin", Err: err}
	}
	status, err := parseUnsigned(statusText)
	if err != nil {
		return ValveStatus{}, &ParseError{Raw: line, Reason: "invalid valve status", Err: err}
	}
	return ValveStatus{Pin: pin, Open: status != 0}, nil
}

func (p *Parser) parseReadings(line string) ([]ParsedEvent, error) {
	parts := strings.Split(line, p.config.ReadingSeparator)
	events := make([]ParsedEvent, 0, len(parts))
	for i, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, &ParseError{Raw: line, Reason: fmt.Sprintf("invalid reading %d", i+1), Err: err}
		}
		events = append(events, PressureReading{
			Sensor: i + 1,
			Value:  value,
			Band:   p.config.Bands.Classify(value),
		})
	}
	return events, nil
}

// parseUnsigned accepts decimal digits only, so pins and statuses never carry
// a sign.
func parseUnsigned(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" || text[0] < '0' || text[0] > '9' {
		return 0, fmt.Errorf("%w: %q", errUnsigned, text)
	}
	return strconv.Atoi(text)
}
