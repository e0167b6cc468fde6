package steps

import (
	"fmt"
	"strconv"
	"time"
)

type telemetryView struct {
	Valves    map[string]bool `json:"valves"`
	Pressures map[string]struct {
		Sensor int    `json:"sensor"`
		Value  int    `json:"value"`
		Band   string `json:"band"`
	} `json:"pressures"`
}

func (fc *FeatureContext) theTelemetryShouldEventuallyShowSensorInBand(sensor int, band string) error {
	return eventually(func() error {
		view, err := decode[telemetryView](fc.station.API.GetTelemetry())
		if err != nil {
			return err
		}
		reading, ok := view.Pressures[strconv.Itoa(sensor)]
		if !ok {
			return fmt.Errorf("no reading for sensor %d", sensor)
		}
		if reading.Band != band {
			return fmt.Errorf("sensor %d is %s, expected %s", sensor, reading.Band, band)
		}
		return nil
	})
}

func (fc *FeatureContext) theTelemetryShouldEventuallyShowValve(pin int, state string) error {
	expected := state == "open"
	return eventually(func() error {
		view, err := decode[telemetryView](fc.station.API.GetTelemetry())
		if err != nil {
			return err
		}
		open, ok := view.Valves[strconv.Itoa(pin)]
		if !ok {
			return fmt.Errorf("no status for valve %d", pin)
		}
		if open != expected {
			return fmt.Errorf("valve %d open=%t, expected %s", pin, open, state)
		}
		return nil
	})
}

func (fc *FeatureContext) countEvents(kind string) (int, error) {
	page, err := decode[PaginatedResponse[map[string]any]](fc.station.API.ListEvents(kind))
	if err != nil {
		return 0, err
	}
	return page.Pagination.Total, nil
}

func (fc *FeatureContext) theJournalShouldEventuallyContainAnEvent(kind string) error {
	return eventually(func() error {
		count, err := fc.countEvents(kind)
		if err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("no %s event journaled", kind)
		}
		return nil
	})
}

func (fc *FeatureContext) theJournalShouldEventuallyContainEvents(expected int, kind string) error {
	return eventually(func() error {
		count, err := fc.countEvents(kind)
		if err != nil {
			return err
		}
		if count != expected {
			return fmt.Errorf("%d %s events journaled, expected %d", count, kind, expected)
		}
		return nil
	})
}

func (fc *FeatureContext) afterTheCountdownTheJournalShouldNotContainAnEvent(kind string) error {
	time.Sleep(time.Duration(fc.countdownFrom+3) * fc.countdownInterval)
	count, err := fc.countEvents(kind)
	if err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("%d %s events journaled, expected none", count, kind)
	}
	return nil
}
