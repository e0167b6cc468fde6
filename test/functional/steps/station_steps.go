package steps

import (
	"time"

	"ground-control/test/functional/driver"
)

func (fc *FeatureContext) startStation(from int, interval time.Duration) error {
	station, err := driver.StartStation(driver.StationOpts{
		CountdownFrom:     from,
		CountdownInterval: interval,
	})
	if err != nil {
		return err
	}
	fc.station = station
	fc.countdownFrom = from
	fc.countdownInterval = interval
	return nil
}

func (fc *FeatureContext) aGroundStationIsRunning() error {
	return fc.startStation(10, time.Second)
}

func (fc *FeatureContext) aGroundStationIsRunningWithAStepCountdown(steps int) error {
	return fc.startStation(steps, 30*time.Millisecond)
}
