package steps

import (
	"fmt"
	"slices"
	"strings"
)

func (fc *FeatureContext) iSetUpTheLinkOnAtBaud(port string, baud int) error {
	return fc.record(fc.station.API.SetupLink(port, baud))
}

func (fc *FeatureContext) iStartTheSerialWorker() error {
	return fc.record(fc.station.API.StartWorker())
}

func (fc *FeatureContext) iStopTheLink() error {
	return fc.record(fc.station.API.StopLink())
}

func (fc *FeatureContext) theStandIsConnected() error {
	if err := fc.iSetUpTheLinkOnAtBaud("/dev/ttyFAKE0", 9600); err != nil {
		return err
	}
	if err := fc.theResponseStatusCodeShouldBe(201); err != nil {
		return err
	}
	if err := fc.iStartTheSerialWorker(); err != nil {
		return err
	}
	return fc.theResponseStatusCodeShouldBe(202)
}

func (fc *FeatureContext) iSendTheToggle(pins string) error {
	return fc.record(fc.station.API.Toggle(pins))
}

func (fc *FeatureContext) theStandReports(line string) error {
	fc.station.Stand.Report(line)
	return nil
}

func (fc *FeatureContext) theLinkShouldBeRunning() error {
	status, err := decode[map[string]any](fc.station.API.GetLink())
	if err != nil {
		return err
	}
	if running, _ := status["running"].(bool); !running {
		return fmt.Errorf("link is not running: %v", status)
	}
	return nil
}

func (fc *FeatureContext) theStandShouldReceive(payload string) error {
	expected := strings.ReplaceAll(payload, `\n`, "\n")
	return eventually(func() error {
		written := fc.station.Stand.Written()
		if !slices.Contains(written, expected) {
			return fmt.Errorf("stand received %q, expected %q", written, expected)
		}
		return nil
	})
}
