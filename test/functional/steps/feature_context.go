package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ground-control/test/functional/driver"

	"github.com/cucumber/godog"
)

const (
	_eventually   = 3 * time.Second
	_pollInterval = 20 * time.Millisecond
)

// PaginatedResponse mirrors the list envelope of the HTTP API.
type PaginatedResponse[T any] struct {
	Data       []T `json:"data"`
	Pagination struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	} `json:"pagination"`
}

type FeatureContext struct {
	station           *driver.Station
	response          *http.Response
	responseData      map[string]any
	countdownInterval time.Duration
	countdownFrom     int
}

func NewFeatureContext() *FeatureContext {
	return &FeatureContext{}
}

func (fc *FeatureContext) RegisterSteps(ctx *godog.ScenarioContext) {
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if fc.station != nil {
			fc.station.Stop()
			fc.station = nil
		}
		fc.response = nil
		fc.responseData = nil
		return ctx, nil
	})

	// Generic steps
	ctx.Step(`^wait for (.*)$`, fc.waitForDuration)
	ctx.Then(`^the response status code should be (\d+)$`, fc.theResponseStatusCodeShouldBe)

	// Station steps
	ctx.Given(`^a ground station is running$`, fc.aGroundStationIsRunning)
	ctx.Given(`^a ground station is running with a (\d+) step countdown$`, fc.aGroundStationIsRunningWithAStepCountdown)

	// Procedure steps
	ctx.When(`^I advance the stage$`, fc.iAdvanceTheStage)
	ctx.When(`^I regress the stage$`, fc.iRegressTheStage)
	ctx.When(`^I abort the procedure$`, fc.iAbortTheProcedure)
	ctx.When(`^I complete task "([^"]*)"$`, fc.iCompleteTask)
	ctx.Given(`^the procedure reached stage "([^"]*)"$`, fc.theProcedureReachedStage)
	ctx.Then(`^the current stage should be "([^"]*)"$`, fc.theCurrentStageShouldBe)
	ctx.Then(`^the next pending task should be "([^"]*)"$`, fc.theNextPendingTaskShouldBe)
	ctx.Then(`^task "([^"]*)" should be complete$`, fc.taskShouldBeComplete)
	ctx.Then(`^the transition should be rejected because "([^"]*)"$`, fc.theTransitionShouldBeRejectedBecause)
	ctx.Then(`^the transition should be an ignition$`, fc.theTransitionShouldBeAnIgnition)

	// Serial link steps
	ctx.When(`^I set up the link on "([^"]*)" at (\d+) baud$`, fc.iSetUpTheLinkOnAtBaud)
	ctx.When(`^I start the serial worker$`, fc.iStartTheSerialWorker)
	ctx.When(`^I stop the link$`, fc.iStopTheLink)
	ctx.Given(`^the stand is connected$`, fc.theStandIsConnected)
	ctx.When(`^I send the toggle "([^"]*)"$`, fc.iSendTheToggle)
	ctx.When(`^the stand reports "([^"]*)"$`, fc.theStandReports)
	ctx.Then(`^the link should be running$`, fc.theLinkShouldBeRunning)
	ctx.Then(`^the stand should receive "([^"]*)"$`, fc.theStandShouldReceive)

	// Telemetry and journal steps
	ctx.Then(`^the telemetry should eventually show sensor (\d+) in band "([^"]*)"$`, fc.theTelemetryShouldEventuallyShowSensorInBand)
	ctx.Then(`^the telemetry should eventually show valve (\d+) "(open|closed)"$`, fc.theTelemetryShouldEventuallyShowValve)
	ctx.Then(`^the journal should eventually contain a "([^"]*)" event$`, fc.theJournalShouldEventuallyContainAnEvent)
	ctx.Then(`^the journal should eventually contain (\d+) "([^"]*)" events$`, fc.theJournalShouldEventuallyContainEvents)
	ctx.Then(`^after the countdown the journal should not contain a "([^"]*)" event$`, fc.afterTheCountdownTheJournalShouldNotContainAnEvent)
}

func (fc *FeatureContext) waitForDuration(value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	time.Sleep(d)
	return nil
}

func (fc *FeatureContext) theResponseStatusCodeShouldBe(code int) error {
	if fc.response == nil {
		return fmt.Errorf("no response recorded")
	}
	if fc.response.StatusCode != code {
		return fmt.Errorf("expected status code %d, got %d: %v", code, fc.response.StatusCode, fc.responseData)
	}
	return nil
}

// record keeps the response and decodes its JSON object body, if any.
func (fc *FeatureContext) record(res *http.Response, err error) error {
	if err != nil {
		return err
	}
	defer res.Body.Close()
	fc.response = res
	fc.responseData = nil

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	var data map[string]any
	if err := json.Unmarshal(body, &data); err == nil {
		fc.responseData = data
	}
	return nil
}

func decode[T any](res *http.Response, err error) (T, error) {
	var result T
	if err != nil {
		return result, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return result, fmt.Errorf("unexpected status code %d", res.StatusCode)
	}
	return result, json.NewDecoder(res.Body).Decode(&result)
}

// eventually retries check until it passes or the deadline is reached.
func eventually(check func() error) error {
	deadline := time.Now().Add(_eventually)
	for {
		err := check()
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(_pollInterval)
	}
}
