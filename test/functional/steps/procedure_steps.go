package steps

import (
	"fmt"
	"strings"
)

type taskView struct {
	ID       string `json:"id"`
	Complete bool   `json:"complete"`
}

type stageView struct {
	ID    string     `json:"id"`
	Tasks []taskView `json:"tasks"`
}

type procedureView struct {
	Current string      `json:"current"`
	Aborted bool        `json:"aborted"`
	Ignited bool        `json:"ignited"`
	Stages  []stageView `json:"stages"`
}

func (fc *FeatureContext) procedure() (procedureView, error) {
	return decode[procedureView](fc.station.API.GetProcedure())
}

func (fc *FeatureContext) iAdvanceTheStage() error {
	return fc.record(fc.station.API.Advance())
}

func (fc *FeatureContext) iRegressTheStage() error {
	return fc.record(fc.station.API.Regress())
}

func (fc *FeatureContext) iAbortTheProcedure() error {
	return fc.record(fc.station.API.Abort())
}

func (fc *FeatureContext) iCompleteTask(task string) error {
	return fc.record(fc.station.API.CompleteTask(task))
}

// theProcedureReachedStage confirms every task and advances until stage is
// current.
func (fc *FeatureContext) theProcedureReachedStage(stage string) error {
	for range 16 {
		view, err := fc.procedure()
		if err != nil {
			return err
		}
		if view.Current == stage {
			return nil
		}
		for _, s := range view.Stages {
			if s.ID != view.Current {
				continue
			}
			for _, t := range s.Tasks {
				if err := fc.record(fc.station.API.CompleteTask(t.ID)); err != nil {
					return err
				}
			}
		}
		if err := fc.record(fc.station.API.Advance()); err != nil {
			return err
		}
		if err := fc.theResponseStatusCodeShouldBe(200); err != nil {
			return fmt.Errorf("advancing from %s: %w", view.Current, err)
		}
	}
	return fmt.Errorf("stage %s never reached", stage)
}

func (fc *FeatureContext) theCurrentStageShouldBe(stage string) error {
	view, err := fc.procedure()
	if err != nil {
		return err
	}
	if view.Current != stage {
		return fmt.Errorf("expected current stage %s, got %s", stage, view.Current)
	}
	return nil
}

func (fc *FeatureContext) theNextPendingTaskShouldBe(task string) error {
	pending, err := decode[map[string]any](fc.station.API.GetNextTask())
	if err != nil {
		return err
	}
	next, ok := pending["task"].(map[string]any)
	if !ok {
		return fmt.Errorf("no pending task: %v", pending)
	}
	if next["id"] != task {
		return fmt.Errorf("expected next task %s, got %v", task, next["id"])
	}
	return nil
}

func (fc *FeatureContext) taskShouldBeComplete(task string) error {
	view, err := fc.procedure()
	if err != nil {
		return err
	}
	for _, s := range view.Stages {
		for _, t := range s.Tasks {
			if t.ID == task {
				if !t.Complete {
					return fmt.Errorf("task %s is not complete", task)
				}
				return nil
			}
		}
	}
	return fmt.Errorf("task %s not found", task)
}

func (fc *FeatureContext) theTransitionShouldBeRejectedBecause(reason string) error {
	if fc.responseData == nil {
		return fmt.Errorf("no transition in the response")
	}
	if accepted, _ := fc.responseData["accepted"].(bool); accepted {
		return fmt.Errorf("transition was accepted")
	}
	got, _ := fc.responseData["reason"].(string)
	if !strings.Contains(got, reason) {
		return fmt.Errorf("expected reason containing %q, got %q", reason, got)
	}
	return nil
}

func (fc *FeatureContext) theTransitionShouldBeAnIgnition() error {
	if fc.responseData == nil {
		return fmt.Errorf("no transition in the response")
	}
	if ignition, _ := fc.responseData["ignition"].(bool); !ignition {
		return fmt.Errorf("expected an ignition, got %v", fc.responseData)
	}
	return nil
}
