package domain

import (
	"errors"
	"fmt"
)

const (
	StageIdle             StageID = "IDLE"
	StageHighPressure     StageID = "HIGH_PRESSURE"
	StageTankHighPressure StageID = "TANK_HIGH_PRESSURE"
	StageFire             StageID = "FIRE"

	// StageAborted is terminal and never part of a procedure's sequence.
	StageAborted StageID = "ABORTED"
)

type Task struct {
	ID          TaskID
	Description Description
	Prompt      Prompt
	Complete    bool
}

type Stage struct {
	ID    StageID
	Title Title
	Tasks []Task
}

func NewStageBuilder() *stageBuilder {
	return &stageBuilder{}
}

type stageBuilder struct {
	actions []stageHandler
}

type stageHandler func(v *Stage) error

func (b *stageBuilder) WithID(value StageID) *stageBuilder {
	b.actions = append(b.actions, func(s *Stage) error {
		s.ID = value
		return nil
	})
	return b
}

func (b *stageBuilder) WithTitle(value Title) *stageBuilder {
	b.actions = append(b.actions, func(s *Stage) error {
		s.Title = value
		return nil
	})
	return b
}

func (b *stageBuilder) WithTask(id TaskID, description Description, prompt Prompt) *stageBuilder {
	b.actions = append(b.actions, func(s *Stage) error {
		if id == "" {
			return errors.New("task id is required")
		}
		for _, t := range s.Tasks {
			if t.ID == id {
				return fmt.Errorf("duplicated task %s", id)
			}
		}
		s.Tasks = append(s.Tasks, Task{ID: id, Description: description, Prompt: prompt})
		return nil
	})
	return b
}

func (b *stageBuilder) Build() (Stage, error) {
	result := Stage{
		Tasks: make([]Task, 0),
	}

	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return Stage{}, err
		}
	}

	if result.ID == "" {
		return Stage{}, errors.New("stage id is required")
	}

	if result.ID == StageAborted {
		return Stage{}, fmt.Errorf("%s is reserved", StageAborted)
	}

	if result.Title == "" {
		result.Title = Title(result.ID)
	}

	return result, nil
}

// DefaultStages is the test stand hot-fire checklist.
func DefaultStages() []Stage {
	return []Stage{
		{
			ID:    StageIdle,
			Title: "Leak Checks",
			Tasks: []Task{
				{ID: "COPV_O", Description: "Open COPV SV until PTs stabilize / Acceptable rate = 1 PSI / Min", Prompt: "Confirm COPV open/Acceptable leak rate?"},
			},
		},
		{
			ID:    StageHighPressure,
			Title: "Upper Pressurization",
			Tasks: []Task{
				{ID: "KBOTTLE", Description: "Open K-bottle on launch pad", Prompt: "Confirm K-bottle has been opened?"},
				{ID: "COPV_E", Description: "Open COPV SV to equalize pressure in COPV", Prompt: "Confirm COPV pressure equalization?"},
			},
		},
		{
			ID:    StageTankHighPressure,
			Title: "Fuel/Ox Pressurization",
			Tasks: []Task{
				{ID: "COPV_C", Description: "Close COPV SV", Prompt: "Confirm COPV SV is closed?"},
				{ID: "TANKS", Description: "Open tank SVs (3) and validate leak rate", Prompt: "Confirm top 3 SVs open/Acceptable leak rate?"},
			},
		},
		{
			ID:    StageFire,
			Title: "Initiate Launch",
			Tasks: []Task{
				{ID: "FIRE_I", Description: "Start fire sequence", Prompt: "Confirm begin fire sequence?"},
			},
		},
	}
}
