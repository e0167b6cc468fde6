package domain

import (
	"errors"
	"fmt"
	"slices"
)

const NoPendingTaskMessage = "No more tasks, advance stage to continue."

// ProcedureModel holds the stage sequence and the completion flag of every
// task. Stage and task membership is fixed once built; only the flags change.
// It is not safe for concurrent use.
type ProcedureModel struct {
	stages   []Stage
	position map[StageID]int
	complete map[TaskKey]bool
}

func NewProcedureModel(stages ...Stage) (*ProcedureModel, error) {
	if len(stages) == 0 {
		return nil, errors.New("at least one stage is required")
	}

	m := &ProcedureModel{
		stages:   make([]Stage, 0, len(stages)),
		position: make(map[StageID]int, len(stages)),
		complete: make(map[TaskKey]bool),
	}

	for _, s := range stages {
		if s.ID == "" || s.ID == StageAborted {
			return nil, fmt.Errorf("invalid stage id %q", s.ID)
		}
		if _, exists := m.position[s.ID]; exists {
			return nil, fmt.Errorf("duplicated stage %s", s.ID)
		}
		tasks := make([]Task, 0, len(s.Tasks))
		for _, t := range s.Tasks {
			key := TaskKey{Stage: s.ID, Task: t.ID}
			if t.ID == "" {
				return nil, fmt.Errorf("stage %s: task id is required", s.ID)
			}
			if _, exists := m.complete[key]; exists {
				return nil, fmt.Errorf("duplicated task %s", key)
			}
			m.complete[key] = t.Complete
			t.Complete = false
			tasks = append(tasks, t)
		}
		m.position[s.ID] = len(m.stages)
		m.stages = append(m.stages, Stage{ID: s.ID, Title: s.Title, Tasks: tasks})
	}

	return m, nil
}

func NewDefaultProcedureModel() (*ProcedureModel, error) {
	return NewProcedureModel(DefaultStages()...)
}

func (m *ProcedureModel) Len() int {
	return len(m.stages)
}

func (m *ProcedureModel) StageIDs() []StageID {
	ids := make([]StageID, len(m.stages))
	for i, s := range m.stages {
		ids[i] = s.ID
	}
	return ids
}

// Stage returns a copy of the stage with its current completion flags.
func (m *ProcedureModel) Stage(id StageID) (Stage, bool) {
	i, ok := m.position[id]
	if !ok {
		return Stage{}, false
	}
	return m.stageAt(i), true
}

func (m *ProcedureModel) Stages() []Stage {
	result := make([]Stage, len(m.stages))
	for i := range m.stages {
		result[i] = m.stageAt(i)
	}
	return result
}

func (m *ProcedureModel) stageAt(i int) Stage {
	s := m.stages[i]
	tasks := slices.Clone(s.Tasks)
	for j := range tasks {
		tasks[j].Complete = m.complete[TaskKey{Stage: s.ID, Task: tasks[j].ID}]
	}
	return Stage{ID: s.ID, Title: s.Title, Tasks: tasks}
}

func (m *ProcedureModel) HasTask(key TaskKey) bool {
	_, ok := m.complete[key]
	return ok
}

func (m *ProcedureModel) IsTaskComplete(key TaskKey) bool {
	return m.complete[key]
}

func (m *ProcedureModel) MarkTaskComplete(stage StageID, task TaskID) error {
	return m.setTask(TaskKey{Stage: stage, Task: task}, true)
}

func (m *ProcedureModel) MarkTaskIncomplete(stage StageID, task TaskID) error {
	return m.setTask(TaskKey{Stage: stage, Task: task}, false)
}

func (m *ProcedureModel) setTask(key TaskKey, value bool) error {
	if _, ok := m.position[key.Stage]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStage, key.Stage)
	}
	if !m.HasTask(key) {
		return fmt.Errorf("%w: %s", ErrUnknownTask, key)
	}
	m.complete[key] = value
	return nil
}

// StageComplete reports whether every task of the stage is confirmed. A stage
// without tasks is always complete.
func (m *ProcedureModel) StageComplete(id StageID) bool {
	i, ok := m.position[id]
	if !ok {
		return false
	}
	for _, t := range m.stages[i].Tasks {
		if !m.complete[TaskKey{Stage: id, Task: t.ID}] {
			return false
		}
	}
	return true
}

// NextPendingTask returns the first unconfirmed task of the stage in
// declaration order.
func (m *ProcedureModel) NextPendingTask(id StageID) (Task, bool) {
	i, ok := m.position[id]
	if !ok {
		return Task{}, false
	}
	for _, t := range m.stages[i].Tasks {
		if !m.complete[TaskKey{Stage: id, Task: t.ID}] {
			return t, true
		}
	}
	return Task{}, false
}
