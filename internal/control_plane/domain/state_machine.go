package domain

type TransitionKind string

const (
	TransitionAdvance TransitionKind = "advance"
	TransitionRegress TransitionKind = "regress"
	TransitionAbort   TransitionKind = "abort"
)

// Transition is the outcome of a transition request. Rejected requests carry
// the reason in Err and leave the machine untouched.
type Transition struct {
	Kind     TransitionKind
	From     StageID
	To       StageID
	Ignition bool
	Err      error
}

func (t Transition) OK() bool {
	return t.Err == nil
}

// LaunchStateMachine moves a ProcedureModel through its stages. Advancing out
// of a stage requires every task of that stage to be confirmed; advancing out
// of the final stage commands ignition. Abort is permanent.
// It is not safe for concurrent use.
type LaunchStateMachine struct {
	model   *ProcedureModel
	current int
	gate    StageID
	aborted bool
	ignited bool
}

func NewLaunchStateMachine(model *ProcedureModel) *LaunchStateMachine {
	return &LaunchStateMachine{model: model}
}

func (m *LaunchStateMachine) Model() *ProcedureModel {
	return m.model
}

func (m *LaunchStateMachine) Current() StageID {
	if m.aborted {
		return StageAborted
	}
	return m.model.stages[m.current].ID
}

// Gate is the stage whose completion unlocked the current one, empty at the
// first stage.
func (m *LaunchStateMachine) Gate() StageID {
	return m.gate
}

func (m *LaunchStateMachine) Aborted() bool {
	return m.aborted
}

func (m *LaunchStateMachine) Ignited() bool {
	return m.ignited
}

func (m *LaunchStateMachine) AtFinalStage() bool {
	return m.current == m.model.Len()-1
}

func (m *LaunchStateMachine) Advance() Transition {
	from := m.Current()
	result := Transition{Kind: TransitionAdvance, From: from, To: from}

	switch {
	case m.aborted:
		result.Err = ErrAborted
		return result
	case m.AtFinalStage() && m.ignited:
		result.Err = ErrFinalStage
		return result
	case !m.model.StageComplete(from):
		result.Err = ErrTasksIncomplete
		return result
	}

	if m.AtFinalStage() {
		m.ignited = true
		result.Ignition = true
		return result
	}

	m.gate = from
	m.current++
	result.To = m.Current()
	return result
}

func (m *LaunchStateMachine) Regress() Transition {
	from := m.Current()
	result := Transition{Kind: TransitionRegress, From: from, To: from}

	switch {
	case m.aborted:
		result.Err = ErrAborted
		return result
	case m.ignited:
		result.Err = ErrIgnited
		return result
	case m.current == 0:
		result.Err = ErrFirstStage
		return result
	}

	m.current--
	m.gate = ""
	if m.current > 0 {
		m.gate = m.model.stages[m.current-1].ID
	}
	result.To = m.Current()
	return result
}

func (m *LaunchStateMachine) Abort() Transition {
	from := m.Current()
	result := Transition{Kind: TransitionAbort, From: from, To: StageAborted}
	if m.aborted {
		result.To = from
		result.Err = ErrAborted
		return result
	}
	m.aborted = true
	return result
}

func (m *LaunchStateMachine) MarkTaskComplete(task TaskID) error {
	return m.setTask(task, true)
}

func (m *LaunchStateMachine) MarkTaskIncomplete(task TaskID) error {
	return m.setTask(task, false)
}

func (m *LaunchStateMachine) setTask(task TaskID, value bool) error {
	if m.aborted {
		return ErrAborted
	}
	if m.ignited {
		return ErrIgnited
	}
	return m.model.setTask(TaskKey{Stage: m.Current(), Task: task}, value)
}

func (m *LaunchStateMachine) NextPendingTask() (Task, bool) {
	if m.aborted {
		return Task{}, false
	}
	return m.model.NextPendingTask(m.Current())
}

type ProcedureSnapshot struct {
	Current StageID
	Gate    StageID
	Aborted bool
	Ignited bool
	Stages  []Stage
}

func (m *LaunchStateMachine) Snapshot() ProcedureSnapshot {
	return ProcedureSnapshot{
		Current: m.Current(),
		Gate:    m.gate,
		Aborted: m.aborted,
		Ignited: m.ignited,
		Stages:  m.model.Stages(),
	}
}
