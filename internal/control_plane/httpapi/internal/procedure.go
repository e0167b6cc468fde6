package internal

import (
	"ground-control/internal/control_plane/domain"
	"ground-control/internal/control_plane/usecases"
)

type TaskResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
	Complete    bool   `json:"complete"`
}

type StageResponse struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Complete bool           `json:"complete"`
	Tasks    []TaskResponse `json:"tasks"`
}

type ProcedureResponse struct {
	Current string          `json:"current"`
	Gate    string          `json:"gate"`
	Aborted bool            `json:"aborted"`
	Ignited bool            `json:"ignited"`
	Stages  []StageResponse `json:"stages"`
}

func ToProcedureResponse(snapshot domain.ProcedureSnapshot) ProcedureResponse {
	stages := make([]StageResponse, 0, len(snapshot.Stages))
	for _, stage := range snapshot.Stages {
		complete := true
		tasks := make([]TaskResponse, 0, len(stage.Tasks))
		for _, task := range stage.Tasks {
			complete = complete && task.Complete
			tasks = append(tasks, toTaskResponse(task))
		}
		stages = append(stages, StageResponse{
			ID:       string(stage.ID),
			Title:    string(stage.Title),
			Complete: complete,
			Tasks:    tasks,
		})
	}

	return ProcedureResponse{
		Current: string(snapshot.Current),
		Gate:    string(snapshot.Gate),
		Aborted: snapshot.Aborted,
		Ignited: snapshot.Ignited,
		Stages:  stages,
	}
}

func toTaskResponse(task domain.Task) TaskResponse {
	return TaskResponse{
		ID:          string(task.ID),
		Description: string(task.Description),
		Prompt:      string(task.Prompt),
		Complete:    task.Complete,
	}
}

type TransitionResponse struct {
	Kind     string `json:"kind"`
	From     string `json:"from"`
	To       string `json:"to"`
	Ignition bool   `json:"ignition"`
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

func ToTransitionResponse(t domain.Transition) TransitionResponse {
	response := TransitionResponse{
		Kind:     string(t.Kind),
		From:     string(t.From),
		To:       string(t.To),
		Ignition: t.Ignition,
		Accepted: t.OK(),
	}
	if t.Err != nil {
		response.Reason = t.Err.Error()
	}
	return response
}

type PendingTaskResponse struct {
	Stage   string        `json:"stage"`
	Task    *TaskResponse `json:"task,omitempty"`
	Message string        `json:"message"`
}

func ToPendingTaskResponse(pending usecases.PendingTask) PendingTaskResponse {
	response := PendingTaskResponse{
		Stage:   string(pending.Stage),
		Message: pending.Message,
	}
	if pending.Task != nil {
		task := toTaskResponse(*pending.Task)
		response.Task = &task
	}
	return response
}
