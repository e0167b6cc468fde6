package domain

import "errors"

var (
	ErrTasksIncomplete = errors.New("stage has incomplete tasks")
	ErrFinalStage      = errors.New("already at the final stage")
	ErrFirstStage      = errors.New("already at the first stage")
	ErrAborted         = errors.New("procedure aborted")
	ErrIgnited         = errors.New("ignition already commanded")
	ErrUnknownTask     = errors.New("task not found in stage")
	ErrUnknownStage    = errors.New("stage not found")
)
