package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"ground-control/internal/control_plane/domain"
	"ground-control/internal/control_plane/usecases"
	"ground-control/internal/data_plane/dto"
	"ground-control/internal/data_plane/workers"
	"ground-control/internal/infra/httpserver"
	"ground-control/internal/infra/serial"
)

func replyWithMissionError(w http.ResponseWriter, err error) {
	httpserver.ReplyWithError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dto.ErrInvalidToggle):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownTask),
		errors.Is(err, domain.ErrUnknownStage),
		errors.Is(err, usecases.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecases.ErrLinkNotConfigured),
		errors.Is(err, usecases.ErrWorkerRunning),
		errors.Is(err, usecases.ErrWorkerNotRunning),
		errors.Is(err, domain.ErrTasksIncomplete),
		errors.Is(err, domain.ErrFinalStage),
		errors.Is(err, domain.ErrFirstStage),
		errors.Is(err, domain.ErrAborted),
		errors.Is(err, domain.ErrIgnited):
		return http.StatusConflict
	case errors.Is(err, serial.ErrConnection),
		errors.Is(err, serial.ErrIO),
		errors.Is(err, workers.ErrWrite):
		return http.StatusBadGateway
	default:
		slog.Error("unexpected mission error", slog.Any("error", err))
		return http.StatusInternalServerError
	}
}
