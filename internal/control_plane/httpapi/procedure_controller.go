package httpapi

import (
	"context"
	"net/http"

	"ground-control/internal/control_plane/domain"
	"ground-control/internal/control_plane/httpapi/internal"
	"ground-control/internal/control_plane/usecases"
	"ground-control/internal/infra/httpserver"
)

func NewProcedureController(service usecases.MissionService) *ProcedureController {
	return &ProcedureController{
		service: service,
	}
}

var _ httpserver.Controller = &ProcedureController{}

type ProcedureController struct {
	service usecases.MissionService
}

func (c *ProcedureController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/procedure", c.getProcedure())
	router.Handle("GET /v1/procedure/next-task", c.nextPendingTask())
	router.Handle("POST /v1/procedure/advance", c.transition(c.service.AdvanceStage))
	router.Handle("POST /v1/procedure/regress", c.transition(c.service.RegressStage))
	router.Handle("POST /v1/procedure/abort", c.transition(c.service.Abort))
	router.Handle("POST /v1/procedure/tasks/{task}/complete", c.markTask(true))
	router.Handle("DELETE /v1/procedure/tasks/{task}/complete", c.markTask(false))
}

func (c *ProcedureController) getProcedure() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToProcedureResponse(c.service.Procedure()))
	}
}

func (c *ProcedureController) nextPendingTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToPendingTaskResponse(c.service.NextPendingTask()))
	}
}

// Rejected transitions answer 409 with the same body as accepted ones so
// the console can show the reason.
func (c *ProcedureController) transition(request func(ctx context.Context) domain.Transition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := request(r.Context())
		status := http.StatusOK
		if !t.OK() {
			status = http.StatusConflict
		}
		httpserver.ReplyJSONResponse(w, status, internal.ToTransitionResponse(t))
	}
}

func (c *ProcedureController) markTask(complete bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		task := r.PathValue("task")
		if task == "" {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "task is required")
			return
		}

		if err := c.service.MarkTask(r.Context(), domain.TaskID(task), complete); err != nil {
			replyWithMissionError(w, err)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToProcedureResponse(c.service.Procedure()))
	}
}
