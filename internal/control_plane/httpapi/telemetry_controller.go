package httpapi

import (
	"net/http"

	"ground-control/internal/control_plane/usecases"
	"ground-control/internal/infra/httpserver"
)

func NewTelemetryController(service usecases.TelemetryService) *TelemetryController {
	return &TelemetryController{
		service: service,
	}
}

var _ httpserver.Controller = &TelemetryController{}

type TelemetryController struct {
	service usecases.TelemetryService
}

func (c *TelemetryController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/telemetry", c.getSnapshot())
}

func (c *TelemetryController) getSnapshot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := c.service.Snapshot(r.Context())
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to load telemetry")
			return
		}
		httpserver.ReplyJSONResponse(w, http.StatusOK, snapshot)
	}
}
