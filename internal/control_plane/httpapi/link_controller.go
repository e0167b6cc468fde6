package httpapi

import (
	"net/http"

	"ground-control/internal/control_plane/httpapi/internal"
	"ground-control/internal/control_plane/usecases"
	"ground-control/internal/infra/httpserver"
)

const (
	_defaultBaudRate = 9600
)

func NewLinkController(service usecases.MissionService) *LinkController {
	return &LinkController{
		service: service,
	}
}

var _ httpserver.Controller = &LinkController{}

type LinkController struct {
	service usecases.MissionService
}

func (c *LinkController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/link", c.getStatus())
	router.Handle("GET /v1/link/ports", c.listPorts())
	router.Handle("POST /v1/link", c.setupLink())
	router.Handle("DELETE /v1/link", c.stopWorker())
	router.Handle("POST /v1/link/worker", c.startWorker())
	router.Handle("POST /v1/link/toggle", c.sendToggle())
	router.Handle("PUT /v1/link/pins", c.setPins())
}

func (c *LinkController) getStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToLinkStatusResponse(c.service.LinkStatus()))
	}
}

func (c *LinkController) listPorts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ports, err := c.service.ListPorts()
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to list serial ports")
			return
		}
		if ports == nil {
			ports = []string{}
		}
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.PortListResponse{Data: ports})
	}
}

func (c *LinkController) setupLink() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.LinkSetupRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "invalid link setup request")
			return
		}
		if body.Port == "" {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "port is required")
			return
		}
		if body.BaudRate < 0 {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "baud_rate must be positive")
			return
		}
		if body.BaudRate == 0 {
			body.BaudRate = _defaultBaudRate
		}

		if err := c.service.SetupLink(r.Context(), body.Port, body.BaudRate); err != nil {
			replyWithMissionError(w, err)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.ToLinkStatusResponse(c.service.LinkStatus()))
	}
}

func (c *LinkController) startWorker() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := c.service.StartWorker(r.Context()); err != nil {
			replyWithMissionError(w, err)
			return
		}
		httpserver.ReplyJSONResponse(w, http.StatusAccepted, internal.ToLinkStatusResponse(c.service.LinkStatus()))
	}
}

func (c *LinkController) stopWorker() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := c.service.StopWorker(r.Context()); err != nil {
			replyWithMissionError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// An empty body sends the configured default pins.
func (c *LinkController) sendToggle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.ToggleRequest
		if r.ContentLength != 0 {
			if err := httpserver.DecodeJSONBody(r, &body); err != nil {
				httpserver.ReplyWithError(w, http.StatusBadRequest, "invalid toggle request")
				return
			}
		}

		if err := c.service.SendToggle(r.Context(), body.Pins); err != nil {
			replyWithMissionError(w, err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

func (c *LinkController) setPins() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.PinsRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "invalid pins request")
			return
		}

		if err := c.service.SetPins(r.Context(), body.Pins); err != nil {
			replyWithMissionError(w, err)
			return
		}
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToLinkStatusResponse(c.service.LinkStatus()))
	}
}
