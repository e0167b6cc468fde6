package httpapi

import (
	"net/http"

	"ground-control/internal/control_plane/httpapi/internal"
	"ground-control/internal/control_plane/usecases"
	"ground-control/internal/data_plane/dto"
	"ground-control/internal/infra/httpserver"
)

func NewEventController(service usecases.JournalService) *EventController {
	return &EventController{
		service: service,
	}
}

var _ httpserver.Controller = &EventController{}

type EventController struct {
	service usecases.JournalService
}

func (c *EventController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/events", c.listEvents())
	router.Handle("GET /v1/events/{id}", c.getEvent())
}

func (c *EventController) listEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := internal.ParseEventFilter(r)
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		params := httpserver.ExtractPaginationParams(r)
		events, total, err := c.service.Find(r.Context(), filter, usecases.Pagination{
			Limit:  params.Limit,
			Offset: params.Offset(),
		})
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to list events")
			return
		}
		if events == nil {
			events = []dto.Envelope{}
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, events, total, params)
	}
}

func (c *EventController) getEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := c.service.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			replyWithMissionError(w, err)
			return
		}
		httpserver.ReplyJSONResponse(w, http.StatusOK, event)
	}
}
