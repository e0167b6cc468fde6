package internal

import (
	"fmt"
	"net/http"
	"time"

	"ground-control/internal/control_plane/usecases"
	"ground-control/internal/data_plane/dto"
)

func ParseEventFilter(r *http.Request) (usecases.EventFilter, error) {
	var filter usecases.EventFilter

	if kind := r.URL.Query().Get("kind"); kind != "" {
		if !dto.IsEnvelopeKind(kind) {
			return usecases.EventFilter{}, fmt.Errorf("unknown event kind %q", kind)
		}
		filter.Kind = dto.EnvelopeKind(kind)
	}

	if since := r.URL.Query().Get("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return usecases.EventFilter{}, fmt.Errorf("since must be RFC3339: %w", err)
		}
		filter.Since = t
	}

	return filter, nil
}
