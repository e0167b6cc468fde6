package httpserver

import (
	"context"
	"net/http"
)

// Controller mounts its routes on the shared mux. Patterns use the method
// prefixed form, e.g. "POST /v1/procedure/advance".
type Controller interface {
	AddRoutes(*http.ServeMux)
}

type Server interface {
	Run() error
	Shutdown(ctx context.Context) error
}

// HealthCheck reports a dependency failure. A failing check turns /healthz
// into a 503.
type HealthCheck func(ctx context.Context) error
