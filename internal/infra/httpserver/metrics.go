package httpserver

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const _meterName = "ground-control"

var (
	// Task names and event ids are collapsed so each route stays a single
	// series.
	taskPathRegex = regexp.MustCompile(`^(/v1/procedure/tasks/)[^/]+(/.*)?$`)
	uuidRegex     = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
)

type httpMetrics struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	active   metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	duration, err := meter.Float64Histogram(
		"ground_control.http.request.duration.seconds",
		metric.WithDescription("Duration of operator API requests"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		return nil, err
	}

	total, err := meter.Int64Counter(
		"ground_control.http.requests.total",
		metric.WithDescription("Operator API requests served"),
	)
	if err != nil {
		return nil, err
	}

	active, err := meter.Int64UpDownCounter(
		"ground_control.http.requests.active",
		metric.WithDescription("Operator API requests in flight, websocket streams included"),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{duration: duration, total: total, active: active}, nil
}

// MetricsMiddleware records request count, latency and in-flight requests
// on the global meter provider installed at the time it is called.
func MetricsMiddleware() func(http.Handler) http.Handler {
	m, err := newHTTPMetrics(otel.GetMeterProvider().Meter(_meterName))
	if err != nil {
		panic(err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			route := metric.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.endpoint", normalizeEndpoint(r.URL.Path)),
			)

			m.active.Add(r.Context(), 1, route)
			defer m.active.Add(r.Context(), -1, route)

			wrappedWriter := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrappedWriter, r)

			status := metric.WithAttributes(attribute.Int("http.status_code", wrappedWriter.statusCode))
			m.duration.Record(r.Context(), time.Since(start).Seconds(), route, status)
			m.total.Add(r.Context(), 1, route, status)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	return rw.ResponseWriter.Write(b)
}

// Hijack lets the event stream upgrade to a websocket through the
// middleware.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not support hijacking")
}

func normalizeEndpoint(path string) string {
	if path == "" || path == "/" {
		return "root"
	}
	path = taskPathRegex.ReplaceAllString(path, "${1}{task}${2}")
	return uuidRegex.ReplaceAllString(path, "{id}")
}
