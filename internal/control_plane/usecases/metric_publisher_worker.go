package usecases

import (
	"context"
	"log/slog"

	"ground-control/internal/data_plane/dto"
	"ground-control/internal/infra/async"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	_metricKeyLines       = "lines"
	_metricKeyParseErrors = "parse_errors"
	_metricKeyIoErrors    = "io_errors"
	_metricKeyToggles     = "toggles"
	_metricKeyTransitions = "transitions"
	_metricKeyPressure    = "pressure"
	_metricKeyValve       = "valve"
	_metricKeyCountdown   = "countdown"
)

func NewMetricPublisherWorker(broker async.InternalBroker) *MetricPublisherWorker {
	return &MetricPublisherWorker{
		envelopeConsumer: newEnvelopeConsumer("metric_publisher", broker),
		metricCounters:   make(map[string]metric.Float64Counter),
		metricGauges:     make(map[string]metric.Float64Gauge),
	}
}

var _ async.Worker = &MetricPublisherWorker{}

type MetricPublisherWorker struct {
	*envelopeConsumer
	metricCounters map[string]metric.Float64Counter
	metricGauges   map[string]metric.Float64Gauge
}

func (w *MetricPublisherWorker) Run(ctx context.Context, done func()) {
	defer done()
	w.setupMetrics()
	w.consume(ctx, w.handleEvent)
}

func (w *MetricPublisherWorker) setupMetrics() {
	meter := otel.Meter("ground_control")

	counters := map[string]string{
		_metricKeyLines:       "Total number of lines read from the serial link",
		_metricKeyParseErrors: "Total number of malformed serial lines",
		_metricKeyIoErrors:    "Total number of serial read and write failures",
		_metricKeyToggles:     "Total number of toggle commands sent",
		_metricKeyTransitions: "Total number of accepted stage transitions",
	}
	for key, description := range counters {
		counter, err := meter.Float64Counter("ground_control.serial."+key+".total", metric.WithDescription(description))
		if err != nil {
			slog.Error("creating counter", slog.String("metric", key), slog.Any("error", err))
			continue
		}
		w.metricCounters[key] = counter
	}

	gauges := map[string]string{
		_metricKeyPressure:  "Latest pressure reading per sensor",
		_metricKeyValve:     "Latest valve state per pin, 1 when open",
		_metricKeyCountdown: "Seconds remaining before launch",
	}
	for key, description := range gauges {
		gauge, err := meter.Float64Gauge("ground_control.telemetry."+key, metric.WithDescription(description))
		if err != nil {
			slog.Error("creating gauge", slog.String("metric", key), slog.Any("error", err))
			continue
		}
		w.metricGauges[key] = gauge
	}

	slog.Info("metric publisher worker metrics initialized")
}

func (w *MetricPublisherWorker) handleEvent(ctx context.Context, envelope dto.Envelope) {
	station := attribute.String("station", envelope.Station)

	switch envelope.Kind {
	case dto.KindRawLine:
		w.add(ctx, _metricKeyLines, station)
	case dto.KindParseError:
		w.add(ctx, _metricKeyParseErrors, station)
	case dto.KindIoError:
		w.add(ctx, _metricKeyIoErrors, station)
	case dto.KindToggle:
		w.add(ctx, _metricKeyToggles, station)
	case dto.KindStageTransition:
		w.add(ctx, _metricKeyTransitions, station, attribute.String("stage", envelope.Stage))
	case dto.KindPressureReading:
		if envelope.Pressure == nil {
			return
		}
		w.record(ctx, _metricKeyPressure, float64(envelope.Pressure.Value),
			station,
			attribute.Int("sensor", envelope.Pressure.Sensor),
			attribute.String("band", string(envelope.Pressure.Band)))
	case dto.KindValveStatus:
		if envelope.Valve == nil {
			return
		}
		value := 0.0
		if envelope.Valve.Open {
			value = 1
		}
		w.record(ctx, _metricKeyValve, value, station, attribute.Int("pin", envelope.Valve.Pin))
	case dto.KindCountdown:
		w.record(ctx, _metricKeyCountdown, float64(envelope.Remaining), station)
	case dto.KindLaunch:
		w.record(ctx, _metricKeyCountdown, 0, station)
	default:
		slog.Debug("unhandled event type", slog.String("event", string(envelope.Kind)))
	}
}

func (w *MetricPublisherWorker) add(ctx context.Context, key string, attributes ...attribute.KeyValue) {
	counter, ok := w.metricCounters[key]
	if !ok {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attributes...))
}

func (w *MetricPublisherWorker) record(ctx context.Context, key string, value float64, attributes ...attribute.KeyValue) {
	gauge, ok := w.metricGauges[key]
	if !ok {
		return
	}
	gauge.Record(ctx, value, metric.WithAttributes(attributes...))
}
