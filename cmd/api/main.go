package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"ground-control/cmd/api/wire"
	"ground-control/cmd/config"
	"ground-control/internal/infra/async"
	"ground-control/internal/infra/node"

	"github.com/spf13/pflag"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

var (
	logLevelMapping = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

const (
	_shutdownTimeout = 10 * time.Second
	_readyTimeout    = 5 * time.Second
)

func main() {
	configDir := pflag.String("config-dir", "", "directory holding ground-control.yaml")
	addr := pflag.String("addr", "", "http listen address, overrides http.addr")
	serialPort := pflag.String("serial-port", "", "serial device opened at startup, overrides serial.port")
	pflag.Parse()

	cfg := loadConfig(*configDir)
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}
	if *serialPort != "" {
		cfg.Serial.Port = *serialPort
		cfg.Serial.AutoStart = true
	}

	level := logLevelMapping[cfg.General.LogLevel]
	baseHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{AddSource: true, Level: level, ReplaceAttr: slogReplaceAttr})
	handler := baseHandler.WithAttrs(node.GetNodeInfo().LogAttrs())
	slog.SetDefault(slog.New(handler))
	slog.Info("🚀 ground control is initializing", slog.String("station", cfg.General.Station))
	slog.Debug("config loaded", "data", cfg)

	shutdownOtel := startOTel()

	app, cleanup, err := wire.InitializeApplication(cfg)
	if err != nil {
		slog.Error("initializing application", slog.Any("error", err))
		panic(err)
	}

	appCtx, cancelFn := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	for _, worker := range app.Workers {
		wg.Add(1)
		go worker.Run(appCtx, wg.Done)
	}

	readyCtx, cancelReady := context.WithTimeout(appCtx, _readyTimeout)
	if err := async.WaitReady(readyCtx, app.Workers...); err != nil {
		slog.Warn("workers not ready, early events may be missed", slog.Any("error", err))
	}
	cancelReady()

	go func() {
		if err := app.Server.Run(); err != nil {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	if cfg.Serial.AutoStart && cfg.Serial.Port != "" {
		autoStartLink(appCtx, app, cfg.Serial)
	}

	signalChannel := make(chan os.Signal, 2)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)
	<-signalChannel

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), _shutdownTimeout)
	defer cancelShutdown()

	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown", slog.Any("error", err))
	}
	app.EventStream.Shutdown()
	app.Mission.Close(shutdownCtx)

	cancelFn()
	wg.Wait()
	app.Broker.Stop()
	cleanup()

	if err := shutdownOtel(); err != nil {
		slog.Error("otel shutdown", slog.Any("error", err))
	}
	slog.Info("good bye!!!")
	os.Exit(0)
}

func loadConfig(dir string) config.AppConfig {
	if dir == "" {
		return config.LoadConfig()
	}
	cfg, err := config.LoadConfigFrom(dir)
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	return cfg
}

// autoStartLink failures are logged only; the operator can retry the setup
// from the API.
func autoStartLink(ctx context.Context, app *wire.Application, serial config.SerialConfig) {
	if err := app.Mission.SetupLink(ctx, serial.Port, serial.BaudRate); err != nil {
		slog.Error("serial link auto start", slog.String("port", serial.Port), slog.Any("error", err))
		return
	}
	if err := app.Mission.StartWorker(ctx); err != nil {
		slog.Error("serial worker auto start", slog.Any("error", err))
	}
}

func slogReplaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		source := a.Value.Any().(*slog.Source)
		source.File = filepath.Base(source.File)
		return slog.Any(a.Key, source)
	}
	return a
}

type ShutdownFunc func() error

const (
	_defautlEndpoint = "localhost:4317"
	_collectPeriod   = 30 * time.Second
	_collectTimeout  = 35 * time.Second
	_minimumInterval = time.Minute
	_endpointEnv     = "GROUND_CONTROL_OTELCOL_ENDPOINT"
)

var (
	_histogramBuckets = []float64{5, 10, 25, 50, 75, 100, 250, 500, 750, 1000, 2500, 5000, 7500, 10000}
)

func startOTel() ShutdownFunc {
	slog.Info("starting OTel providers")
	shutdown, err := otelStart(context.Background())
	if err != nil {
		panic(err)
	}

	return shutdown
}

func otelStart(ctx context.Context) (ShutdownFunc, error) {
	otel.SetTextMapPropagator(b3.New())

	metricsShutdownFunc, err := startMetricsProvider(ctx)
	if err != nil {
		return nil, err
	}

	traceShutdownFunc, err := startTraceProvider(ctx)
	if err != nil {
		return nil, err
	}

	return func() error {
		if err := metricsShutdownFunc(); err != nil {
			return err
		}
		return traceShutdownFunc()
	}, nil
}

func otelEndpoint() string {
	if value, ok := os.LookupEnv(_endpointEnv); ok {
		return value
	}
	return _defautlEndpoint
}

func serviceResource() *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String("ground-control"),
		semconv.ServiceVersionKey.String(node.Version),
	)
}

func startTraceProvider(ctx context.Context) (ShutdownFunc, error) {
	exp, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(otelEndpoint()),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(serviceResource()),
	)
	otel.SetTracerProvider(tp)

	return func() error {
		return tp.Shutdown(ctx)
	}, nil
}

func startMetricsProvider(ctx context.Context) (ShutdownFunc, error) {
	exp, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpoint(otelEndpoint()),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	mp := newMeterProvider(exp)
	otel.SetMeterProvider(mp)

	err = runtime.Start(runtime.WithMinimumReadMemStatsInterval(_minimumInterval))
	if err != nil {
		return nil, err
	}

	return func() error {
		return mp.Shutdown(ctx)
	}, nil
}

func newMeterProvider(metricExporter metric.Exporter) *metric.MeterProvider {
	return metric.NewMeterProvider(
		metric.WithResource(serviceResource()),
		metric.WithReader(
			metric.NewPeriodicReader(
				metricExporter,
				metric.WithTimeout(_collectTimeout),
				metric.WithInterval(_collectPeriod))),
		metric.WithView(metric.NewView(
			metric.Instrument{
				Name: "*",
				Kind: metric.InstrumentKindHistogram,
			},
			metric.Stream{
				Aggregation: metric.AggregationExplicitBucketHistogram{
					Boundaries: _histogramBuckets,
				},
			},
		)),
	)
}
