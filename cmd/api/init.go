package main

import (
	"context"
	"errors"

	"calculator-api/internal/calculator"
	"calculator-api/internal/compute"
	"calculator-api/internal/config"
	"calculator-api/internal/observability"
)

type shutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// initTelemetry wires OTLP tracing, metrics and log export. With telemetry
// disabled the global no-op providers stay in place.
func initTelemetry(ctx context.Context, cfg *config.Config) (shutdownFunc, error) {
	if !cfg.OTelEnabled {
		return noopShutdown, nil
	}

	traceShutdown, err := observability.InitTracing(ctx)
	if err != nil {
		return nil, err
	}

	metricShutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, errors.Join(err, traceShutdown(ctx))
	}

	logShutdown, err := observability.InitLogging(ctx)
	if err != nil {
		return nil, errors.Join(err, metricShutdown(ctx), traceShutdown(ctx))
	}

	return func(ctx context.Context) error {
		return errors.Join(logShutdown(ctx), metricShutdown(ctx), traceShutdown(ctx))
	}, nil
}

// initMetrics creates the application-specific metric instruments. Add new
// domain InitMetrics calls here as the project grows.
func initMetrics() error {
	if err := calculator.InitMetrics(); err != nil {
		return err
	}
	return compute.InitMetrics()
}
