package compute

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	opsCounter   metric.Int64Counter
	opsHistogram metric.Float64Histogram
	errorCounter metric.Int64Counter
	cacheHits    metric.Int64Counter
)

// InitMetrics registers the OTel instruments for the compute domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("compute")

	var err error

	opsCounter, err = meter.Int64Counter("compute.operations.total",
		metric.WithDescription("Total number of numeric computations served"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("compute.operation.duration",
		metric.WithDescription("Duration of numeric computations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("compute.errors.total",
		metric.WithDescription("Total number of failed compute requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	cacheHits, err = meter.Int64Counter("compute.cache.hits.total",
		metric.WithDescription("Total number of computations answered from the result cache"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return fmt.Errorf("creating cache hit counter: %w", err)
	}

	return nil
}
