package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments, initialized once via InitMetrics().
var (
	keysCounter    metric.Int64Counter
	replayDuration metric.Float64Histogram
	errorCounter   metric.Int64Counter
	displayGauge   metric.Float64Gauge
)

// InitMetrics registers the OTel instruments for the calculator engine.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	keysCounter, err = meter.Int64Counter("calculator.keys.total",
		metric.WithDescription("Total number of calculator key presses replayed"),
		metric.WithUnit("{key}"),
	)
	if err != nil {
		return fmt.Errorf("creating keys counter: %w", err)
	}

	replayDuration, err = meter.Float64Histogram("calculator.replay.duration",
		metric.WithDescription("Duration of calculator key replays in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating replay histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of rejected calculator requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	displayGauge, err = meter.Float64Gauge("calculator.last_display",
		metric.WithDescription("Numeric value of the last replayed display"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating display gauge: %w", err)
	}

	return nil
}
