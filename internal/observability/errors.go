package observability

import (
	"context"
	"net/http"

	"calculator-api/internal/handlers"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ObserveError records a failed operation on the span, increments the
// provided error counter and logs with trace context. It does not touch the
// response, for handlers whose error bodies follow their own shape.
func ObserveError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, msg string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)

	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", opName)))

	logger.Error(msg,
		zap.String("operation", opName),
		zap.Error(err),
		zap.String("request_id", RequestIDFromContext(ctx)),
	)
}

// RecordError centralises error handling across all domains: it observes the
// error like ObserveError and writes a JSON {"error": msg} response.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, msg string, err error, status int, w http.ResponseWriter) {
	ObserveError(ctx, span, logger, counter, opName, msg, err)
	handlers.WriteError(w, status, msg)
}
