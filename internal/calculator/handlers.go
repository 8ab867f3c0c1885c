package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"calculator-api/internal/handlers"
	"calculator-api/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

const (
	// maxKeys bounds a single replay request.
	maxKeys = 1024
	// maxBodyBytes bounds the request body; maxKeys quoted keys plus a state
	// fit well inside it.
	maxBodyBytes = 64 << 10
)

// Keys handles POST /api/calculator/keys. It replays a key sequence through
// the engine, starting from the supplied state or a fresh session, and
// records one span event per key.
func Keys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.keys",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if len(req.Keys) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "no keys provided", errors.New("keys array is empty"), http.StatusBadRequest, w)
		return
	}
	if len(req.Keys) > maxKeys {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "too many keys", fmt.Errorf("%d keys exceeds limit of %d", len(req.Keys), maxKeys), http.StatusBadRequest, w)
		return
	}

	state := NewState()
	if req.State != nil {
		if err := req.State.Validate(); err != nil {
			observability.RecordError(ctx, span, logger, errorCounter, "keys", err.Error(), err, http.StatusBadRequest, w)
			return
		}
		state = *req.State
	}

	span.SetAttributes(
		attribute.Int("calculator.keys_count", len(req.Keys)),
		attribute.String("calculator.initial_display", state.Display),
	)

	start := time.Now()
	state, steps, err := Replay(state, req.Keys)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	for _, step := range steps {
		span.AddEvent("key.applied", trace.WithAttributes(
			attribute.String("key", step.Key),
			attribute.String("display", step.Display),
		))
	}

	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	keysCounter.Add(ctx, int64(len(steps)))
	replayDuration.Record(ctx, elapsed)
	if !state.HasError() {
		displayGauge.Record(ctx, state.Value())
	} else {
		errorCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "arithmetic")))
	}

	span.SetAttributes(
		attribute.String("calculator.display", state.Display),
		attribute.Bool("calculator.error", state.HasError()),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator keys replayed",
		zap.Int("keys", len(steps)),
		zap.String("display", state.Display),
		zap.String("operator", string(state.Operator)),
		zap.Bool("awaiting_operand", state.AwaitingOperand),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, KeysResponse{
		State: state,
		Steps: steps,
	})
}
