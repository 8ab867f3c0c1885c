package compute

import (
	"context"
	"errors"
	"net/http"
	"time"

	"calculator-api/internal/handlers"
	"calculator-api/internal/observability"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("compute")

// timestampLayout matches JavaScript's Date.prototype.toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z"

const (
	helloMessage   = "Hello from API!"
	calcErrorTitle = "Calculation error"
)

// maxBodyBytes bounds a /api/calculate request body.
const maxBodyBytes = 4 << 10

// Handler serves the /api endpoints.
type Handler struct {
	svc   *Service
	clock clockwork.Clock
}

// NewHandler creates a Handler backed by svc. clock stamps /api/status.
func NewHandler(svc *Service, clock clockwork.Clock) *Handler {
	return &Handler{svc: svc, clock: clock}
}

// Hello handles GET /api/hello.
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, HelloResponse{Message: helloMessage})
}

// Status handles GET /api/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, StatusResponse{
		Status:    "ok",
		Timestamp: h.clock.Now().UTC().Format(timestampLayout),
	})
}

// Calculate handles POST /api/calculate.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "compute.calculate",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	req, err := DecodeRequest(r.Body)
	if err != nil {
		h.writeFailure(ctx, w, span, logger, "", err)
		return
	}

	opName := string(req.Operation)
	span.SetAttributes(
		attribute.String("compute.operation", opName),
		attribute.Int("compute.number", req.Number),
	)

	start := time.Now()
	outcome, err := h.svc.Calculate(ctx, req)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		h.writeFailure(ctx, w, span, logger, opName, err)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	if outcome.Cached {
		cacheHits.Add(ctx, 1, attrs)
	}

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Int("result.digits", len(outcome.Result.String())),
		attribute.Bool("cached", outcome.Cached),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("computation completed",
		zap.String("operation", opName),
		zap.Int("number", req.Number),
		zap.Bool("cached", outcome.Cached),
		zap.String("cache", h.svc.CacheName()),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, CalculateResponse{Result: outcome.Result})
}

// writeFailure maps validation errors to 400 {errors} and everything else to
// 500 {error, message}.
func (h *Handler) writeFailure(ctx context.Context, w http.ResponseWriter, span trace.Span, logger *zap.Logger, opName string, err error) {
	if opName == "" {
		opName = "unknown"
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		observability.ObserveError(ctx, span, logger, errorCounter, opName, "invalid compute request", err)
		handlers.WriteJSON(w, http.StatusBadRequest, ValidationResponse{Errors: verr.Errors})
		return
	}

	observability.ObserveError(ctx, span, logger, errorCounter, opName, calcErrorTitle, err)
	handlers.WriteErrorMessage(w, http.StatusInternalServerError, calcErrorTitle, errorMessage(err))
}

func errorMessage(err error) string {
	var cerr *ComputationError
	if errors.As(err, &cerr) && cerr.Err != nil {
		return cerr.Err.Error()
	}
	return err.Error()
}
