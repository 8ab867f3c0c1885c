package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"calculator-api/internal/calculator"
	"calculator-api/internal/compute"
	"calculator-api/internal/handlers"
	"calculator-api/internal/observability"
)

// NewRouter builds the HTTP handler. HTTP metrics are registered on reg and
// served from /metrics.
func NewRouter(computeHandler *compute.Handler, reg *prometheus.Registry) http.Handler {

	r := chi.NewRouter()

	httpMetrics := observability.NewHTTPMetrics(reg)

	r.Use(middleware.Recoverer)
	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(httpMetrics.Middleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler(reg))

	r.Route("/api", func(r chi.Router) {
		compute.RegisterRoutes(r, computeHandler)
		calculator.RegisterRoutes(r)
	})

	return r
}
