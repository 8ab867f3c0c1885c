package compute

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the compute endpoints onto r. The caller decides
// the prefix (the server mounts them under /api).
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/hello", h.Hello)
	r.Get("/status", h.Status)
	r.Post("/calculate", h.Calculate)
}
