package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Router wires up all routes for the generation service.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(SecurityHeaders())
	r.Use(RequestSizeLimiter(h.cfg.Server.MaxRequestSize))
	r.Use(NewRateLimiter(h.cfg.Server.RateLimit, h.cfg.Server.RateLimitBurst))

	r.Get("/templates", h.ListTemplates)
	r.Post("/games", h.CreateGame)
	r.Get("/games/{id}", h.GetGame)
	r.Get("/games/{id}/events", h.StreamEvents)
	r.Get("/games/{id}/archive", h.GetArchive)

	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
