package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers all assumption snapshot routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/assumptions", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/latest/{region}", h.HandleLatest)
		r.Get("/{id}", h.HandleGet)
		r.Delete("/{id}", h.HandleDelete)
	})
}
