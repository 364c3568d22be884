package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers all scenario and journey routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/scenarios", func(r chi.Router) {
		r.Post("/", h.HandleCreateScenario)
		r.Get("/", h.HandleListScenarios)
		r.Get("/{id}", h.HandleGetScenario)
		r.Delete("/{id}", h.HandleDeleteScenario)
	})
	r.Route("/journeys", func(r chi.Router) {
		r.Post("/", h.HandleCreateJourney)
		r.Get("/", h.HandleListJourneys)
		r.Get("/{id}", h.HandleGetJourney)
		r.Delete("/{id}", h.HandleDeleteJourney)
	})
}
