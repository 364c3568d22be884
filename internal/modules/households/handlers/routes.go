package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers all household profile routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/occupancy-profiles", func(r chi.Router) {
		r.Post("/", h.HandleCreateOccupancy)
		r.Get("/", h.HandleListOccupancy)
		r.Get("/{id}", h.HandleGetOccupancy)
		r.Delete("/{id}", h.HandleDeleteOccupancy)
	})
	r.Route("/dhw-profiles", func(r chi.Router) {
		r.Post("/", h.HandleCreateDHW)
		r.Get("/", h.HandleListDHW)
		r.Get("/{id}", h.HandleGetDHW)
		r.Delete("/{id}", h.HandleDeleteDHW)
	})
}
