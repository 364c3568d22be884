// Package handlers provides HTTP handlers for household profile management.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/households"
)

// Handler provides HTTP handlers for occupancy and DHW profile endpoints
type Handler struct {
	occupancyRepo *households.OccupancyRepository
	dhwRepo       *households.DHWRepository
	log           zerolog.Logger
}

// NewHandler creates a new households handler
func NewHandler(occupancyRepo *households.OccupancyRepository, dhwRepo *households.DHWRepository, log zerolog.Logger) *Handler {
	return &Handler{
		occupancyRepo: occupancyRepo,
		dhwRepo:       dhwRepo,
		log:           log.With().Str("handler", "households").Logger(),
	}
}

// HandleCreateOccupancy handles POST /occupancy-profiles
func (h *Handler) HandleCreateOccupancy(w http.ResponseWriter, r *http.Request) {
	var p households.OccupancyProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if p.Preset == "" {
		http.Error(w, "preset is required", http.StatusBadRequest)
		return
	}

	created, err := h.occupancyRepo.Create(p)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create occupancy profile")
		http.Error(w, "Failed to create occupancy profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

// HandleGetOccupancy handles GET /occupancy-profiles/{id}
func (h *Handler) HandleGetOccupancy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.occupancyRepo.Get(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get occupancy profile")
		http.Error(w, "Failed to get occupancy profile", http.StatusInternalServerError)
		return
	}
	if p == nil {
		http.Error(w, "Occupancy profile not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, p)
}

// HandleListOccupancy handles GET /occupancy-profiles
func (h *Handler) HandleListOccupancy(w http.ResponseWriter, r *http.Request) {
	list, err := h.occupancyRepo.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list occupancy profiles")
		http.Error(w, "Failed to list occupancy profiles", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []households.OccupancyProfile{}
	}

	h.writeJSON(w, list)
}

// HandleDeleteOccupancy handles DELETE /occupancy-profiles/{id}
func (h *Handler) HandleDeleteOccupancy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.occupancyRepo.Delete(id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete occupancy profile")
		http.Error(w, "Failed to delete occupancy profile", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateDHW handles POST /dhw-profiles
func (h *Handler) HandleCreateDHW(w http.ResponseWriter, r *http.Request) {
	var p households.DHWProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if p.Occupants < 0 {
		http.Error(w, "occupants must not be negative", http.StatusBadRequest)
		return
	}

	created, err := h.dhwRepo.Create(p)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create DHW profile")
		http.Error(w, "Failed to create DHW profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

// HandleGetDHW handles GET /dhw-profiles/{id}
func (h *Handler) HandleGetDHW(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.dhwRepo.Get(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get DHW profile")
		http.Error(w, "Failed to get DHW profile", http.StatusInternalServerError)
		return
	}
	if p == nil {
		http.Error(w, "DHW profile not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, p)
}

// HandleListDHW handles GET /dhw-profiles
func (h *Handler) HandleListDHW(w http.ResponseWriter, r *http.Request) {
	list, err := h.dhwRepo.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list DHW profiles")
		http.Error(w, "Failed to list DHW profiles", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []households.DHWProfile{}
	}

	h.writeJSON(w, list)
}

// HandleDeleteDHW handles DELETE /dhw-profiles/{id}
func (h *Handler) HandleDeleteDHW(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.dhwRepo.Delete(id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete DHW profile")
		http.Error(w, "Failed to delete DHW profile", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
