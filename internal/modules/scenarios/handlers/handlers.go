// Package handlers provides HTTP handlers for scenario and journey management.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/scenarios"
)

// Handler provides HTTP handlers for scenario and journey endpoints
type Handler struct {
	repo *scenarios.Repository
	log  zerolog.Logger
}

// NewHandler creates a new scenarios handler
func NewHandler(repo *scenarios.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "scenarios").Logger(),
	}
}

// HandleCreateScenario handles POST /scenarios
func (h *Handler) HandleCreateScenario(w http.ResponseWriter, r *http.Request) {
	var s scenarios.Scenario
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if s.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if s.DisruptionScore != nil && (*s.DisruptionScore < 1 || *s.DisruptionScore > 5) {
		http.Error(w, "disruption_score must be between 1 and 5", http.StatusBadRequest)
		return
	}

	created, err := h.repo.CreateScenario(s)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create scenario")
		http.Error(w, "Failed to create scenario", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

// HandleGetScenario handles GET /scenarios/{id}
func (h *Handler) HandleGetScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s, err := h.repo.GetScenario(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get scenario")
		http.Error(w, "Failed to get scenario", http.StatusInternalServerError)
		return
	}
	if s == nil {
		http.Error(w, "Scenario not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, s)
}

// HandleListScenarios handles GET /scenarios
func (h *Handler) HandleListScenarios(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.ListScenarios()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list scenarios")
		http.Error(w, "Failed to list scenarios", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []scenarios.Scenario{}
	}

	h.writeJSON(w, list)
}

// HandleDeleteScenario handles DELETE /scenarios/{id}
func (h *Handler) HandleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.DeleteScenario(id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete scenario")
		http.Error(w, "Failed to delete scenario", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateJourney handles POST /journeys
func (h *Handler) HandleCreateJourney(w http.ResponseWriter, r *http.Request) {
	var j scenarios.Journey
	if err := json.NewDecoder(r.Body).Decode(&j); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if j.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	created, err := h.repo.CreateJourney(j)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create journey")
		http.Error(w, "Failed to create journey", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

// HandleGetJourney handles GET /journeys/{id}
func (h *Handler) HandleGetJourney(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	j, err := h.repo.GetJourney(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get journey")
		http.Error(w, "Failed to get journey", http.StatusInternalServerError)
		return
	}
	if j == nil {
		http.Error(w, "Journey not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, j)
}

// HandleListJourneys handles GET /journeys
func (h *Handler) HandleListJourneys(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.ListJourneys()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list journeys")
		http.Error(w, "Failed to list journeys", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []scenarios.Journey{}
	}

	h.writeJSON(w, list)
}

// HandleDeleteJourney handles DELETE /journeys/{id}
func (h *Handler) HandleDeleteJourney(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.DeleteJourney(id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete journey")
		http.Error(w, "Failed to delete journey", http.StatusInternalServerError)
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
