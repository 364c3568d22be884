// Package handlers provides HTTP handlers for projection endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/projection"
)

// Handler provides HTTP handlers for projection endpoints
type Handler struct {
	service *projection.Service
	log     zerolog.Logger
}

// NewHandler creates a new projection handler
func NewHandler(service *projection.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "projection").Logger(),
	}
}

// HandleProjectScenario handles POST /projections/scenario
func (h *Handler) HandleProjectScenario(w http.ResponseWriter, r *http.Request) {
	var req projection.ScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ScenarioID == "" {
		http.Error(w, "scenario_id is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.ProjectScenario(req)
	if err != nil {
		h.writeError(w, err, "Failed to project scenario")
		return
	}

	h.writeJSON(w, resp)
}

// HandleProjectJourney handles POST /projections/journey
func (h *Handler) HandleProjectJourney(w http.ResponseWriter, r *http.Request) {
	var req projection.JourneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.JourneyID == "" {
		http.Error(w, "journey_id is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.ProjectJourney(req)
	if err != nil {
		h.writeError(w, err, "Failed to project journey")
		return
	}

	h.writeJSON(w, resp)
}

func (h *Handler) writeError(w http.ResponseWriter, err error, msg string) {
	var notFound *projection.NotFoundError
	if errors.As(err, &notFound) {
		http.Error(w, notFound.Error(), http.StatusNotFound)
		return
	}
	if errors.Is(err, projection.ErrEmptyJourney) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.log.Error().Err(err).Msg(msg)
	http.Error(w, msg, http.StatusInternalServerError)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
