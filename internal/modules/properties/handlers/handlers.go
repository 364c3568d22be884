// Package handlers provides HTTP handlers for property model management.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/properties"
)

// Handler provides HTTP handlers for property model endpoints
type Handler struct {
	repo *properties.Repository
	log  zerolog.Logger
}

// NewHandler creates a new property model handler
func NewHandler(repo *properties.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "properties").Logger(),
	}
}

// HandleCreate handles POST /properties
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var p properties.PropertyModel
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if p.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	created, err := h.repo.Create(p)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create property model")
		http.Error(w, "Failed to create property model", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

// HandleGet handles GET /properties/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.repo.Get(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get property model")
		http.Error(w, "Failed to get property model", http.StatusInternalServerError)
		return
	}
	if p == nil {
		http.Error(w, "Property model not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, p)
}

// HandleList handles GET /properties
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list property models")
		http.Error(w, "Failed to list property models", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []properties.PropertyModel{}
	}

	h.writeJSON(w, list)
}

// HandleDelete handles DELETE /properties/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.Delete(id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete property model")
		http.Error(w, "Failed to delete property model", http.StatusInternalServerError)
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
