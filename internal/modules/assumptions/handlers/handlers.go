// Package handlers provides HTTP handlers for assumption snapshot management.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/assumptions"
)

// Handler provides HTTP handlers for assumption snapshot endpoints
type Handler struct {
	repo *assumptions.Repository
	log  zerolog.Logger
}

// NewHandler creates a new assumptions handler
func NewHandler(repo *assumptions.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "assumptions").Logger(),
	}
}

// HandleCreate handles POST /assumptions
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var s assumptions.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if s.Region == "" {
		http.Error(w, "region is required", http.StatusBadRequest)
		return
	}
	if s.ValidFrom.IsZero() {
		http.Error(w, "valid_from is required", http.StatusBadRequest)
		return
	}

	created, err := h.repo.Create(s)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create assumption snapshot")
		http.Error(w, "Failed to create assumption snapshot", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

// HandleGet handles GET /assumptions/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s, err := h.repo.Get(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get assumption snapshot")
		http.Error(w, "Failed to get assumption snapshot", http.StatusInternalServerError)
		return
	}
	if s == nil {
		http.Error(w, "Assumption snapshot not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, s)
}

// HandleList handles GET /assumptions?region=GB
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")

	list, err := h.repo.List(region)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list assumption snapshots")
		http.Error(w, "Failed to list assumption snapshots", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []assumptions.Snapshot{}
	}

	h.writeJSON(w, list)
}

// HandleLatest handles GET /assumptions/latest/{region}
func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	region := chi.URLParam(r, "region")

	s, err := h.repo.LatestForRegion(region)
	if err != nil {
		h.log.Error().Err(err).Str("region", region).Msg("Failed to get latest snapshot")
		http.Error(w, "Failed to get latest snapshot", http.StatusInternalServerError)
		return
	}
	if s == nil {
		http.Error(w, "No assumption snapshot for region", http.StatusNotFound)
		return
	}

	h.writeJSON(w, s)
}

// HandleDelete handles DELETE /assumptions/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.Delete(id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete assumption snapshot")
		http.Error(w, "Failed to delete assumption snapshot", http.StatusInternalServerError)
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
