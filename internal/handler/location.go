package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fleetops/fms/backend/internal/domain"
)

// CreateLocation handles POST /locations.
func (s *Server) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var loc domain.Location
	if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
		badRequest(w, "Request body is missing or malformed.")
		return
	}

	created, err := s.locations.Create(r.Context(), loc)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListLocations handles GET /locations.
func (s *Server) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := s.locations.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, locations)
}

// GetLocation handles GET /locations/{id}.
func (s *Server) GetLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	loc, err := s.locations.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loc)
}

// UpdateLocation handles PUT /locations/{id}.
func (s *Server) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var loc domain.Location
	if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
		badRequest(w, "Request body is missing or malformed.")
		return
	}
	loc.ID = id

	updated, err := s.locations.Update(r.Context(), loc)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteLocation handles DELETE /locations/{id}.
func (s *Server) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.locations.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
