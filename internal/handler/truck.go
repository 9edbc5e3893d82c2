package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fleetops/fms/backend/internal/domain"
)

// CreateTruck handles POST /trucks.
func (s *Server) CreateTruck(w http.ResponseWriter, r *http.Request) {
	var truck domain.Truck
	if err := json.NewDecoder(r.Body).Decode(&truck); err != nil {
		badRequest(w, "Request body is missing or malformed.")
		return
	}

	created, err := s.trucks.Create(r.Context(), truck)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListTrucks handles GET /trucks.
func (s *Server) ListTrucks(w http.ResponseWriter, r *http.Request) {
	trucks, err := s.trucks.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trucks)
}

// GetTruck handles GET /trucks/{id}.
func (s *Server) GetTruck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	truck, err := s.trucks.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, truck)
}

// UpdateTruck handles PUT /trucks/{id}.
func (s *Server) UpdateTruck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var truck domain.Truck
	if err := json.NewDecoder(r.Body).Decode(&truck); err != nil {
		badRequest(w, "Request body is missing or malformed.")
		return
	}
	truck.ID = id

	updated, err := s.trucks.Update(r.Context(), truck)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteTruck handles DELETE /trucks/{id}.
func (s *Server) DeleteTruck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.trucks.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
