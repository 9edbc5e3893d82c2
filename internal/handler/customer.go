package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fleetops/fms/backend/internal/domain"
)

// CreateCustomer handles POST /customers.
func (s *Server) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var c domain.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		badRequest(w, "Request body is missing or malformed.")
		return
	}

	created, err := s.customers.Create(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListCustomers handles GET /customers.
func (s *Server) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.customers.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, customers)
}

// GetCustomer handles GET /customers/{id}.
func (s *Server) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	c, err := s.customers.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// UpdateCustomer handles PUT /customers/{id}.
func (s *Server) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var c domain.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		badRequest(w, "Request body is missing or malformed.")
		return
	}
	c.ID = id

	updated, err := s.customers.Update(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteCustomer handles DELETE /customers/{id}.
func (s *Server) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.customers.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
