package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fleetops/fms/backend/internal/domain"
)

// CreateEmployee handles POST /employees.
func (s *Server) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var emp domain.Employee
	if err := json.NewDecoder(r.Body).Decode(&emp); err != nil {
		badRequest(w, "Request body is missing or malformed.")
		return
	}

	created, err := s.employees.Create(r.Context(), emp)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListEmployees handles GET /employees. Supports ?role= to filter by job
// function (e.g. ?role=Driver for assignment pickers).
func (s *Server) ListEmployees(w http.ResponseWriter, r *http.Request) {
	role := domain.EmployeeRole(r.URL.Query().Get("role"))

	employees, err := s.employees.List(r.Context(), role)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, employees)
}

// GetEmployee handles GET /employees/{id}.
func (s *Server) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	emp, err := s.employees.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, emp)
}

// UpdateEmployee handles PUT /employees/{id}.
func (s *Server) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var emp domain.Employee
	if err := json.NewDecoder(r.Body).Decode(&emp); err != nil {
		badRequest(w, "Request body is missing or malformed.")
		return
	}
	emp.ID = id

	updated, err := s.employees.Update(r.Context(), emp)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteEmployee handles DELETE /employees/{id}.
func (s *Server) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.employees.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
