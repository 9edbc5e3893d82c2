package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fleetops/fms/backend/internal/domain"
	"github.com/fleetops/fms/backend/internal/middleware"
)

// listResponse is the standard envelope for paginated collections.
type listResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination pagination `json:"pagination"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// CreateTrip handles POST /trips.
// The request body mirrors the trip JSON shape; status and trip_code are
// server-assigned and ignored if supplied.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var trip domain.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		badRequest(w, "Request body is missing or malformed.")
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	trips, total, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse[domain.Trip]{
		Data: trips,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTrip handles GET /trips/{id}. Returns the detail projection with the
// truck plate and driver name resolved.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.GetDetail(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var trip domain.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		badRequest(w, "Request body is missing or malformed.")
		return
	}
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	actor, _ := middleware.ActorFromContext(r.Context())
	if err := s.trips.Delete(r.Context(), id, actor); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateTripStatus handles PATCH /trips/{id}/status.
func (s *Server) UpdateTripStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "Request body is missing or malformed.")
		return
	}
	if body.Status == "" {
		badRequest(w, "Status field is required.")
		return
	}

	actor, _ := middleware.ActorFromContext(r.Context())
	detail, err := s.trips.SetStatus(r.Context(), id, body.Status, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// AddTripEvent handles POST /trips/{id}/events. The encoder defaults to the
// authenticated actor when the body does not name one.
func (s *Server) AddTripEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var ev domain.TripEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		badRequest(w, "Request body is missing or malformed.")
		return
	}
	ev.TripID = id
	if ev.EncoderID == uuid.Nil {
		if actor, found := middleware.ActorFromContext(r.Context()); found {
			ev.EncoderID = actor.ID
		}
	}

	created, err := s.trips.AddEvent(r.Context(), ev)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListTripEvents handles GET /trips/{id}/events.
func (s *Server) ListTripEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	events, err := s.trips.ListEvents(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// AddTripFuel handles POST /trips/{id}/fuel.
func (s *Server) AddTripFuel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var f domain.TripFuel
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		badRequest(w, "Request body is missing or malformed.")
		return
	}
	f.TripID = id
	if f.EncoderID == uuid.Nil {
		if actor, found := middleware.ActorFromContext(r.Context()); found {
			f.EncoderID = actor.ID
		}
	}

	created, err := s.trips.AddFuel(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListTripFuel handles GET /trips/{id}/fuel.
func (s *Server) ListTripFuel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	fuels, err := s.trips.ListFuel(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fuels)
}

// ---- shared request helpers ------------------------------------------------

// pathID parses the {id} path parameter, writing a 400 when it is not a UUID.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "Invalid id.")
		return uuid.Nil, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter; nil means absent or
// unparseable.
func queryInt(r *http.Request, key string) *int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
