// Package handler implements the HTTP handlers for the fleet management API.
// All handlers are methods on Server, split into resource-specific files
// (trip.go, truck.go, etc.) but sharing the same struct so they can access
// its dependencies. Routing is declared in Register.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fleetops/fms/backend/internal/domain"
)

// The servicer interfaces below define the business operations each handler
// depends on. Defining them here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.

// TripServicer covers the trip workflow plus the append-only trip logs.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetDetail(ctx context.Context, id uuid.UUID) (domain.TripDetail, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error
	SetStatus(ctx context.Context, tripID uuid.UUID, rawStatus string, actor domain.Actor) (domain.TripDetail, error)
	AddEvent(ctx context.Context, ev domain.TripEvent) (domain.TripEvent, error)
	ListEvents(ctx context.Context, tripID uuid.UUID) ([]domain.TripEvent, error)
	AddFuel(ctx context.Context, f domain.TripFuel) (domain.TripFuel, error)
	ListFuel(ctx context.Context, tripID uuid.UUID) ([]domain.TripFuel, error)
}

// TruckServicer covers fleet vehicle management.
type TruckServicer interface {
	Create(ctx context.Context, truck domain.Truck) (domain.Truck, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Truck, error)
	List(ctx context.Context) ([]domain.Truck, error)
	Update(ctx context.Context, truck domain.Truck) (domain.Truck, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EmployeeServicer covers personnel management.
type EmployeeServicer interface {
	Create(ctx context.Context, emp domain.Employee) (domain.Employee, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Employee, error)
	List(ctx context.Context, role domain.EmployeeRole) ([]domain.Employee, error)
	Update(ctx context.Context, emp domain.Employee) (domain.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomerServicer covers customer account management.
type CustomerServicer interface {
	Create(ctx context.Context, c domain.Customer) (domain.Customer, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, c domain.Customer) (domain.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LocationServicer covers named location management.
type LocationServicer interface {
	Create(ctx context.Context, loc domain.Location) (domain.Location, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Location, error)
	List(ctx context.Context) ([]domain.Location, error)
	Update(ctx context.Context, loc domain.Location) (domain.Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AnalyticsServicer serves the dashboard KPI snapshot.
type AnalyticsServicer interface {
	Dashboard(ctx context.Context) (domain.DashboardStats, error)
}

// Server holds every handler's dependencies.
type Server struct {
	trips     TripServicer
	trucks    TruckServicer
	employees EmployeeServicer
	customers CustomerServicer
	locations LocationServicer
	analytics AnalyticsServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, trucks TruckServicer, employees EmployeeServicer, customers CustomerServicer, locations LocationServicer, analytics AnalyticsServicer) *Server {
	return &Server{
		trips:     trips,
		trucks:    trucks,
		employees: employees,
		customers: customers,
		locations: locations,
		analytics: analytics,
	}
}

// Register mounts every API route on the router. The caller decides which
// middleware wraps the router; Register only declares paths.
func (s *Server) Register(r chi.Router) {
	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Patch("/status", s.UpdateTripStatus)
			r.Post("/events", s.AddTripEvent)
			r.Get("/events", s.ListTripEvents)
			r.Post("/fuel", s.AddTripFuel)
			r.Get("/fuel", s.ListTripFuel)
		})
	})

	r.Route("/trucks", func(r chi.Router) {
		r.Post("/", s.CreateTruck)
		r.Get("/", s.ListTrucks)
		r.Get("/{id}", s.GetTruck)
		r.Put("/{id}", s.UpdateTruck)
		r.Delete("/{id}", s.DeleteTruck)
	})

	r.Route("/employees", func(r chi.Router) {
		r.Post("/", s.CreateEmployee)
		r.Get("/", s.ListEmployees)
		r.Get("/{id}", s.GetEmployee)
		r.Put("/{id}", s.UpdateEmployee)
		r.Delete("/{id}", s.DeleteEmployee)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Post("/", s.CreateCustomer)
		r.Get("/", s.ListCustomers)
		r.Get("/{id}", s.GetCustomer)
		r.Put("/{id}", s.UpdateCustomer)
		r.Delete("/{id}", s.DeleteCustomer)
	})

	r.Route("/locations", func(r chi.Router) {
		r.Post("/", s.CreateLocation)
		r.Get("/", s.ListLocations)
		r.Get("/{id}", s.GetLocation)
		r.Put("/{id}", s.UpdateLocation)
		r.Delete("/{id}", s.DeleteLocation)
	})

	r.Get("/analytics/dashboard", s.GetDashboard)
}
