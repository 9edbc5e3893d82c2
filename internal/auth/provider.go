// Package auth implements role-based authorization for the fleet API.
// The service layer depends on the Provider interface, not the concrete
// role checks, so tests can stub capabilities without minting tokens.
package auth

import "github.com/fleetops/fms/backend/internal/domain"

// Role names carried in JWT claims. SuperAdmin covers user management and
// every fleet operation; Dispatcher covers trip scheduling and dispatch.
const (
	RoleSuperAdmin = "SuperAdmin"
	RoleDispatcher = "Dispatcher"
)

// Provider answers the two capability questions the trip workflow needs.
type Provider interface {
	// IsSuperAdminOrDispatcher reports whether the actor holds a role with
	// full dispatch privileges.
	IsSuperAdminOrDispatcher(actor domain.Actor) bool

	// IsAssignedDriver reports whether the actor is the driver currently
	// assigned to the trip.
	IsAssignedDriver(actor domain.Actor, trip domain.Trip) bool
}

// RoleProvider is the claims-backed Provider implementation.
type RoleProvider struct{}

// NewRoleProvider constructs the default Provider.
func NewRoleProvider() *RoleProvider {
	return &RoleProvider{}
}

func (p *RoleProvider) IsSuperAdminOrDispatcher(actor domain.Actor) bool {
	return actor.HasRole(RoleSuperAdmin) || actor.HasRole(RoleDispatcher)
}

func (p *RoleProvider) IsAssignedDriver(actor domain.Actor, trip domain.Trip) bool {
	return trip.DriverID != nil && *trip.DriverID == actor.ID
}
