package domain

import "github.com/google/uuid"

// Actor identifies the authenticated caller of a service operation.
// It is populated from JWT claims by the auth middleware and carried through
// context to the service layer, which consults the authorization provider
// with it. An Actor with a Driver employee ID matches trips via DriverID.
type Actor struct {
	ID    uuid.UUID
	Email string
	Roles []string
}

// HasRole reports whether the actor carries the named role.
func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
