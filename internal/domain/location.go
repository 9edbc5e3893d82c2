package domain

import "github.com/google/uuid"

// Location is a named point trips load at or deliver to.
// Hubs (IsHub) are company depots rather than customer sites.
type Location struct {
	ID           uuid.UUID `json:"location_id"`
	Name         string    `json:"name"`
	AddressLine1 string    `json:"address_line_1,omitempty"`
	City         string    `json:"city,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	IsHub        bool      `json:"is_hub"`
}
