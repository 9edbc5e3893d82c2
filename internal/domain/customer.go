package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a client whose cargo the fleet moves.
type Customer struct {
	ID           uuid.UUID `json:"customer_id"`
	Name         string    `json:"name"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
