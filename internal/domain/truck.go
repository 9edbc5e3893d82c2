package domain

import "github.com/google/uuid"

// TruckStatus is the operational state of a truck.
type TruckStatus string

const (
	TruckAvailable   TruckStatus = "Available"
	TruckInUse       TruckStatus = "In Use"
	TruckMaintenance TruckStatus = "Maintenance"
)

// TruckStatuses lists every valid truck status value.
var TruckStatuses = []TruckStatus{TruckAvailable, TruckInUse, TruckMaintenance}

// Truck is the capacity and availability source of truth for trip validation.
// Only Maintenance blocks assignment — an In Use truck may still be scheduled
// for a later trip.
type Truck struct {
	ID             uuid.UUID   `json:"truck_id"`
	LicensePlate   string      `json:"license_plate"`
	VIN            string      `json:"vin,omitempty"`
	TonnerCapacity int         `json:"tonner_capacity"`
	Status         TruckStatus `json:"status"`
	AssignedDriver *uuid.UUID  `json:"assigned_driver,omitempty"`
}
