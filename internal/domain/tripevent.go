package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType classifies a logged trip milestone.
type EventType string

const (
	EventLoadingArrival  EventType = "Loading_Arrival"
	EventLoadingStart    EventType = "Loading_Start"
	EventUnloadingFinish EventType = "Unloading_Finish"
)

// EventTypes lists every valid trip event type.
var EventTypes = []EventType{EventLoadingArrival, EventLoadingStart, EventUnloadingFinish}

// TripEvent is an append-only milestone record attached to a trip,
// entered by an encoder. Events are never updated or deleted.
type TripEvent struct {
	ID         uuid.UUID `json:"event_id"`
	TripID     uuid.UUID `json:"trip_id"`
	EncoderID  uuid.UUID `json:"encoder_id"`
	EventType  EventType `json:"event_type"`
	Timestamp  time.Time `json:"event_timestamp"`
	DocumentNo string    `json:"document_no,omitempty"`
}

// TripFuel is an append-only fuel purchase record attached to a trip.
type TripFuel struct {
	ID          uuid.UUID `json:"fuel_id"`
	TripID      uuid.UUID `json:"trip_id"`
	EncoderID   uuid.UUID `json:"encoder_id"`
	FuelRefNo   string    `json:"fuel_ref_no"`
	Liters      float64   `json:"liters"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}
