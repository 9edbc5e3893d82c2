// Package realtime implements the per-trip websocket broadcast channel.
// Each trip has a subscriber group; status changes committed by the service
// layer and telemetry relayed from driver devices fan out to every
// subscriber of that trip's group.
package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fleetops/fms/backend/internal/domain"
	"github.com/fleetops/fms/backend/internal/metrics"
)

// tripUpdate is the wire format pushed to subscribers. Every broadcast —
// whether triggered by a status change or relayed device telemetry — uses
// this one shape.
type tripUpdate struct {
	Type      string  `json:"type"`
	TripID    string  `json:"trip_id"`
	Status    string  `json:"status"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Timestamp string  `json:"timestamp"`
}

// Hub maintains the trip-keyed subscriber registry and fans broadcasts out
// to group members. All methods are safe for concurrent use.
//
// Delivery is best-effort: a subscriber whose send buffer is full misses
// that message, and the hub moves on. A publish never blocks on a slow
// reader and never fails the operation that triggered it.
type Hub struct {
	logger  *slog.Logger
	metrics *metrics.Collector

	mu     sync.RWMutex
	groups map[uuid.UUID]map[*Client]struct{}
}

// NewHub constructs an empty Hub.
func NewHub(logger *slog.Logger, collector *metrics.Collector) *Hub {
	return &Hub{
		logger:  logger,
		metrics: collector,
		groups:  make(map[uuid.UUID]map[*Client]struct{}),
	}
}

// Subscribe adds a client to a trip's group, creating the group on first
// subscriber.
func (h *Hub) Subscribe(tripID uuid.UUID, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	group, ok := h.groups[tripID]
	if !ok {
		group = make(map[*Client]struct{})
		h.groups[tripID] = group
	}
	group[c] = struct{}{}

	h.metrics.Subscribers.Inc()
	h.logger.Debug("subscriber joined", "trip_id", tripID, "group_size", len(group))
}

// Unsubscribe removes a client from a trip's group and deletes the group
// when it empties. Unsubscribing a client that is not registered is a no-op,
// so the disconnect path can call it unconditionally.
func (h *Hub) Unsubscribe(tripID uuid.UUID, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	group, ok := h.groups[tripID]
	if !ok {
		return
	}
	if _, ok := group[c]; !ok {
		return
	}

	delete(group, c)
	if len(group) == 0 {
		delete(h.groups, tripID)
	}

	h.metrics.Subscribers.Dec()
	h.logger.Debug("subscriber left", "trip_id", tripID, "group_size", len(group))
}

// PublishStatus broadcasts a committed status change to the trip's group.
// It satisfies the service layer's Publisher interface.
func (h *Hub) PublishStatus(tripID uuid.UUID, status domain.TripStatus, lat, lng float64, at time.Time) {
	h.publish(tripID, tripUpdate{
		Type:      "trip_update",
		TripID:    tripID.String(),
		Status:    string(status),
		Lat:       lat,
		Lng:       lng,
		Timestamp: at.UTC().Format(time.RFC3339),
	})
}

// publish marshals once and fans out to every group member, including the
// connection the message originated from.
func (h *Hub) publish(tripID uuid.UUID, msg tripUpdate) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "trip_id", tripID, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	h.metrics.BroadcastsTotal.Inc()
	for c := range h.groups[tripID] {
		select {
		case c.send <- payload:
		default:
			// Full buffer: drop this message for this subscriber rather
			// than stall the whole group.
			h.metrics.BroadcastDropsTotal.Inc()
			h.logger.Warn("broadcast dropped", "trip_id", tripID)
		}
	}
}

// subscriberCount reports the current size of a trip's group.
func (h *Hub) subscriberCount(tripID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[tripID])
}
