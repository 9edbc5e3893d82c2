package realtime

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/fleetops/fms/backend/internal/domain"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size in bytes. Telemetry frames are tiny.
	maxMessageSize = 512

	// Outbound buffer per subscriber. When it fills, broadcasts to this
	// subscriber are dropped rather than queued unboundedly.
	sendBufferSize = 16
)

// telemetry is the inbound frame a driver device sends over an open
// subscription: a position fix plus the status the device believes the
// trip is in. Pointers distinguish absent coordinates from zero ones.
type telemetry struct {
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
	Status string   `json:"status"`
}

// Client is one websocket subscriber bound to a single trip group.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	logger *slog.Logger
	tripID uuid.UUID
	send   chan []byte
}

func newClient(hub *Hub, conn *websocket.Conn, logger *slog.Logger, tripID uuid.UUID) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		logger: logger,
		tripID: tripID,
		send:   make(chan []byte, sendBufferSize),
	}
}

// readPump consumes inbound frames until the connection drops, relaying
// well-formed telemetry to the trip's group. Malformed frames are dropped
// without closing the connection or notifying the sender — one buggy device
// must not tear down the channel for everyone watching the trip.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unsubscribe(c.tripID, c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket read", "trip_id", c.tripID, "error", err)
			}
			return
		}

		var t telemetry
		if err := json.Unmarshal(raw, &t); err != nil {
			c.logger.Debug("telemetry dropped", "trip_id", c.tripID, "error", err)
			continue
		}
		if t.Lat == nil || t.Lng == nil {
			c.logger.Debug("telemetry dropped", "trip_id", c.tripID, "reason", "missing coordinates")
			continue
		}
		status := domain.TripStatus(t.Status)

		// Relayed telemetry goes to the whole group, sender included, so
		// the device sees the same stream a dashboard does.
		c.hub.publish(c.tripID, tripUpdate{
			Type:      "trip_update",
			TripID:    c.tripID.String(),
			Status:    string(status),
			Lat:       *t.Lat,
			Lng:       *t.Lng,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// writePump pushes buffered broadcasts to the peer and keeps the connection
// alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
