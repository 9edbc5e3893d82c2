package realtime

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Origin checks are handled by the CORS layer in front of the API; the
// upgrader accepts any origin so native driver apps can connect directly.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// ServeWS returns the handler for GET /ws/trips/{id}: it upgrades the
// connection, subscribes it to the trip's group, and starts the read and
// write pumps. The subscription lives until the connection drops.
func ServeWS(hub *Hub, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tripID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid trip id", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already wrote the HTTP error response.
			logger.Debug("websocket upgrade failed", "trip_id", tripID, "error", err)
			return
		}

		c := newClient(hub, conn, logger, tripID)
		hub.Subscribe(tripID, c)

		go c.writePump()
		go c.readPump()
	}
}
