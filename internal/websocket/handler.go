package websocket

import (
	"net/http"

	ws "github.com/coder/websocket"

	"hearth/internal/auth"
)

// Handler upgrades the request to a WebSocket and serves the caller's
// household event feed. Requires an authenticated identity in context.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.FromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := ws.Accept(w, r, nil)
		if err != nil {
			hub.logger.Warn("websocket accept", "error", err)
			return
		}

		client := newClient(hub, conn, id.HouseholdID)
		client.run(r.Context())
	}
}
