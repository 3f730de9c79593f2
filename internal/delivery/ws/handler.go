package ws

import (
	"net/http"

	"github.com/google/uuid"
)

// SubscribeHandler upgrades the connection and parks it in the room for the
// requested record id (or the all-records room when none is given). Change
// events arrive via the hub; the read loop only detects disconnects.
func SubscribeHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			http.Error(w, "ws upgrade failed", http.StatusBadRequest)
			return
		}

		roomID := r.URL.Query().Get("id")
		if roomID == "" {
			roomID = RoomAll
		}

		clientID := uuid.NewString()
		hub.Register(roomID, clientID, conn)
		defer hub.Unregister(roomID, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
