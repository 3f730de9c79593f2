package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// RoomAll receives every record-change event regardless of id.
const RoomAll = "all"

// Hub fans record-change events out to subscribed operator sessions. Rooms
// are keyed by record id; one extra room sees everything.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*websocket.Conn]string // conn -> client id
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*websocket.Conn]string),
	}
}

func (h *Hub) Register(roomID, clientID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*websocket.Conn]string)
	}

	h.rooms[roomID][conn] = clientID
	log.Printf("[hub] register room=%s client=%s conns=%d", roomID, clientID, len(h.rooms[roomID]))
}

func (h *Hub) Unregister(roomID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.rooms[roomID]
	if !ok {
		return
	}

	if clientID, ok := conns[conn]; ok {
		delete(conns, conn)
		conn.Close()
		log.Printf("[hub] unregister room=%s client=%s conns=%d", roomID, clientID, len(conns))
	}

	if len(conns) == 0 {
		delete(h.rooms, roomID)
	}
}

func (h *Hub) SendToRoom(roomID string, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.rooms[roomID]
	if !ok || len(conns) == 0 {
		return
	}

	for conn, clientID := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("[hub] send failed room=%s client=%s err=%v", roomID, clientID, err)
		}
	}
}

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}
