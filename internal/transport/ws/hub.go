package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Message is the WebSocket envelope format.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Connection represents one WebSocket client. Its ID doubles as the player
// identity inside the game engine.
type Connection struct {
	ID   string
	Send chan []byte
}

// Hub tracks live connections and their room membership, and implements
// game.Gateway. Sends never block: a connection whose buffer is full drops
// the message and relies on the next snapshot to catch up.
type Hub struct {
	mu         sync.RWMutex
	conns      map[string]*Connection
	rooms      map[string]map[string]*Connection // roomCode -> connID -> conn
	roomByConn map[string]string
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		conns:      make(map[string]*Connection),
		rooms:      make(map[string]map[string]*Connection),
		roomByConn: make(map[string]string),
	}
}

func (h *Hub) add(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn.ID] = conn
	log.Printf("Client %s connected", conn.ID)
}

func (h *Hub) remove(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.conns[conn.ID]; !ok || existing != conn {
		return
	}
	delete(h.conns, conn.ID)
	h.dropFromRoom(conn.ID)
	close(conn.Send)
	log.Printf("Client %s disconnected", conn.ID)
}

// Subscribe adds the connection to a room's broadcast set.
func (h *Hub) Subscribe(connID, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok {
		return
	}
	h.dropFromRoom(connID)
	if h.rooms[roomCode] == nil {
		h.rooms[roomCode] = make(map[string]*Connection)
	}
	h.rooms[roomCode][connID] = conn
	h.roomByConn[connID] = roomCode
}

// Unsubscribe removes the connection from its room's broadcast set.
func (h *Hub) Unsubscribe(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropFromRoom(connID)
}

// dropFromRoom removes room membership. Caller holds mu.
func (h *Hub) dropFromRoom(connID string) {
	code, ok := h.roomByConn[connID]
	if !ok {
		return
	}
	delete(h.roomByConn, connID)
	if members, ok := h.rooms[code]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, code)
		}
	}
}

// SendTo delivers an event to a single connection.
func (h *Hub) SendTo(connID string, event string, payload interface{}) {
	data := encode(event, payload)
	if data == nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if conn, ok := h.conns[connID]; ok {
		conn.deliver(data)
	}
}

// Broadcast delivers an event to every connection in a room.
func (h *Hub) Broadcast(roomCode string, event string, payload interface{}) {
	data := encode(event, payload)
	if data == nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conn := range h.rooms[roomCode] {
		conn.deliver(data)
	}
}

func (c *Connection) deliver(data []byte) {
	select {
	case c.Send <- data:
	default:
		// Drop message if buffer full
	}
}

func encode(event string, payload interface{}) []byte {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s payload: %v", event, err)
		return nil
	}
	data, err := json.Marshal(&Message{Type: event, Payload: body})
	if err != nil {
		log.Printf("Failed to marshal %s envelope: %v", event, err)
		return nil
	}
	return data
}
