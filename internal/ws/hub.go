package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event types pushed to clients. Every event is a hint to re-fetch
// state over HTTP, never a state carrier of its own.
const (
	EventJoin          = "join"
	EventJoined        = "joined"
	EventNewQuestion   = "newQuestion"
	EventReadyToReveal = "readyToReveal"
	EventError         = "error"
)

type Event struct {
	Type       string `json:"type"`
	RoomID     string `json:"roomId,omitempty"`
	QuestionID uint   `json:"questionId,omitempty"`
}

// Hub fans events out to the connections subscribed to a room. Sends
// are best effort: a failed write drops the connection and the client
// falls back to polling.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*websocket.Conn]bool),
	}
}

func (h *Hub) Join(roomCode string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[roomCode] == nil {
		h.rooms[roomCode] = make(map[*websocket.Conn]bool)
	}
	h.rooms[roomCode][conn] = true
	log.Printf("ws: client joined room %s (total: %d)", roomCode, len(h.rooms[roomCode]))
}

func (h *Hub) Leave(roomCode string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.rooms[roomCode]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.rooms, roomCode)
		}
		log.Printf("ws: client left room %s", roomCode)
	}
}

// Broadcast takes the write lock because it prunes dead connections.
func (h *Hub) Broadcast(roomCode string, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.rooms[roomCode]
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			conn.Close()
			delete(conns, conn)
		}
	}
}

// NewQuestion and RevealReady let the hub stand in as the services
// layer's notifier.

func (h *Hub) NewQuestion(roomCode string, questionID uint) {
	h.Broadcast(roomCode, Event{Type: EventNewQuestion, QuestionID: questionID})
}

func (h *Hub) RevealReady(roomCode string, questionID uint) {
	h.Broadcast(roomCode, Event{Type: EventReadyToReveal, QuestionID: questionID})
}
