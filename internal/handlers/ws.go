package handlers

import (
	"log"
	"net/http"

	"github.com/noahfaas/relationship-y/internal/services"
	"github.com/noahfaas/relationship-y/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub   *ws.Hub
	rooms *services.RoomService
}

func NewWSHandler(hub *ws.Hub, rooms *services.RoomService) *WSHandler {
	return &WSHandler{hub: hub, rooms: rooms}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket godoc
// @Summary      Push channel
// @Description  Connect, send {"type":"join","roomId":CODE}, then receive newQuestion and readyToReveal hints
// @Tags         websocket
// @Router       /ws [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	// The first frame must be a join naming the room by code.
	var join ws.Event
	if err := conn.ReadJSON(&join); err != nil {
		return
	}
	if join.Type != ws.EventJoin || join.RoomID == "" {
		conn.WriteJSON(ws.Event{Type: ws.EventError})
		return
	}

	room, err := h.rooms.GetByCode(join.RoomID)
	if err != nil {
		conn.WriteJSON(ws.Event{Type: ws.EventError})
		return
	}

	// Register before acking so a client that acts on the ack cannot
	// miss a broadcast.
	h.hub.Join(room.Code, conn)
	defer h.hub.Leave(room.Code, conn)

	if err := conn.WriteJSON(ws.Event{Type: ws.EventJoined, RoomID: room.Code}); err != nil {
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
