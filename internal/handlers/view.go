package handlers

import (
	"net/http"

	"github.com/noahfaas/relationship-y/internal/services"

	"github.com/gin-gonic/gin"
)

type ViewHandler struct {
	rooms       *services.RoomService
	projections *services.ProjectionService
}

func NewViewHandler(rooms *services.RoomService, projections *services.ProjectionService) *ViewHandler {
	return &ViewHandler{rooms: rooms, projections: projections}
}

// Inbox godoc
// @Summary      Inbox
// @Description  Questions the other participant answered and this one has not
// @Tags         views
// @Produce      json
// @Param        code path string true "Room code"
// @Param        participant query string true "Participant token"
// @Success      200 {array} Question
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/inbox [get]
func (h *ViewHandler) Inbox(c *gin.Context) {
	room, err := h.rooms.GetByCode(c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	questions, err := h.projections.Inbox(room.ID, c.Query("participant"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// History godoc
// @Summary      History
// @Description  Questions whose answers both participants may now reveal
// @Tags         views
// @Produce      json
// @Param        code path string true "Room code"
// @Success      200 {array} Question
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/history [get]
func (h *ViewHandler) History(c *gin.Context) {
	room, err := h.rooms.GetByCode(c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	questions, err := h.projections.History(room.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}
