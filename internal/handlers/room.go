package handlers

import (
	"fmt"
	"net/http"

	"github.com/noahfaas/relationship-y/internal/models"
	"github.com/noahfaas/relationship-y/internal/services"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

type RoomHandler struct {
	rooms     *services.RoomService
	questions *services.QuestionService
	answers   *services.AnswerService
}

func NewRoomHandler(rooms *services.RoomService, questions *services.QuestionService, answers *services.AnswerService) *RoomHandler {
	return &RoomHandler{rooms: rooms, questions: questions, answers: answers}
}

// CreateRoom godoc
// @Summary      Create a room
// @Description  Provision a new room with its code and initial question
// @Tags         rooms
// @Produce      json
// @Success      201 {object} services.RoomCreateResult
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/rooms [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	result, err := h.rooms.Create()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetRoom godoc
// @Summary      Get a room
// @Description  Room info plus its current question, resolved by code
// @Tags         rooms
// @Produce      json
// @Param        code path string true "Room code"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rooms/{code} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.rooms.GetByCode(c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	question, err := h.questions.Current(room.ID)
	if err != nil && err != services.ErrNoQuestion {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room":             room,
		"current_question": question,
	})
}

// SnapshotResponse is what the poll path reads. Everything in it is
// derived from the ledgers on each request.
type SnapshotResponse struct {
	Question      *models.Question `json:"question,omitempty"`
	DistinctCount int              `json:"distinct_count"`
	RevealReady   bool             `json:"reveal_ready"`
	AnsweredByMe  bool             `json:"answered_by_me"`
}

// Snapshot godoc
// @Summary      Poll snapshot
// @Description  Current question and reveal state for clients without a push channel
// @Tags         rooms
// @Produce      json
// @Param        code path string true "Room code"
// @Param        participant query string false "Participant token"
// @Success      200 {object} SnapshotResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/snapshot [get]
func (h *RoomHandler) Snapshot(c *gin.Context) {
	room, err := h.rooms.GetByCode(c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var snapshot SnapshotResponse
	question, err := h.questions.Current(room.ID)
	if err == services.ErrNoQuestion {
		c.JSON(http.StatusOK, snapshot)
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	snapshot.Question = question

	collapsed, err := h.answers.Collapse(question.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	snapshot.DistinctCount = collapsed.DistinctCount
	snapshot.RevealReady = collapsed.DistinctCount >= 2

	if participant := c.Query("participant"); participant != "" {
		for _, record := range collapsed.Records {
			if record.ParticipantID == participant {
				snapshot.AnsweredByMe = true
				break
			}
		}
	}

	c.JSON(http.StatusOK, snapshot)
}

// RoomQR godoc
// @Summary      Room invite QR code
// @Tags         rooms
// @Produce      png
// @Param        code path string true "Room code"
// @Success      200 {string} binary "PNG image"
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/qr [get]
func (h *RoomHandler) RoomQR(c *gin.Context) {
	room, err := h.rooms.GetByCode(c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	url := fmt.Sprintf("http://%s/join/%s", c.Request.Host, room.Code)
	png, err := qrcode.Encode(url, qrcode.Medium, 320)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
