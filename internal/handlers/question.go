package handlers

import (
	"net/http"

	"github.com/noahfaas/relationship-y/internal/services"
	"github.com/noahfaas/relationship-y/internal/ws"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	rooms     *services.RoomService
	questions *services.QuestionService
	hub       *ws.Hub
}

func NewQuestionHandler(rooms *services.RoomService, questions *services.QuestionService, hub *ws.Hub) *QuestionHandler {
	return &QuestionHandler{rooms: rooms, questions: questions, hub: hub}
}

type AskQuestionRequest struct {
	Text string `json:"text" binding:"required" example:"What was our best day together?"`
}

// AskQuestion godoc
// @Summary      Ask a question
// @Description  Append a new question to the room; it becomes the current question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        code path string true "Room code"
// @Param        request body AskQuestionRequest true "Question text"
// @Success      201 {object} Question
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/questions [post]
func (h *QuestionHandler) AskQuestion(c *gin.Context) {
	room, err := h.rooms.GetByCode(c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req AskQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questions.Ask(room.ID, req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.NewQuestion(room.Code, question.ID)

	c.JSON(http.StatusCreated, question)
}

// AskRandomQuestion godoc
// @Summary      Ask a random question
// @Description  Append a bank prompt the room has not seen yet
// @Tags         questions
// @Produce      json
// @Param        code path string true "Room code"
// @Success      201 {object} Question
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/questions/random [post]
func (h *QuestionHandler) AskRandomQuestion(c *gin.Context) {
	room, err := h.rooms.GetByCode(c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	question, err := h.questions.AskRandom(room.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.NewQuestion(room.Code, question.ID)

	c.JSON(http.StatusCreated, question)
}

// CurrentQuestion godoc
// @Summary      Current question
// @Tags         questions
// @Produce      json
// @Param        code path string true "Room code"
// @Success      200 {object} Question
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/questions/current [get]
func (h *QuestionHandler) CurrentQuestion(c *gin.Context) {
	room, err := h.rooms.GetByCode(c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	question, err := h.questions.Current(room.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}
