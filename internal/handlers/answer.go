package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/noahfaas/relationship-y/internal/services"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	answers     *services.AnswerService
	coordinator *services.RevealCoordinator
}

func NewAnswerHandler(answers *services.AnswerService, coordinator *services.RevealCoordinator) *AnswerHandler {
	return &AnswerHandler{answers: answers, coordinator: coordinator}
}

// SubmitAnswerRequest carries one sealed envelope. The byte fields
// travel as base64 strings; the server never decrypts them.
type SubmitAnswerRequest struct {
	ParticipantID string `json:"participant_id" binding:"required"`
	Ciphertext    []byte `json:"ciphertext" binding:"required"`
	IV            []byte `json:"iv" binding:"required"`
	Salt          []byte `json:"salt" binding:"required"`
}

// SubmitAnswer godoc
// @Summary      Submit an encrypted answer
// @Description  Append an encrypted answer record; resubmission supersedes the previous one
// @Tags         answers
// @Accept       json
// @Produce      json
// @Param        id path int true "Question ID"
// @Param        request body SubmitAnswerRequest true "Encrypted answer"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id}/answers [post]
func (h *AnswerHandler) SubmitAnswer(c *gin.Context) {
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	record, err := h.answers.Append(uint(questionID), req.ParticipantID, req.Ciphertext, req.IV, req.Salt)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Push delivery is best effort; the poll path picks up whatever a
	// lost event would have told the client.
	fired, err := h.coordinator.Observe(record)
	if err != nil {
		log.Printf("reveal: observe question %d: %v", record.QuestionID, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"record":           record,
		"reveal_triggered": fired,
	})
}

// GetAnswers godoc
// @Summary      Get collapsed answers
// @Description  Latest record per participant plus the distinct participant count
// @Tags         answers
// @Produce      json
// @Param        id path int true "Question ID"
// @Success      200 {object} services.CollapsedAnswers
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id}/answers [get]
func (h *AnswerHandler) GetAnswers(c *gin.Context) {
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	collapsed, err := h.answers.Collapse(uint(questionID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, collapsed)
}
