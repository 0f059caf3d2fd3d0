package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/noahfaas/relationship-y/internal/models"
	"github.com/noahfaas/relationship-y/internal/services"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type Room = models.Room
type Question = models.Question
type AnswerRecord = models.AnswerRecord
type BankQuestion = models.BankQuestion

// respondServiceError translates service sentinels into statuses.
// Unknown errors are storage failures: log, answer 500, reveal nothing.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrNoQuestion),
		errors.Is(err, services.ErrPromptNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrEmptyText),
		errors.Is(err, services.ErrTextTooLong),
		errors.Is(err, services.ErrBadParticipant),
		errors.Is(err, services.ErrBadEnvelope),
		errors.Is(err, services.ErrBankEmpty),
		errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		log.Printf("handler: %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
