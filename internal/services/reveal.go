package services

import (
	"github.com/noahfaas/relationship-y/internal/models"

	"gorm.io/gorm"
)

// Notifier is the push side of reveal coordination. The WebSocket hub
// implements it; tests substitute their own.
type Notifier interface {
	NewQuestion(roomCode string, questionID uint)
	RevealReady(roomCode string, questionID uint)
}

// RevealCoordinator derives reveal readiness from the answer ledger.
// There is no stored reveal flag anywhere; readiness is recomputed from
// the records every time, so the push and poll paths can never drift.
type RevealCoordinator struct {
	db  *gorm.DB
	bus Notifier
}

func NewRevealCoordinator(db *gorm.DB, bus Notifier) *RevealCoordinator {
	return &RevealCoordinator{db: db, bus: bus}
}

// Ready reports whether a question has answers from at least two
// distinct participants.
func (c *RevealCoordinator) Ready(questionID uint) (bool, error) {
	count, err := c.distinctCount(questionID)
	if err != nil {
		return false, err
	}
	return count >= 2, nil
}

// Observe runs after an answer insert lands. It recomputes the distinct
// participant count from the ledger and pushes readyToReveal iff this
// record moved the count across the reveal threshold. Two racing
// submissions may both see the crossing; delivery is at-least-once and
// clients treat the event as a hint to re-fetch.
func (c *RevealCoordinator) Observe(record *models.AnswerRecord) (bool, error) {
	after, err := c.distinctCount(record.QuestionID)
	if err != nil {
		return false, err
	}
	if after < 2 {
		return false, nil
	}
	var prior int64
	err = c.db.Model(&models.AnswerRecord{}).
		Where("question_id = ? AND participant_id = ? AND id < ?",
			record.QuestionID, record.ParticipantID, record.ID).
		Count(&prior).Error
	if err != nil {
		return false, err
	}
	before := after
	if prior == 0 {
		before--
	}
	if before >= 2 {
		return false, nil
	}
	code, err := c.roomCode(record.QuestionID)
	if err != nil {
		return false, err
	}
	c.bus.RevealReady(code, record.QuestionID)
	return true, nil
}

func (c *RevealCoordinator) distinctCount(questionID uint) (int, error) {
	var count int64
	err := c.db.Model(&models.AnswerRecord{}).
		Where("question_id = ?", questionID).
		Distinct("participant_id").
		Count(&count).Error
	return int(count), err
}

func (c *RevealCoordinator) roomCode(questionID uint) (string, error) {
	var question models.Question
	if err := c.db.First(&question, questionID).Error; err != nil {
		return "", err
	}
	var room models.Room
	if err := c.db.First(&room, question.RoomID).Error; err != nil {
		return "", err
	}
	return room.Code, nil
}
