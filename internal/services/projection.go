package services

import (
	"github.com/noahfaas/relationship-y/internal/models"

	"gorm.io/gorm"
)

// ProjectionService computes the inbox and history views. Both are
// derived from the ledgers at query time; nothing here is stored, so a
// reveal that happened while a client was offline is simply visible on
// the next read.
type ProjectionService struct {
	db *gorm.DB
}

func NewProjectionService(db *gorm.DB) *ProjectionService {
	return &ProjectionService{db: db}
}

// Inbox lists questions waiting on this participant: someone else has
// answered and they have not. Newest first.
func (s *ProjectionService) Inbox(roomID uint, participantID string) ([]models.Question, error) {
	if participantID == "" || len(participantID) > models.MaxParticipantLen {
		return nil, ErrBadParticipant
	}
	var questions []models.Question
	err := s.db.Where("room_id = ?", roomID).
		Where("EXISTS (SELECT 1 FROM answer_records a WHERE a.question_id = questions.id AND a.participant_id <> ?)", participantID).
		Where("NOT EXISTS (SELECT 1 FROM answer_records a WHERE a.question_id = questions.id AND a.participant_id = ?)", participantID).
		Order("created_at DESC, id DESC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// History lists questions whose answers are ready to reveal, i.e. at
// least two distinct participants answered. Newest first.
func (s *ProjectionService) History(roomID uint) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.Where("room_id = ?", roomID).
		Where("(SELECT COUNT(DISTINCT a.participant_id) FROM answer_records a WHERE a.question_id = questions.id) >= 2").
		Order("created_at DESC, id DESC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}
