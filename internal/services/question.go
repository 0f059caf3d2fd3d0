package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/noahfaas/relationship-y/internal/models"

	"gorm.io/gorm"
)

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

// Ask appends a question to the room's sequence. Questions are
// immutable once written.
func (s *QuestionService) Ask(roomID uint, text string) (*models.Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if utf8.RuneCountInString(text) > models.MaxQuestionRunes {
		return nil, ErrTextTooLong
	}
	question := models.Question{RoomID: roomID, Text: text}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// AskRandom appends a bank prompt that has not been asked in this room
// yet, falling back to any prompt once the room has seen them all.
func (s *QuestionService) AskRandom(roomID uint) (*models.Question, error) {
	text, err := randomPrompt(s.db, roomID)
	if err != nil {
		return nil, err
	}
	return s.Ask(roomID, text)
}

// Current returns the latest question of the room. Insertion order
// breaks creation-time ties.
func (s *QuestionService) Current(roomID uint) (*models.Question, error) {
	var question models.Question
	err := s.db.Where("room_id = ?", roomID).
		Order("created_at DESC, id DESC").
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoQuestion
		}
		return nil, err
	}
	return &question, nil
}

func (s *QuestionService) ByID(questionID uint) (*models.Question, error) {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &question, nil
}
