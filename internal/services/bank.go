package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/noahfaas/relationship-y/internal/models"

	"gorm.io/gorm"
)

// BankService manages the curated pool of prompts behind
// askRandomQuestion. Curators maintain it; participants only ever see
// prompts that were copied into their room as questions.
type BankService struct {
	db *gorm.DB
}

func NewBankService(db *gorm.DB) *BankService {
	return &BankService{db: db}
}

func (s *BankService) Add(text string) (*models.BankQuestion, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if utf8.RuneCountInString(text) > models.MaxQuestionRunes {
		return nil, ErrTextTooLong
	}
	prompt := models.BankQuestion{Text: text}
	if err := s.db.Where("text = ?", text).FirstOrCreate(&prompt).Error; err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (s *BankService) List() ([]models.BankQuestion, error) {
	var prompts []models.BankQuestion
	if err := s.db.Order("id ASC").Find(&prompts).Error; err != nil {
		return nil, err
	}
	return prompts, nil
}

func (s *BankService) Remove(id uint) error {
	result := s.db.Delete(&models.BankQuestion{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromptNotFound
	}
	return nil
}

// RandomUnasked draws a prompt for the room, preferring text the room
// has not seen.
func (s *BankService) RandomUnasked(roomID uint) (string, error) {
	return randomPrompt(s.db, roomID)
}

// randomPrompt prefers prompts whose text has not been asked in the
// room; once the bank is exhausted any prompt may repeat.
func randomPrompt(db *gorm.DB, roomID uint) (string, error) {
	asked := db.Model(&models.Question{}).Select("text").Where("room_id = ?", roomID)

	var prompt models.BankQuestion
	err := db.Where("text NOT IN (?)", asked).Order("RANDOM()").First(&prompt).Error
	if err == nil {
		return prompt.Text, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	err = db.Order("RANDOM()").First(&prompt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrBankEmpty
	}
	if err != nil {
		return "", err
	}
	return prompt.Text, nil
}
