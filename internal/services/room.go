package services

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/noahfaas/relationship-y/internal/models"

	"gorm.io/gorm"
)

// codeAlphabet leaves out I, L, O, 0 and 1 so codes survive being read
// aloud or typed from a photo.
const (
	codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	codeLen      = 6
)

type RoomService struct {
	db *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{db: db}
}

type RoomCreateResult struct {
	Room            models.Room     `json:"room"`
	InitialQuestion models.Question `json:"initial_question"`
}

// Create provisions a room together with its first question, drawn from
// the bank, so there is never a room without a current question.
func (s *RoomService) Create() (*RoomCreateResult, error) {
	var result RoomCreateResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		code, err := generateCode(tx)
		if err != nil {
			return err
		}
		result.Room = models.Room{Code: code}
		if err := tx.Create(&result.Room).Error; err != nil {
			return err
		}
		text, err := randomPrompt(tx, result.Room.ID)
		if err != nil {
			return err
		}
		result.InitialQuestion = models.Question{RoomID: result.Room.ID, Text: text}
		return tx.Create(&result.InitialQuestion).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByCode resolves a room code case-insensitively.
func (s *RoomService) GetByCode(code string) (*models.Room, error) {
	var room models.Room
	if err := s.db.Where("code = ?", normalizeCode(code)).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func generateCode(db *gorm.DB) (string, error) {
	for attempts := 0; attempts < 100; attempts++ {
		b := make([]byte, codeLen)
		for i := range b {
			b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
		}
		code := string(b)
		var count int64
		if err := db.Model(&models.Room{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not allocate a unique room code")
}
