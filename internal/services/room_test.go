package services

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/noahfaas/relationship-y/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	err = db.AutoMigrate(
		&models.Curator{},
		&models.Room{},
		&models.Question{},
		&models.AnswerRecord{},
		&models.BankQuestion{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedBank(t *testing.T, db *gorm.DB, texts ...string) {
	t.Helper()
	for _, text := range texts {
		if err := db.Create(&models.BankQuestion{Text: text}).Error; err != nil {
			t.Fatalf("seed bank: %v", err)
		}
	}
}

func mustRoom(t *testing.T, db *gorm.DB, code string) models.Room {
	t.Helper()
	room := models.Room{Code: code}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("create room: %v", err)
	}
	return room
}

func mustQuestion(t *testing.T, db *gorm.DB, roomID uint, text string) models.Question {
	t.Helper()
	question := models.Question{RoomID: roomID, Text: text}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}
	return question
}

func TestCreateRoomSeedsInitialQuestion(t *testing.T) {
	db := newTestDB(t)
	seedBank(t, db, "prompt one", "prompt two")

	result, err := NewRoomService(db).Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(result.Room.Code) != codeLen {
		t.Fatalf("expected a %d-char code, got %q", codeLen, result.Room.Code)
	}
	for _, r := range result.Room.Code {
		if !strings.ContainsRune(codeAlphabet, r) {
			t.Fatalf("code %q contains %q, which is outside the alphabet", result.Room.Code, r)
		}
	}

	if result.InitialQuestion.RoomID != result.Room.ID {
		t.Fatalf("initial question belongs to room %d, want %d", result.InitialQuestion.RoomID, result.Room.ID)
	}
	if result.InitialQuestion.Text != "prompt one" && result.InitialQuestion.Text != "prompt two" {
		t.Fatalf("initial question text %q is not from the bank", result.InitialQuestion.Text)
	}

	current, err := NewQuestionService(db).Current(result.Room.ID)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if current.ID != result.InitialQuestion.ID {
		t.Fatalf("current question = %d, want the initial question %d", current.ID, result.InitialQuestion.ID)
	}
}

func TestCreateRoomEmptyBankRollsBack(t *testing.T) {
	db := newTestDB(t)

	_, err := NewRoomService(db).Create()
	if !errors.Is(err, ErrBankEmpty) {
		t.Fatalf("expected ErrBankEmpty, got %v", err)
	}

	// The room insert must not survive the failed transaction.
	var rooms int64
	if err := db.Model(&models.Room{}).Count(&rooms).Error; err != nil {
		t.Fatalf("count rooms: %v", err)
	}
	if rooms != 0 {
		t.Fatalf("expected 0 rooms after rollback, got %d", rooms)
	}
}

func TestGetByCodeNormalizes(t *testing.T) {
	db := newTestDB(t)
	mustRoom(t, db, "AB2CD3")
	svc := NewRoomService(db)

	for _, code := range []string{"AB2CD3", "ab2cd3", "  ab2Cd3\n"} {
		room, err := svc.GetByCode(code)
		if err != nil {
			t.Fatalf("GetByCode(%q): %v", code, err)
		}
		if room.Code != "AB2CD3" {
			t.Fatalf("GetByCode(%q) resolved %q", code, room.Code)
		}
	}

	if _, err := svc.GetByCode("ZZZZZZ"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestCreateAllocatesDistinctCodes(t *testing.T) {
	db := newTestDB(t)
	seedBank(t, db, "prompt")
	svc := NewRoomService(db)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		result, err := svc.Create()
		if err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
		if seen[result.Room.Code] {
			t.Fatalf("code %q allocated twice", result.Room.Code)
		}
		seen[result.Room.Code] = true
	}
}
