package database

import (
	"fmt"
	"log"

	"github.com/noahfaas/relationship-y/internal/config"
	"github.com/noahfaas/relationship-y/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBPath)
	default:
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
		)
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	log.Println("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Curator{},
		&models.Room{},
		&models.Question{},
		&models.AnswerRecord{},
		&models.BankQuestion{},
	)
	if err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}
	log.Println("database migrated")
}

// starterPrompts keep askRandomQuestion useful on a fresh install until
// curators grow the bank.
var starterPrompts = []string{
	"What was your first impression of me?",
	"What is a small thing I do that you secretly love?",
	"Where should we travel together next, and why there?",
	"What song reminds you of us?",
	"What is one thing you have never told me about your childhood?",
	"If we had a free day tomorrow, how would you want to spend it?",
	"What meal could I cook that would make your whole week?",
	"What do you think was our best day together so far?",
	"What is one fear you would like us to face together?",
	"Which habit of ours do you hope we never lose?",
	"What did you think the moment after our first kiss?",
	"What is something you admire about me that you rarely say out loud?",
	"If we wrote a book about us, what would the title be?",
	"What does home feel like to you?",
	"What tiny moment with me do you replay in your head?",
	"What should we celebrate more often?",
}

// SeedBank is idempotent; re-running it never duplicates prompts.
func SeedBank(db *gorm.DB) {
	for _, text := range starterPrompts {
		prompt := models.BankQuestion{Text: text}
		if err := db.Where("text = ?", text).FirstOrCreate(&prompt).Error; err != nil {
			log.Printf("seed: %v", err)
		}
	}
}
