package models

import "time"

// BankQuestion is a curated prompt for askRandomQuestion. The unique
// index on Text keeps re-seeding idempotent.
type BankQuestion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null;uniqueIndex" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
