package models

import "time"

// Curator is a question-bank maintainer. Curators are not participants
// and never see room content; the account only gates bank management.
type Curator struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
