package models

import "time"

// MaxQuestionRunes bounds question text length in Unicode code points.
const MaxQuestionRunes = 2000

type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    uint      `gorm:"not null;index:idx_question_order" json:"room_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index:idx_question_order" json:"created_at"`
}
