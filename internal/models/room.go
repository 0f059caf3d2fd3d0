package models

import "time"

type Room struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Code      string     `gorm:"size:6;uniqueIndex;not null" json:"code"`
	Questions []Question `gorm:"foreignKey:RoomID" json:"questions,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
