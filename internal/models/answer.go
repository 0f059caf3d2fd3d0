package models

import "time"

// Answer payload bounds. The server never inspects ciphertext, it only
// refuses records that could not have come from a well-behaved client.
const (
	MaxParticipantLen = 64
	MaxCiphertextLen  = 64 * 1024
	IVLen             = 12
	SaltLen           = 16
)

// AnswerRecord is one encrypted submission. Records are append-only: a
// later record for the same (question, participant) supersedes earlier
// ones, but nothing is ever updated or deleted.
type AnswerRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	QuestionID    uint      `gorm:"not null;index:idx_answer_order" json:"question_id"`
	ParticipantID string    `gorm:"size:64;not null;index" json:"participant_id"`
	Ciphertext    []byte    `gorm:"not null" json:"ciphertext"`
	IV            []byte    `gorm:"not null" json:"iv"`
	Salt          []byte    `gorm:"not null" json:"salt"`
	CreatedAt     time.Time `gorm:"index:idx_answer_order" json:"created_at"`
}
