package services

import (
	"sort"

	"github.com/noahfaas/relationship-y/internal/models"

	"gorm.io/gorm"
)

// AnswerService is the append-only ledger of encrypted submissions.
type AnswerService struct {
	db *gorm.DB
}

func NewAnswerService(db *gorm.DB) *AnswerService {
	return &AnswerService{db: db}
}

// CollapsedAnswers is the read view of a question's ledger: the latest
// record per participant plus the distinct participant count. Both come
// out of the same pass so they can never disagree.
type CollapsedAnswers struct {
	Records       []models.AnswerRecord `json:"records"`
	DistinctCount int                   `json:"distinct_count"`
}

// Append stores one encrypted submission. Resubmissions are always
// accepted; the newer record supersedes without erasing history.
func (s *AnswerService) Append(questionID uint, participantID string, ciphertext, iv, salt []byte) (*models.AnswerRecord, error) {
	if participantID == "" || len(participantID) > models.MaxParticipantLen {
		return nil, ErrBadParticipant
	}
	if len(ciphertext) == 0 || len(ciphertext) > models.MaxCiphertextLen ||
		len(iv) != models.IVLen || len(salt) != models.SaltLen {
		return nil, ErrBadEnvelope
	}
	if err := s.ensureQuestion(questionID); err != nil {
		return nil, err
	}
	record := models.AnswerRecord{
		QuestionID:    questionID,
		ParticipantID: participantID,
		Ciphertext:    ciphertext,
		IV:            iv,
		Salt:          salt,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Collapse reads the full ledger for a question and keeps, per
// participant, the record with the greatest (created_at, id).
func (s *AnswerService) Collapse(questionID uint) (*CollapsedAnswers, error) {
	if err := s.ensureQuestion(questionID); err != nil {
		return nil, err
	}
	var all []models.AnswerRecord
	err := s.db.Where("question_id = ?", questionID).
		Order("created_at ASC, id ASC").
		Find(&all).Error
	if err != nil {
		return nil, err
	}
	latest := make(map[string]models.AnswerRecord, len(all))
	for _, record := range all {
		latest[record.ParticipantID] = record
	}
	records := make([]models.AnswerRecord, 0, len(latest))
	for _, record := range latest {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return &CollapsedAnswers{Records: records, DistinctCount: len(records)}, nil
}

func (s *AnswerService) ensureQuestion(questionID uint) error {
	var count int64
	if err := s.db.Model(&models.Question{}).Where("id = ?", questionID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrQuestionNotFound
	}
	return nil
}
