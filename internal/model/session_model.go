package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SessionStatusStarted   = "started"
	SessionStatusFinished  = "finished"
	SessionStatusEvaluated = "evaluated"
)

// Session is one candidate's attempt at an interview. It deliberately does
// not reference the interview row, so deleting an interview leaves past
// sessions intact.
type Session struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CandidateID uuid.UUID  `gorm:"type:uuid;index" json:"candidate_id"`
	Status      string     `gorm:"size:50;default:started" json:"status"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Answer holds one candidate response within a session. The composite unique
// index rejects a second answer for the same question.
type Answer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID  uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_answers_session_question" json:"session_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_answers_session_question" json:"question_id"`
	AnswerText string    `gorm:"type:text" json:"answer_text"`
	MediaPath  string    `gorm:"size:512" json:"media_path"`
	CreatedAt  time.Time `json:"created_at"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
