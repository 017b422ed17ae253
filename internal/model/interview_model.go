package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Interview is a recruiter-authored interview template. Candidates reach it
// through the share token, never by guessing ids.
type Interview struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string    `gorm:"size:255" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	JobDescription string    `gorm:"type:text" json:"job_description"`
	ResumeText     string    `gorm:"type:text" json:"resume_text"`
	ShareToken     string    `gorm:"size:64;uniqueIndex" json:"share_token"`
	CreatedBy      uuid.UUID `gorm:"type:uuid;index" json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

const (
	QuestionSourceResume = "resume"
	QuestionSourceManual = "manual"
)

type Question struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InterviewID  uuid.UUID `gorm:"type:uuid;index" json:"interview_id"`
	QuestionText string    `gorm:"type:text" json:"question_text"`
	Category     string    `gorm:"size:100" json:"category"`
	Difficulty   string    `gorm:"size:50" json:"difficulty"`
	Source       string    `gorm:"size:50;default:manual" json:"source"`
	CreatedBy    uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
