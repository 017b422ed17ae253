package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GenerationTaskStatusQueued    = "queued"
	GenerationTaskStatusRunning   = "running"
	GenerationTaskStatusSucceeded = "succeeded"
	GenerationTaskStatusFailed    = "failed"
)

// GenerationTask tracks one background question-generation run. State lives
// in the database rather than in the worker so polling survives restarts.
type GenerationTask struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	InterviewID   uuid.UUID  `gorm:"type:uuid;index" json:"interview_id"`
	Status        string     `gorm:"size:50;default:queued" json:"status"`
	QuestionCount int        `json:"question_count"`
	FailReason    string     `gorm:"size:512" json:"fail_reason"`
	StartedAt     *time.Time `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (t *GenerationTask) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
