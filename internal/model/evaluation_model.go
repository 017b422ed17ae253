package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EvaluationJobStatusPending      = "pending"
	EvaluationJobStatusAcknowledged = "acknowledged"
	EvaluationJobStatusCompleted    = "completed"
	EvaluationJobStatusFailed       = "failed"
)

// EvaluationJob is the ledger entry for one dispatch to the external scorer.
// The session id doubles as the correlation key for the webhook; rows are
// kept after completion for audit. ActiveKey mirrors the session id while
// the job is non-terminal and is cleared on completion, so the unique index
// admits at most one outstanding job per session.
type EvaluationJob struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID    uuid.UUID  `gorm:"type:uuid;index" json:"session_id"`
	ActiveKey    *string    `gorm:"size:64;uniqueIndex:uq_evaluation_jobs_active" json:"-"`
	Status       string     `gorm:"size:50;default:pending" json:"status"`
	AnswerCount  int        `json:"answer_count"`
	Reference    string     `gorm:"size:255" json:"reference"`
	FailReason   string     `gorm:"size:512" json:"fail_reason"`
	DispatchedAt time.Time  `json:"dispatched_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (j *EvaluationJob) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// PerformanceReview is the terminal evaluation artifact, written exactly once
// per session by the webhook reconciler.
type PerformanceReview struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID    uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"session_id"`
	OverallScore int       `json:"overall_score"`
	Strengths    string    `gorm:"type:text" json:"strengths"`
	Weakness     string    `gorm:"type:text" json:"weakness"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r *PerformanceReview) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
