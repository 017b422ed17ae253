package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type JobPosting struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string          `gorm:"size:255" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Skills      string          `gorm:"type:text" json:"skills"`
	Salary      string          `gorm:"size:100" json:"salary"`
	Embedding   pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid;index" json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (j *JobPosting) TableName() string {
	return "job_postings"
}

func (j *JobPosting) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
