package repository

import (
	"time"

	"github.com/Prateeks16/interview-pilot/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db}
}

func (r *TaskRepository) Create(task *model.GenerationTask) error {
	return r.db.Create(task).Error
}

func (r *TaskRepository) FindByID(id uuid.UUID) (*model.GenerationTask, error) {
	var task model.GenerationTask
	err := r.db.First(&task, "id = ?", id).Error
	return &task, err
}

func (r *TaskRepository) MarkRunning(id uuid.UUID) error {
	now := time.Now().UTC()
	return r.db.Model(&model.GenerationTask{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     model.GenerationTaskStatusRunning,
			"started_at": now,
		}).Error
}

func (r *TaskRepository) MarkSucceeded(id uuid.UUID, questionCount int) error {
	now := time.Now().UTC()
	return r.db.Model(&model.GenerationTask{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         model.GenerationTaskStatusSucceeded,
			"question_count": questionCount,
			"finished_at":    now,
		}).Error
}

func (r *TaskRepository) MarkFailed(id uuid.UUID, reason string) error {
	now := time.Now().UTC()
	return r.db.Model(&model.GenerationTask{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      model.GenerationTaskStatusFailed,
			"fail_reason": reason,
			"finished_at": now,
		}).Error
}
