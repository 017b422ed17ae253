package repository

import (
	"time"

	"github.com/Prateeks16/interview-pilot/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db}
}

func (r *SessionRepository) Create(session *model.Session) error {
	return r.db.Create(session).Error
}

func (r *SessionRepository) FindByID(id uuid.UUID) (*model.Session, error) {
	var session model.Session
	err := r.db.First(&session, "id = ?", id).Error
	return &session, err
}

// Finish sets end_time exactly once. A session already past "started" is
// left untouched and the update reports zero affected rows.
func (r *SessionRepository) Finish(id uuid.UUID, at time.Time) (bool, error) {
	res := r.db.Model(&model.Session{}).
		Where("id = ? AND status = ?", id, model.SessionStatusStarted).
		Updates(map[string]any{
			"status":   model.SessionStatusFinished,
			"end_time": at,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *SessionRepository) CreateAnswer(answer *model.Answer) error {
	return r.db.Create(answer).Error
}

func (r *SessionRepository) FindAnswers(sessionID uuid.UUID) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.Where("session_id = ?", sessionID).
		Order("created_at").
		Find(&answers).Error
	return answers, err
}
