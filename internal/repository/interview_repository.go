package repository

import (
	"github.com/Prateeks16/interview-pilot/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InterviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{db}
}

func (r *InterviewRepository) Create(interview *model.Interview) error {
	return r.db.Create(interview).Error
}

func (r *InterviewRepository) FindByID(id uuid.UUID) (*model.Interview, error) {
	var interview model.Interview
	err := r.db.First(&interview, "id = ?", id).Error
	return &interview, err
}

func (r *InterviewRepository) FindByToken(token string) (*model.Interview, error) {
	var interview model.Interview
	err := r.db.First(&interview, "share_token = ?", token).Error
	return &interview, err
}

// UpdateResumeText mirrors the latest uploaded resume onto the interview,
// last write wins.
func (r *InterviewRepository) UpdateResumeText(id uuid.UUID, text string) error {
	return r.db.Model(&model.Interview{}).
		Where("id = ?", id).
		Update("resume_text", text).Error
}

// Delete removes the interview together with its questions and their
// answers in one transaction. Sessions are left alone on purpose: they do
// not reference the interview.
func (r *InterviewRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&model.Question{}).Select("id").Where("interview_id = ?", id)
		if err := tx.Where("question_id IN (?)", sub).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("interview_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Interview{}, "id = ?", id).Error
	})
}

func (r *InterviewRepository) CreateQuestion(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *InterviewRepository) CreateQuestions(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Create(&questions).Error
}

func (r *InterviewRepository) FindQuestions(interviewID uuid.UUID) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("interview_id = ?", interviewID).
		Order("created_at").
		Find(&questions).Error
	return questions, err
}

func (r *InterviewRepository) FindQuestionByID(id uuid.UUID) (*model.Question, error) {
	var question model.Question
	err := r.db.First(&question, "id = ?", id).Error
	return &question, err
}

func (r *InterviewRepository) FindQuestionInInterview(interviewID, questionID uuid.UUID) (*model.Question, error) {
	var question model.Question
	err := r.db.First(&question, "id = ? AND interview_id = ?", questionID, interviewID).Error
	return &question, err
}

func (r *InterviewRepository) SaveQuestion(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *InterviewRepository) DeleteQuestion(id uuid.UUID) error {
	return r.db.Delete(&model.Question{}, "id = ?", id).Error
}
