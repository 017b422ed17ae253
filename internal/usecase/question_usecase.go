package usecase

import (
	"errors"
	"strings"

	"github.com/Prateeks16/interview-pilot/internal/apperr"
	"github.com/Prateeks16/interview-pilot/internal/dto"
	"github.com/Prateeks16/interview-pilot/internal/middleware"
	"github.com/Prateeks16/interview-pilot/internal/model"
	"github.com/Prateeks16/interview-pilot/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuestionUsecase covers recruiter question authoring plus the explicit
// generation trigger. Resume-sourced questions also arrive through the
// background runner when a resume is uploaded.
type QuestionUsecase struct {
	interviewRepo *repository.InterviewRepository
	enqueuer      GenerationEnqueuer
	logger        *zap.Logger
}

func NewQuestionUsecase(interviewRepo *repository.InterviewRepository, enqueuer GenerationEnqueuer, logger *zap.Logger) *QuestionUsecase {
	return &QuestionUsecase{interviewRepo: interviewRepo, enqueuer: enqueuer, logger: logger}
}

func (uc *QuestionUsecase) ownedInterview(actorID uuid.UUID, actorRole string, interviewID uuid.UUID) (*model.Interview, error) {
	interview, err := uc.interviewRepo.FindByID(interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("interview not found")
		}
		return nil, err
	}
	if actorRole != middleware.RoleAdmin && interview.CreatedBy != actorID {
		return nil, apperr.Forbidden("not allowed to manage questions for this interview")
	}
	return interview, nil
}

// Add creates a manually authored question on the recruiter's interview.
func (uc *QuestionUsecase) Add(actorID uuid.UUID, actorRole string, interviewID uuid.UUID, questionText, category, difficulty string) (*model.Question, error) {
	interview, err := uc.ownedInterview(actorID, actorRole, interviewID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(questionText) == "" {
		return nil, apperr.Invalid("question_text is required")
	}

	question := &model.Question{
		InterviewID:  interview.ID,
		QuestionText: questionText,
		Category:     category,
		Difficulty:   difficulty,
		Source:       model.QuestionSourceManual,
		CreatedBy:    actorID,
	}
	if err := uc.interviewRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

// List returns the interview's questions. Recruiters see only their own
// interviews; candidates may list any existing interview's questions.
func (uc *QuestionUsecase) List(actorID uuid.UUID, actorRole string, interviewID uuid.UUID) ([]model.Question, error) {
	interview, err := uc.interviewRepo.FindByID(interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("interview not found")
		}
		return nil, err
	}
	if actorRole == middleware.RoleRecruiter && interview.CreatedBy != actorID {
		return nil, apperr.Forbidden("not allowed to access this interview")
	}
	return uc.interviewRepo.FindQuestions(interview.ID)
}

// Update patches the given fields; empty fields are left unchanged.
func (uc *QuestionUsecase) Update(actorID uuid.UUID, actorRole string, interviewID, questionID uuid.UUID, patch dto.QuestionPatchDTO) (*model.Question, error) {
	if _, err := uc.ownedInterview(actorID, actorRole, interviewID); err != nil {
		return nil, err
	}

	question, err := uc.interviewRepo.FindQuestionInInterview(interviewID, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("question not found")
		}
		return nil, err
	}

	if patch.QuestionText != nil {
		question.QuestionText = *patch.QuestionText
	}
	if patch.Category != nil {
		question.Category = *patch.Category
	}
	if patch.Difficulty != nil {
		question.Difficulty = *patch.Difficulty
	}
	if err := uc.interviewRepo.SaveQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

// Delete removes one question from the recruiter's interview.
func (uc *QuestionUsecase) Delete(actorID uuid.UUID, actorRole string, interviewID, questionID uuid.UUID) error {
	if _, err := uc.ownedInterview(actorID, actorRole, interviewID); err != nil {
		return err
	}
	question, err := uc.interviewRepo.FindQuestionInInterview(interviewID, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("question not found")
		}
		return err
	}
	return uc.interviewRepo.DeleteQuestion(question.ID)
}

// GenerateFromResume enqueues a background generation run without a fresh
// upload. The interview must already hold resume text.
func (uc *QuestionUsecase) GenerateFromResume(actorID uuid.UUID, actorRole string, interviewID uuid.UUID) (uuid.UUID, error) {
	interview, err := uc.ownedInterview(actorID, actorRole, interviewID)
	if err != nil {
		return uuid.Nil, err
	}
	if strings.TrimSpace(interview.ResumeText) == "" {
		return uuid.Nil, apperr.Invalid("resume not uploaded yet")
	}

	taskID, err := uc.enqueuer.Enqueue(interview.ID)
	if err != nil {
		return uuid.Nil, err
	}
	uc.logger.Info("generation triggered",
		zap.String("interview_id", interview.ID.String()),
		zap.String("task_id", taskID.String()))
	return taskID, nil
}
