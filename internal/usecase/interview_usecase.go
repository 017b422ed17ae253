package usecase

import (
	"errors"

	"github.com/Prateeks16/interview-pilot/internal/apperr"
	"github.com/Prateeks16/interview-pilot/internal/middleware"
	"github.com/Prateeks16/interview-pilot/internal/model"
	"github.com/Prateeks16/interview-pilot/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GenerationEnqueuer hands question-generation work to the background
// runner. The caller gets a task id back and polls for the outcome.
type GenerationEnqueuer interface {
	Enqueue(interviewID uuid.UUID) (uuid.UUID, error)
}

type InterviewUsecase struct {
	interviewRepo *repository.InterviewRepository
	enqueuer      GenerationEnqueuer
	logger        *zap.Logger
}

func NewInterviewUsecase(interviewRepo *repository.InterviewRepository, enqueuer GenerationEnqueuer, logger *zap.Logger) *InterviewUsecase {
	return &InterviewUsecase{interviewRepo: interviewRepo, enqueuer: enqueuer, logger: logger}
}

func (uc *InterviewUsecase) Create(recruiterID uuid.UUID, title, description, jobDescription string) (*model.Interview, error) {
	interview := &model.Interview{
		Title:          title,
		Description:    description,
		JobDescription: jobDescription,
		ShareToken:     uuid.NewString(),
		CreatedBy:      recruiterID,
	}
	if err := uc.interviewRepo.Create(interview); err != nil {
		return nil, err
	}
	uc.logger.Info("interview created",
		zap.String("interview_id", interview.ID.String()),
		zap.String("recruiter_id", recruiterID.String()))
	return interview, nil
}

// Get returns the interview. Recruiters only see their own; candidates may
// see any existing interview they were pointed at.
func (uc *InterviewUsecase) Get(actorID uuid.UUID, actorRole string, id uuid.UUID) (*model.Interview, error) {
	interview, err := uc.interviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("interview not found")
		}
		return nil, err
	}
	if actorRole == middleware.RoleRecruiter && interview.CreatedBy != actorID {
		return nil, apperr.Forbidden("not allowed to access this interview")
	}
	return interview, nil
}

func (uc *InterviewUsecase) GetByToken(actorID uuid.UUID, actorRole string, token string) (*model.Interview, error) {
	interview, err := uc.interviewRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("invalid interview link")
		}
		return nil, err
	}
	if actorRole == middleware.RoleRecruiter && interview.CreatedBy != actorID {
		return nil, apperr.Forbidden("not allowed to access this interview")
	}
	return interview, nil
}

// Delete removes the interview and cascades to its questions and their
// answers. Only the owning recruiter may delete.
func (uc *InterviewUsecase) Delete(actorID uuid.UUID, actorRole string, id uuid.UUID) error {
	interview, err := uc.interviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("interview not found")
		}
		return err
	}
	if actorRole != middleware.RoleAdmin &&
		(actorRole != middleware.RoleRecruiter || interview.CreatedBy != actorID) {
		return apperr.Forbidden("not authorized to delete this interview")
	}
	if err := uc.interviewRepo.Delete(id); err != nil {
		return err
	}
	uc.logger.Info("interview deleted", zap.String("interview_id", id.String()))
	return nil
}

// AttachResume mirrors the extracted resume text onto the interview (last
// write wins) and enqueues background question generation.
func (uc *InterviewUsecase) AttachResume(token, resumeText string) (*model.Interview, uuid.UUID, error) {
	interview, err := uc.interviewRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, apperr.NotFound("invalid interview link")
		}
		return nil, uuid.Nil, err
	}

	if err := uc.interviewRepo.UpdateResumeText(interview.ID, resumeText); err != nil {
		return nil, uuid.Nil, err
	}
	interview.ResumeText = resumeText

	taskID, err := uc.enqueuer.Enqueue(interview.ID)
	if err != nil {
		return nil, uuid.Nil, err
	}

	uc.logger.Info("resume attached, generation enqueued",
		zap.String("interview_id", interview.ID.String()),
		zap.String("task_id", taskID.String()))
	return interview, taskID, nil
}
