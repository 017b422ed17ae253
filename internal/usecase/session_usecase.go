package usecase

import (
	"errors"
	"time"

	"github.com/Prateeks16/interview-pilot/internal/apperr"
	"github.com/Prateeks16/interview-pilot/internal/middleware"
	"github.com/Prateeks16/interview-pilot/internal/model"
	"github.com/Prateeks16/interview-pilot/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionUsecase owns the session lifecycle: started -> finished ->
// evaluated. The last transition belongs to the webhook reconciler and is
// never taken here.
type SessionUsecase struct {
	sessionRepo   *repository.SessionRepository
	interviewRepo *repository.InterviewRepository
	logger        *zap.Logger
}

func NewSessionUsecase(sessionRepo *repository.SessionRepository, interviewRepo *repository.InterviewRepository, logger *zap.Logger) *SessionUsecase {
	return &SessionUsecase{sessionRepo: sessionRepo, interviewRepo: interviewRepo, logger: logger}
}

// Start creates a session for the candidate and returns the interview's
// current question set.
func (uc *SessionUsecase) Start(candidateID, interviewID uuid.UUID) (*model.Session, []model.Question, error) {
	interview, err := uc.interviewRepo.FindByID(interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("interview not found")
		}
		return nil, nil, err
	}

	session := &model.Session{
		CandidateID: candidateID,
		Status:      model.SessionStatusStarted,
		StartTime:   time.Now().UTC(),
	}
	if err := uc.sessionRepo.Create(session); err != nil {
		return nil, nil, err
	}

	questions, err := uc.interviewRepo.FindQuestions(interview.ID)
	if err != nil {
		return nil, nil, err
	}

	uc.logger.Info("session started",
		zap.String("session_id", session.ID.String()),
		zap.String("interview_id", interview.ID.String()))
	return session, questions, nil
}

// Finish closes the session. The owning candidate may finish their own
// session; a recruiter may finish any existing one. Finishing an already
// finished session is a no-op.
func (uc *SessionUsecase) Finish(sessionID, actorID uuid.UUID, actorRole string) (*model.Session, error) {
	session, err := uc.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("session not found")
		}
		return nil, err
	}

	if actorRole == middleware.RoleCandidate && session.CandidateID != actorID {
		return nil, apperr.Forbidden("not your session")
	}

	changed, err := uc.sessionRepo.Finish(sessionID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if changed {
		uc.logger.Info("session finished", zap.String("session_id", sessionID.String()))
	}
	return uc.sessionRepo.FindByID(sessionID)
}

// SubmitAnswer stores one response. Only a started session accepts answers;
// anything submitted after finish would never reach the scorer. A second
// answer for the same question within a session is a conflict.
func (uc *SessionUsecase) SubmitAnswer(actorID, sessionID, questionID uuid.UUID, answerText, mediaPath string) (*model.Answer, error) {
	session, err := uc.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("session not found")
		}
		return nil, err
	}
	if session.CandidateID != actorID {
		return nil, apperr.Forbidden("not your session")
	}
	if session.Status != model.SessionStatusStarted {
		return nil, apperr.Conflict("session is no longer accepting answers")
	}

	if _, err := uc.interviewRepo.FindQuestionByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("question not found")
		}
		return nil, err
	}

	answer := &model.Answer{
		SessionID:  sessionID,
		QuestionID: questionID,
		AnswerText: answerText,
		MediaPath:  mediaPath,
	}
	if err := uc.sessionRepo.CreateAnswer(answer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("question already answered in this session")
		}
		return nil, err
	}
	return answer, nil
}
