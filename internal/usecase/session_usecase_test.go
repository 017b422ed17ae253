package usecase

import (
	"testing"
	"time"

	"github.com/Prateeks16/interview-pilot/internal/apperr"
	"github.com/Prateeks16/interview-pilot/internal/middleware"
	"github.com/Prateeks16/interview-pilot/internal/model"
	"github.com/Prateeks16/interview-pilot/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newSessionUsecase(db *gorm.DB) *SessionUsecase {
	return NewSessionUsecase(
		repository.NewSessionRepository(db),
		repository.NewInterviewRepository(db),
		zap.NewNop(),
	)
}

func createInterview(t *testing.T, db *gorm.DB, resumeText string) *model.Interview {
	t.Helper()
	interview := &model.Interview{
		Title:          "Backend role",
		JobDescription: "Backend role",
		ResumeText:     resumeText,
		ShareToken:     uuid.NewString(),
		CreatedBy:      uuid.New(),
	}
	if err := db.Create(interview).Error; err != nil {
		t.Fatalf("create interview: %v", err)
	}
	return interview
}

func TestStartSessionReturnsQuestions(t *testing.T) {
	db := openTestDB(t)
	uc := newSessionUsecase(db)

	interview := createInterview(t, db, "")
	question := &model.Question{InterviewID: interview.ID, QuestionText: "Tell me about Go", Source: model.QuestionSourceManual}
	if err := db.Create(question).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}

	candidate := uuid.New()
	session, questions, err := uc.Start(candidate, interview.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Status != model.SessionStatusStarted {
		t.Fatalf("expected started, got %q", session.Status)
	}
	if session.CandidateID != candidate {
		t.Fatalf("session owner mismatch")
	}
	if len(questions) != 1 {
		t.Fatalf("expected one question, got %d", len(questions))
	}
}

func TestStartSessionUnknownInterview(t *testing.T) {
	db := openTestDB(t)
	uc := newSessionUsecase(db)

	_, _, err := uc.Start(uuid.New(), uuid.New())
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFinishSessionOwnership(t *testing.T) {
	db := openTestDB(t)
	uc := newSessionUsecase(db)

	interview := createInterview(t, db, "")
	candidate := uuid.New()
	session, _, err := uc.Start(candidate, interview.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// Another candidate may not finish it.
	_, err = uc.Finish(session.ID, uuid.New(), middleware.RoleCandidate)
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// A recruiter may finish any session.
	finished, err := uc.Finish(session.ID, uuid.New(), middleware.RoleRecruiter)
	if err != nil {
		t.Fatalf("recruiter finish: %v", err)
	}
	if finished.Status != model.SessionStatusFinished {
		t.Fatalf("expected finished, got %q", finished.Status)
	}
	if finished.EndTime == nil {
		t.Fatalf("expected end_time set")
	}
}

func TestFinishSessionIdempotent(t *testing.T) {
	db := openTestDB(t)
	uc := newSessionUsecase(db)

	interview := createInterview(t, db, "")
	candidate := uuid.New()
	session, _, err := uc.Start(candidate, interview.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	first, err := uc.Finish(session.ID, candidate, middleware.RoleCandidate)
	if err != nil {
		t.Fatalf("first finish: %v", err)
	}
	firstEnd := *first.EndTime

	time.Sleep(10 * time.Millisecond)
	second, err := uc.Finish(session.ID, candidate, middleware.RoleCandidate)
	if err != nil {
		t.Fatalf("second finish: %v", err)
	}
	if !second.EndTime.Equal(firstEnd) {
		t.Fatalf("end_time moved on repeat finish: %v vs %v", firstEnd, second.EndTime)
	}
}

func TestFinishSessionUnknown(t *testing.T) {
	db := openTestDB(t)
	uc := newSessionUsecase(db)

	_, err := uc.Finish(uuid.New(), uuid.New(), middleware.RoleRecruiter)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSubmitAnswerGuards(t *testing.T) {
	db := openTestDB(t)
	uc := newSessionUsecase(db)

	interview := createInterview(t, db, "")
	question := &model.Question{InterviewID: interview.ID, QuestionText: "Q1"}
	if err := db.Create(question).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}

	candidate := uuid.New()
	session, _, err := uc.Start(candidate, interview.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := uc.SubmitAnswer(uuid.New(), session.ID, question.ID, "a", ""); apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("expected forbidden for foreign session, got %v", err)
	}
	if _, err := uc.SubmitAnswer(candidate, session.ID, uuid.New(), "a", ""); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found for unknown question, got %v", err)
	}

	if _, err := uc.SubmitAnswer(candidate, session.ID, question.ID, "first", ""); err != nil {
		t.Fatalf("submit: %v", err)
	}
	_, err = uc.SubmitAnswer(candidate, session.ID, question.ID, "second", "")
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict for duplicate answer, got %v", err)
	}
}

func TestSubmitAnswerRejectedAfterFinish(t *testing.T) {
	db := openTestDB(t)
	uc := newSessionUsecase(db)

	interview := createInterview(t, db, "")
	question := &model.Question{InterviewID: interview.ID, QuestionText: "Q1"}
	if err := db.Create(question).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}

	candidate := uuid.New()
	session, _, err := uc.Start(candidate, interview.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := uc.Finish(session.ID, candidate, middleware.RoleCandidate); err != nil {
		t.Fatalf("finish: %v", err)
	}

	_, err = uc.SubmitAnswer(candidate, session.ID, question.ID, "late", "")
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict after finish, got %v", err)
	}

	var count int64
	db.Model(&model.Answer{}).Where("session_id = ?", session.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected no answers persisted, got %d", count)
	}
}
