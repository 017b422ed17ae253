package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Prateeks16/interview-pilot/internal/model"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA busy_timeout = 5000")
	err = db.AutoMigrate(
		&model.Interview{},
		&model.Question{},
		&model.Session{},
		&model.Answer{},
		&model.EvaluationJob{},
		&model.PerformanceReview{},
		&model.GenerationTask{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestDeleteCascadesQuestionsAndAnswers(t *testing.T) {
	db := openTestDB(t)
	repo := NewInterviewRepository(db)

	interview := &model.Interview{
		Title:          "Backend role",
		JobDescription: "Backend role",
		ShareToken:     uuid.NewString(),
		CreatedBy:      uuid.New(),
	}
	if err := repo.Create(interview); err != nil {
		t.Fatalf("create interview: %v", err)
	}

	questions := []model.Question{
		{InterviewID: interview.ID, QuestionText: "Q1"},
		{InterviewID: interview.ID, QuestionText: "Q2"},
	}
	if err := repo.CreateQuestions(questions); err != nil {
		t.Fatalf("create questions: %v", err)
	}

	session := &model.Session{CandidateID: uuid.New(), StartTime: time.Now().UTC(), Status: model.SessionStatusStarted}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}
	answer := &model.Answer{SessionID: session.ID, QuestionID: questions[0].ID, AnswerText: "A1"}
	if err := db.Create(answer).Error; err != nil {
		t.Fatalf("create answer: %v", err)
	}

	if err := repo.Delete(interview.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var questionCount, answerCount, sessionCount int64
	db.Model(&model.Question{}).Count(&questionCount)
	db.Model(&model.Answer{}).Count(&answerCount)
	db.Model(&model.Session{}).Count(&sessionCount)

	if questionCount != 0 {
		t.Fatalf("expected questions deleted, got %d", questionCount)
	}
	if answerCount != 0 {
		t.Fatalf("expected answers deleted, got %d", answerCount)
	}
	// Sessions do not reference the interview and must survive.
	if sessionCount != 1 {
		t.Fatalf("expected session untouched, got %d", sessionCount)
	}

	if _, err := repo.FindByID(interview.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected interview gone, got %v", err)
	}
}

func TestFindByTokenAndResumeMirror(t *testing.T) {
	db := openTestDB(t)
	repo := NewInterviewRepository(db)

	interview := &model.Interview{
		Title:          "Backend role",
		JobDescription: "Backend role",
		ShareToken:     uuid.NewString(),
		CreatedBy:      uuid.New(),
	}
	if err := repo.Create(interview); err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := repo.FindByToken(interview.ShareToken)
	if err != nil {
		t.Fatalf("find by token: %v", err)
	}
	if found.ID != interview.ID {
		t.Fatalf("token lookup returned wrong interview")
	}

	// Last write wins on the resume mirror.
	if err := repo.UpdateResumeText(interview.ID, "first upload"); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if err := repo.UpdateResumeText(interview.ID, "second upload"); err != nil {
		t.Fatalf("second update: %v", err)
	}
	refreshed, err := repo.FindByID(interview.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if refreshed.ResumeText != "second upload" {
		t.Fatalf("expected last write to win, got %q", refreshed.ResumeText)
	}
}

func TestReserveSerializesPerSession(t *testing.T) {
	db := openTestDB(t)
	repo := NewEvaluationRepository(db)

	sessionID := uuid.New()
	if _, err := repo.Reserve(sessionID, 2); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	if _, err := repo.Reserve(sessionID, 2); !errors.Is(err, ErrDuplicateActiveJob) {
		t.Fatalf("expected duplicate active job, got %v", err)
	}

	// A different session is unaffected.
	if _, err := repo.Reserve(uuid.New(), 0); err != nil {
		t.Fatalf("other session reserve: %v", err)
	}
}

func TestReleaseFreesSlot(t *testing.T) {
	db := openTestDB(t)
	repo := NewEvaluationRepository(db)

	sessionID := uuid.New()
	job, err := repo.Reserve(sessionID, 1)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := repo.Release(job.ID); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := repo.Reserve(sessionID, 1); err != nil {
		t.Fatalf("reserve after release: %v", err)
	}
}
