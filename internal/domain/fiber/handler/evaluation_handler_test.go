package handler

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Prateeks16/interview-pilot/internal/config"
	"github.com/Prateeks16/interview-pilot/internal/dto"
	"github.com/Prateeks16/interview-pilot/internal/model"
	"github.com/Prateeks16/interview-pilot/internal/repository"
	"github.com/Prateeks16/interview-pilot/internal/service"
	"github.com/Prateeks16/interview-pilot/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubScorer struct{}

func (stubScorer) EvaluateSession(_ context.Context, _ uuid.UUID, _ []dto.AnswerBatchItem, _ string) (*service.ScorerAck, error) {
	return &service.ScorerAck{Accepted: true, Reference: "ref-1"}, nil
}

func newWebhookApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA busy_timeout = 5000")
	if err := db.AutoMigrate(
		&model.Session{},
		&model.Answer{},
		&model.EvaluationJob{},
		&model.PerformanceReview{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	uc := usecase.NewEvaluationUsecase(
		repository.NewEvaluationRepository(db),
		repository.NewSessionRepository(db),
		stubScorer{},
		&config.ScorerConfig{CallbackURL: "http://localhost/evaluation/webhook", MaxInFlight: 2},
		zap.NewNop(),
	)

	app := fiber.New()
	NewEvaluationHandler(uc).RegisterRoutes(app)
	return app, db
}

func dispatchedSession(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	now := time.Now().UTC()
	end := now.Add(time.Minute)
	session := &model.Session{CandidateID: uuid.New(), Status: model.SessionStatusFinished, StartTime: now, EndTime: &end}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}
	key := session.ID.String()
	job := &model.EvaluationJob{
		SessionID:    session.ID,
		ActiveKey:    &key,
		Status:       model.EvaluationJobStatusAcknowledged,
		DispatchedAt: now,
	}
	if err := db.Create(job).Error; err != nil {
		t.Fatalf("create job: %v", err)
	}
	return session.ID
}

func TestWebhookEndpointSavesAndIgnores(t *testing.T) {
	app, db := newWebhookApp(t)
	sessionID := dispatchedSession(t, db)

	body := fmt.Sprintf(`{"session_id":%q,"overall_score":75,"strengths":["go"],"weaknesses":[]}`, sessionID)

	req := httptest.NewRequest("POST", "/evaluation/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	if got := gjson.GetBytes(raw, "status").String(); got != "saved" {
		t.Fatalf("expected saved, got %q (%s)", got, raw)
	}

	// Redelivery is still a 200, just a no-op.
	req = httptest.NewRequest("POST", "/evaluation/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	raw, _ = io.ReadAll(resp.Body)
	if got := gjson.GetBytes(raw, "status").String(); got != "ignored" {
		t.Fatalf("expected ignored, got %q (%s)", got, raw)
	}
}

func TestWebhookEndpointMalformedPayload(t *testing.T) {
	app, _ := newWebhookApp(t)

	req := httptest.NewRequest("POST", "/evaluation/webhook", strings.NewReader(`{"overall_score":75}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestWebhookEndpointUnknownSession(t *testing.T) {
	app, _ := newWebhookApp(t)

	body := fmt.Sprintf(`{"session_id":%q,"overall_score":75}`, uuid.New())
	req := httptest.NewRequest("POST", "/evaluation/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
