package handler

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Prateeks16/interview-pilot/internal/middleware"
	"github.com/Prateeks16/interview-pilot/internal/model"
	"github.com/Prateeks16/interview-pilot/internal/repository"
	"github.com/Prateeks16/interview-pilot/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubEnqueuer struct {
	taskID uuid.UUID
}

func (s *stubEnqueuer) Enqueue(interviewID uuid.UUID) (uuid.UUID, error) {
	return s.taskID, nil
}

func newUploadApp(t *testing.T, uploadDir string) (*fiber.App, *model.Interview) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA busy_timeout = 5000")
	if err := db.AutoMigrate(&model.Interview{}, &model.Question{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := repository.NewInterviewRepository(db)
	interview := &model.Interview{
		Title:          "Backend role",
		JobDescription: "Go services",
		ShareToken:     uuid.NewString(),
		CreatedBy:      uuid.New(),
	}
	if err := repo.Create(interview); err != nil {
		t.Fatalf("create interview: %v", err)
	}

	uc := usecase.NewInterviewUsecase(repo, &stubEnqueuer{taskID: uuid.New()}, zap.NewNop())
	app := fiber.New()
	NewInterviewHandler(uc, uploadDir).RegisterRoutes(app)
	return app, interview
}

func TestUploadResumeFilenameCannotEscapeUploadDir(t *testing.T) {
	base := t.TempDir()
	uploadDir := filepath.Join(base, "uploads", "resumes")
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	app, interview := newUploadApp(t, uploadDir)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("resume", "../../escape.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fmt.Fprint(part, "Five years of Go and Postgres.")
	writer.Close()

	req := httptest.NewRequest("POST", "/interviews/"+interview.ShareToken+"/resume", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-User-ID", uuid.NewString())
	req.Header.Set("X-User-Role", middleware.RoleCandidate)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if _, err := os.Stat(filepath.Join(uploadDir, "escape.txt")); err != nil {
		t.Fatalf("expected file inside upload dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "escape.txt")); !os.IsNotExist(err) {
		t.Fatalf("file escaped the upload dir")
	}
}
