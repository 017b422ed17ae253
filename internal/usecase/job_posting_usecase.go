package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/Prateeks16/interview-pilot/internal/apperr"
	"github.com/Prateeks16/interview-pilot/internal/model"
	"github.com/Prateeks16/interview-pilot/internal/repository"
	"github.com/Prateeks16/interview-pilot/internal/response"
	"github.com/Prateeks16/interview-pilot/internal/service"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type JobPostingUsecase struct {
	postingRepo   *repository.JobPostingRepository
	interviewRepo *repository.InterviewRepository
	gemini        service.GeminiServiceInterface
	logger        *zap.Logger
}

func NewJobPostingUsecase(postingRepo *repository.JobPostingRepository, interviewRepo *repository.InterviewRepository, gemini service.GeminiServiceInterface, logger *zap.Logger) *JobPostingUsecase {
	return &JobPostingUsecase{postingRepo: postingRepo, interviewRepo: interviewRepo, gemini: gemini, logger: logger}
}

func (uc *JobPostingUsecase) Create(ctx context.Context, recruiterID uuid.UUID, title, description, skills, salary string) (*model.JobPosting, error) {
	embedding, err := uc.gemini.GenerateEmbedding(ctx, title+"\n"+description+"\n"+skills)
	if err != nil {
		return nil, apperr.Unavailable("embedding service unavailable", err)
	}

	posting := &model.JobPosting{
		Title:       title,
		Description: description,
		Skills:      skills,
		Salary:      salary,
		Embedding:   pgvector.NewVector(embedding),
		CreatedBy:   recruiterID,
	}
	if err := uc.postingRepo.Create(posting); err != nil {
		return nil, err
	}
	uc.logger.Info("job posting created", zap.String("posting_id", posting.ID.String()))
	return posting, nil
}

func (uc *JobPostingUsecase) List(page, pageSize int) ([]model.JobPosting, *response.Pagination, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	postings, total, err := uc.postingRepo.List(page, pageSize)
	if err != nil {
		return nil, nil, err
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	from := (page-1)*pageSize + 1
	if len(postings) == 0 {
		from = 0
	}
	pagination := &response.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    int64(page) < totalPages,
		From:       from,
		To:         from + len(postings) - 1,
	}
	return postings, pagination, nil
}

// MatchForInterview ranks postings against the interview's resume text.
func (uc *JobPostingUsecase) MatchForInterview(ctx context.Context, interviewID uuid.UUID, topK int) ([]model.JobPosting, error) {
	interview, err := uc.interviewRepo.FindByID(interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("interview not found")
		}
		return nil, err
	}
	if strings.TrimSpace(interview.ResumeText) == "" {
		return nil, apperr.Conflict("interview has no resume text")
	}

	embedding, err := uc.gemini.GenerateEmbedding(ctx, interview.ResumeText)
	if err != nil {
		return nil, apperr.Unavailable("embedding service unavailable", err)
	}
	if topK <= 0 {
		topK = 5
	}
	return uc.postingRepo.SearchByEmbedding(pgvector.NewVector(embedding), topK)
}
