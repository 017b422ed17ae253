package worker

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Prateeks16/interview-pilot/internal/apperr"
	"github.com/Prateeks16/interview-pilot/internal/dto"
	"github.com/Prateeks16/interview-pilot/internal/model"
	"github.com/Prateeks16/interview-pilot/internal/repository"
	"github.com/Prateeks16/interview-pilot/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GenerationRunner executes question generation off the request path. Work
// travels over a bounded channel to a fixed pool of workers; task state
// lives in the database so polling survives a restart.
type GenerationRunner struct {
	tasks         chan uuid.UUID
	taskRepo      *repository.TaskRepository
	interviewRepo *repository.InterviewRepository
	generator     service.QuestionGeneratorInterface
	logger        *zap.Logger
	wg            sync.WaitGroup
}

func NewGenerationRunner(
	taskRepo *repository.TaskRepository,
	interviewRepo *repository.InterviewRepository,
	generator service.QuestionGeneratorInterface,
	queueSize int,
	logger *zap.Logger,
) *GenerationRunner {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &GenerationRunner{
		tasks:         make(chan uuid.UUID, queueSize),
		taskRepo:      taskRepo,
		interviewRepo: interviewRepo,
		generator:     generator,
		logger:        logger,
	}
}

// Start launches the worker pool. Workers exit when ctx is cancelled.
func (r *GenerationRunner) Start(ctx context.Context, workers int) {
	if workers <= 0 {
		workers = 4
	}
	for i := 0; i < workers; i++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case taskID := <-r.tasks:
					r.process(ctx, taskID)
				}
			}
		}()
	}
}

// Wait blocks until all workers have exited.
func (r *GenerationRunner) Wait() {
	r.wg.Wait()
}

// Enqueue registers a generation task for the interview and returns its id
// without waiting for the work. A full queue is reported as a conflict; the
// task row is kept in failed state for audit.
func (r *GenerationRunner) Enqueue(interviewID uuid.UUID) (uuid.UUID, error) {
	if _, err := r.interviewRepo.FindByID(interviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, apperr.NotFound("interview not found")
		}
		return uuid.Nil, err
	}

	task := &model.GenerationTask{
		InterviewID: interviewID,
		Status:      model.GenerationTaskStatusQueued,
	}
	if err := r.taskRepo.Create(task); err != nil {
		return uuid.Nil, err
	}

	select {
	case r.tasks <- task.ID:
		return task.ID, nil
	default:
		_ = r.taskRepo.MarkFailed(task.ID, "generation queue full")
		return uuid.Nil, apperr.Conflict("generation queue full, retry later")
	}
}

// Status reports the persisted state of a task. Unknown ids are not found,
// never a silent default.
func (r *GenerationRunner) Status(taskID uuid.UUID) (*dto.TaskStatusDTO, error) {
	task, err := r.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("task not found")
		}
		return nil, err
	}

	status := &dto.TaskStatusDTO{ID: task.ID, State: task.Status}
	switch task.Status {
	case model.GenerationTaskStatusSucceeded:
		status.Result = &dto.TaskResultDTO{QuestionCount: task.QuestionCount}
	case model.GenerationTaskStatusFailed:
		status.Reason = task.FailReason
	}
	return status, nil
}

func (r *GenerationRunner) process(ctx context.Context, taskID uuid.UUID) {
	task, err := r.taskRepo.FindByID(taskID)
	if err != nil {
		r.logger.Error("generation task vanished", zap.String("task_id", taskID.String()), zap.Error(err))
		return
	}

	if err := r.taskRepo.MarkRunning(task.ID); err != nil {
		r.logger.Error("failed to mark task running", zap.String("task_id", taskID.String()), zap.Error(err))
		return
	}

	interview, err := r.interviewRepo.FindByID(task.InterviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.fail(task.ID, "interview no longer exists")
			return
		}
		r.fail(task.ID, "failed to load interview: "+err.Error())
		return
	}
	if strings.TrimSpace(interview.ResumeText) == "" {
		r.fail(task.ID, "resume text missing")
		return
	}

	generated, err := r.generator.Generate(ctx, interview.ResumeText)
	if err != nil {
		r.fail(task.ID, "generation failed: "+err.Error())
		return
	}

	questions := make([]model.Question, 0, len(generated))
	for _, q := range generated {
		questions = append(questions, model.Question{
			InterviewID:  interview.ID,
			QuestionText: q.QuestionText,
			Category:     q.Category,
			Difficulty:   q.Difficulty,
			Source:       model.QuestionSourceResume,
			CreatedBy:    interview.CreatedBy,
		})
	}
	if err := r.interviewRepo.CreateQuestions(questions); err != nil {
		r.fail(task.ID, "failed to persist questions: "+err.Error())
		return
	}

	if err := r.taskRepo.MarkSucceeded(task.ID, len(questions)); err != nil {
		r.logger.Error("failed to mark task succeeded", zap.String("task_id", taskID.String()), zap.Error(err))
		return
	}
	r.logger.Info("generation task succeeded",
		zap.String("task_id", task.ID.String()),
		zap.Int("questions", len(questions)))
}

func (r *GenerationRunner) fail(taskID uuid.UUID, reason string) {
	if err := r.taskRepo.MarkFailed(taskID, reason); err != nil {
		r.logger.Error("failed to mark task failed", zap.String("task_id", taskID.String()), zap.Error(err))
		return
	}
	r.logger.Warn("generation task failed",
		zap.String("task_id", taskID.String()),
		zap.String("reason", reason))
}
