package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/Prateeks16/interview-pilot/internal/apperr"
	"github.com/Prateeks16/interview-pilot/internal/config"
	"github.com/Prateeks16/interview-pilot/internal/dto"
	"github.com/Prateeks16/interview-pilot/internal/model"
	"github.com/Prateeks16/interview-pilot/internal/repository"
	"github.com/Prateeks16/interview-pilot/internal/service"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"gorm.io/gorm"
)

// EvaluationUsecase holds both ends of the asynchronous scoring flow: the
// outbound dispatcher and the webhook reconciler. The two never meet in
// process; they rendezvous through the evaluation job ledger keyed by
// session id.
type EvaluationUsecase struct {
	evaluationRepo *repository.EvaluationRepository
	sessionRepo    *repository.SessionRepository
	scorer         service.ScorerServiceInterface
	callbackURL    string
	dispatchSem    *semaphore.Weighted
	logger         *zap.Logger
}

func NewEvaluationUsecase(
	evaluationRepo *repository.EvaluationRepository,
	sessionRepo *repository.SessionRepository,
	scorer service.ScorerServiceInterface,
	cfg *config.ScorerConfig,
	logger *zap.Logger,
) *EvaluationUsecase {
	return &EvaluationUsecase{
		evaluationRepo: evaluationRepo,
		sessionRepo:    sessionRepo,
		scorer:         scorer,
		callbackURL:    cfg.CallbackURL,
		dispatchSem:    semaphore.NewWeighted(cfg.MaxInFlight),
		logger:         logger,
	}
}

// Trigger dispatches the session's answers to the external scorer. The
// ledger row is reserved first so concurrent triggers serialize on the
// partial unique index; a failed outbound call releases the reservation so
// nothing survives. An empty answer batch still dispatches.
func (uc *EvaluationUsecase) Trigger(ctx context.Context, sessionID uuid.UUID) (*dto.TriggerEvaluationDTO, error) {
	session, err := uc.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("session not found")
		}
		return nil, err
	}
	switch session.Status {
	case model.SessionStatusFinished:
	case model.SessionStatusEvaluated:
		return nil, apperr.Conflict("session already evaluated")
	default:
		return nil, apperr.Conflict("session not finished")
	}

	answers, err := uc.sessionRepo.FindAnswers(sessionID)
	if err != nil {
		return nil, err
	}
	batch := make([]dto.AnswerBatchItem, 0, len(answers))
	for _, a := range answers {
		batch = append(batch, dto.AnswerBatchItem{
			QuestionID:     a.QuestionID,
			AnswerText:     a.AnswerText,
			MediaReference: a.MediaPath,
		})
	}

	job, err := uc.evaluationRepo.Reserve(sessionID, len(batch))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateActiveJob) {
			return nil, apperr.Conflict("evaluation already in progress for session")
		}
		return nil, err
	}

	// Bound the number of in-flight scorer calls across all requests.
	if err := uc.dispatchSem.Acquire(ctx, 1); err != nil {
		_ = uc.evaluationRepo.Release(job.ID)
		return nil, apperr.Unavailable("evaluation dispatch cancelled", err)
	}
	ack, err := uc.scorer.EvaluateSession(ctx, sessionID, batch, uc.callbackURL)
	uc.dispatchSem.Release(1)
	if err != nil {
		if relErr := uc.evaluationRepo.Release(job.ID); relErr != nil {
			uc.logger.Error("failed to release evaluation reservation",
				zap.String("job_id", job.ID.String()), zap.Error(relErr))
		}
		return nil, apperr.Unavailable("scorer unavailable", err)
	}

	if err := uc.evaluationRepo.MarkAcknowledged(job.ID, ack.Reference); err != nil {
		return nil, err
	}

	uc.logger.Info("evaluation dispatched",
		zap.String("session_id", sessionID.String()),
		zap.String("reference", ack.Reference),
		zap.Int("answers", len(batch)))
	return &dto.TriggerEvaluationDTO{Status: "queued", Reference: ack.Reference}, nil
}

// HandleCallback is the sole writer of performance reviews. The scorer
// delivers at least once, so a callback with no outstanding job is answered
// with "ignored" instead of an error.
func (uc *EvaluationUsecase) HandleCallback(body []byte) (*dto.WebhookResultDTO, error) {
	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return nil, apperr.Invalid("malformed callback payload")
	}

	rawSession := parsed.Get("session_id")
	if !rawSession.Exists() {
		return nil, apperr.Invalid("session_id missing")
	}
	sessionID, err := uuid.Parse(rawSession.String())
	if err != nil {
		return nil, apperr.Invalid("session_id is not a valid id")
	}

	score := parsed.Get("overall_score")
	if !score.Exists() || score.Type != gjson.Number {
		return nil, apperr.Invalid("overall_score missing or not numeric")
	}

	if _, err := uc.sessionRepo.FindByID(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("session not found")
		}
		return nil, err
	}

	review := &model.PerformanceReview{
		SessionID:    sessionID,
		OverallScore: int(score.Int()),
		Strengths:    joinList(parsed.Get("strengths")),
		Weakness:     joinList(parsed.Get("weaknesses")),
	}

	saved, err := uc.evaluationRepo.Reconcile(review)
	if err != nil {
		return nil, err
	}
	if !saved {
		uc.logger.Info("duplicate or stale callback ignored",
			zap.String("session_id", sessionID.String()))
		return &dto.WebhookResultDTO{Status: "ignored"}, nil
	}

	uc.logger.Info("performance review saved",
		zap.String("session_id", sessionID.String()),
		zap.Int("overall_score", review.OverallScore))
	return &dto.WebhookResultDTO{Status: "saved"}, nil
}

// Review returns the terminal evaluation artifact for a session.
func (uc *EvaluationUsecase) Review(sessionID uuid.UUID) (*model.PerformanceReview, error) {
	review, err := uc.evaluationRepo.FindReview(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, err
	}
	return review, nil
}

func joinList(value gjson.Result) string {
	if !value.IsArray() {
		return ""
	}
	var parts []string
	value.ForEach(func(_, item gjson.Result) bool {
		parts = append(parts, item.String())
		return true
	})
	return strings.Join(parts, ", ")
}
