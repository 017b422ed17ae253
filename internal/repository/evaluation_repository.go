package repository

import (
	"errors"
	"time"

	"github.com/Prateeks16/interview-pilot/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateActiveJob reports that the session already holds a
// non-terminal evaluation job.
var ErrDuplicateActiveJob = errors.New("active evaluation job already exists for session")

type EvaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{db}
}

// Reserve inserts a pending ledger row for the session. The partial-unique
// active_key column serializes concurrent dispatch attempts: the loser of
// the race gets ErrDuplicateActiveJob.
func (r *EvaluationRepository) Reserve(sessionID uuid.UUID, answerCount int) (*model.EvaluationJob, error) {
	key := sessionID.String()
	job := &model.EvaluationJob{
		SessionID:    sessionID,
		ActiveKey:    &key,
		Status:       model.EvaluationJobStatusPending,
		AnswerCount:  answerCount,
		DispatchedAt: time.Now().UTC(),
	}
	if err := r.db.Create(job).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateActiveJob
		}
		return nil, err
	}
	return job, nil
}

// Release drops a reservation whose outbound dispatch never went through,
// so no partial state survives a scorer failure.
func (r *EvaluationRepository) Release(jobID uuid.UUID) error {
	return r.db.Delete(&model.EvaluationJob{}, "id = ?", jobID).Error
}

func (r *EvaluationRepository) MarkAcknowledged(jobID uuid.UUID, reference string) error {
	return r.db.Model(&model.EvaluationJob{}).
		Where("id = ?", jobID).
		Updates(map[string]any{
			"status":    model.EvaluationJobStatusAcknowledged,
			"reference": reference,
		}).Error
}

func (r *EvaluationRepository) FindJobByID(id uuid.UUID) (*model.EvaluationJob, error) {
	var job model.EvaluationJob
	err := r.db.First(&job, "id = ?", id).Error
	return &job, err
}

func (r *EvaluationRepository) FindActiveJob(sessionID uuid.UUID) (*model.EvaluationJob, error) {
	var job model.EvaluationJob
	err := r.db.First(&job, "session_id = ? AND active_key IS NOT NULL", sessionID).Error
	return &job, err
}

func (r *EvaluationRepository) FindReview(sessionID uuid.UUID) (*model.PerformanceReview, error) {
	var review model.PerformanceReview
	err := r.db.First(&review, "session_id = ?", sessionID).Error
	return &review, err
}

// Reconcile commits the scorer callback as one unit: persist the review,
// close the ledger entry and mark the session evaluated. Any non-terminal
// job matches, including one still pending because the callback raced the
// acknowledgment bookkeeping. When the session has no outstanding job the
// callback is a duplicate or stale delivery and Reconcile reports
// saved=false without touching anything.
func (r *EvaluationRepository) Reconcile(review *model.PerformanceReview) (saved bool, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var job model.EvaluationJob
		res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("session_id = ? AND active_key IS NOT NULL", review.SessionID).
			First(&job)
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil
		}
		if res.Error != nil {
			return res.Error
		}

		if err := tx.Create(review).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := tx.Model(&model.EvaluationJob{}).
			Where("id = ?", job.ID).
			Updates(map[string]any{
				"status":       model.EvaluationJobStatusCompleted,
				"active_key":   nil,
				"completed_at": now,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Session{}).
			Where("id = ?", review.SessionID).
			Update("status", model.SessionStatusEvaluated).Error; err != nil {
			return err
		}

		saved = true
		return nil
	})
	return saved, err
}

// SweepStale fails non-terminal jobs whose callback never arrived within
// the TTL, freeing the session for a fresh dispatch. Pending rows are
// included: a crash between reservation and acknowledgment would otherwise
// hold the session's ledger slot forever.
func (r *EvaluationRepository) SweepStale(cutoff time.Time) (int64, error) {
	res := r.db.Model(&model.EvaluationJob{}).
		Where("status IN ? AND dispatched_at < ?",
			[]string{model.EvaluationJobStatusPending, model.EvaluationJobStatusAcknowledged}, cutoff).
		Updates(map[string]any{
			"status":      model.EvaluationJobStatusFailed,
			"active_key":  nil,
			"fail_reason": "no callback received before TTL",
		})
	return res.RowsAffected, res.Error
}
