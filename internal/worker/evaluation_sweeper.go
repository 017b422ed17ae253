package worker

import (
	"context"
	"time"

	"github.com/Prateeks16/interview-pilot/internal/repository"
	"go.uber.org/zap"
)

// EvaluationSweeper fails acknowledged evaluation jobs whose callback never
// arrived, so a session is not left pending forever when the scorer loses a
// result.
type EvaluationSweeper struct {
	evaluationRepo *repository.EvaluationRepository
	ttl            time.Duration
	interval       time.Duration
	logger         *zap.Logger
}

func NewEvaluationSweeper(evaluationRepo *repository.EvaluationRepository, ttl, interval time.Duration, logger *zap.Logger) *EvaluationSweeper {
	return &EvaluationSweeper{
		evaluationRepo: evaluationRepo,
		ttl:            ttl,
		interval:       interval,
		logger:         logger,
	}
}

// Run sweeps on a ticker until ctx is cancelled.
func (s *EvaluationSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce()
		}
	}
}

// SweepOnce fails jobs dispatched more than TTL ago.
func (s *EvaluationSweeper) SweepOnce() {
	cutoff := time.Now().UTC().Add(-s.ttl)
	swept, err := s.evaluationRepo.SweepStale(cutoff)
	if err != nil {
		s.logger.Error("evaluation sweep failed", zap.Error(err))
		return
	}
	if swept > 0 {
		s.logger.Warn("stale evaluation jobs failed by sweep", zap.Int64("count", swept))
	}
}
