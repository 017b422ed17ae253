package service

import (
	"context"
	"fmt"

	"github.com/Prateeks16/interview-pilot/internal/config"
	"github.com/Prateeks16/interview-pilot/internal/dto"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type ScorerAck struct {
	Accepted  bool
	Reference string
}

type ScorerServiceInterface interface {
	EvaluateSession(ctx context.Context, sessionID uuid.UUID, answers []dto.AnswerBatchItem, callbackURL string) (*ScorerAck, error)
}

// ScorerService is the outbound client for the external scoring service.
// The scorer acknowledges immediately and delivers the actual result later
// through the webhook at callbackURL.
type ScorerService struct {
	client *resty.Client
	logger *zap.Logger
}

func NewScorerService(cfg *config.ScorerConfig, logger *zap.Logger) *ScorerService {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	return &ScorerService{client: client, logger: logger}
}

func (s *ScorerService) EvaluateSession(ctx context.Context, sessionID uuid.UUID, answers []dto.AnswerBatchItem, callbackURL string) (*ScorerAck, error) {
	payload := map[string]any{
		"session_id":  sessionID.String(),
		"answers":     answers,
		"webhook_url": callbackURL,
		"context":     map[string]any{},
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/evaluate/session")
	if err != nil {
		return nil, fmt.Errorf("scorer request failed: %w", err)
	}
	if resp.IsError() {
		s.logger.Warn("scorer returned error status",
			zap.Int("status", resp.StatusCode()),
			zap.String("session_id", sessionID.String()))
		return nil, fmt.Errorf("scorer returned status %d", resp.StatusCode())
	}

	body := resp.String()
	ack := &ScorerAck{
		Accepted:  gjson.Get(body, "accepted").Bool(),
		Reference: gjson.Get(body, "reference").String(),
	}
	if !ack.Accepted {
		return nil, fmt.Errorf("scorer rejected session %s", sessionID)
	}
	return ack, nil
}
