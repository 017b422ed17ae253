package dto

import (
	"time"

	"github.com/google/uuid"
)

// AnswerBatchItem is one element of the payload sent to the external
// scorer. The scorer treats the batch as a set keyed by question id.
type AnswerBatchItem struct {
	QuestionID     uuid.UUID `json:"question_id"`
	AnswerText     string    `json:"answer_text"`
	MediaReference string    `json:"media_reference"`
}

type TriggerEvaluationDTO struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
}

type WebhookResultDTO struct {
	Status string `json:"status"`
}

type PerformanceReviewDTO struct {
	ID           uuid.UUID `json:"id"`
	SessionID    uuid.UUID `json:"session_id"`
	OverallScore int       `json:"overall_score"`
	Strengths    string    `json:"strengths"`
	Weakness     string    `json:"weakness"`
	CreatedAt    time.Time `json:"created_at"`
}
