package dto

import (
	"github.com/google/uuid"
)

type GeneratedQuestion struct {
	QuestionText string `json:"question_text"`
	Category     string `json:"category"`
	Difficulty   string `json:"difficulty"`
}

type TaskStatusDTO struct {
	ID     uuid.UUID      `json:"id"`
	State  string         `json:"state"`
	Result *TaskResultDTO `json:"result,omitempty"`
	Reason string         `json:"reason,omitempty"`
}

type TaskResultDTO struct {
	QuestionCount int `json:"question_count"`
}
