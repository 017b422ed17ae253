package dto

type CreateQuestionDTO struct {
	QuestionText string `json:"question_text" form:"question_text"`
	Category     string `json:"category" form:"category"`
	Difficulty   string `json:"difficulty" form:"difficulty"`
}

// QuestionPatchDTO carries a partial update; nil fields stay untouched.
type QuestionPatchDTO struct {
	QuestionText *string `json:"question_text"`
	Category     *string `json:"category"`
	Difficulty   *string `json:"difficulty"`
}
