package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Prateeks16/interview-pilot/internal/dto"
	"github.com/tidwall/gjson"
)

const generatedQuestionCount = 8

type QuestionGeneratorInterface interface {
	Generate(ctx context.Context, resumeText string) ([]dto.GeneratedQuestion, error)
}

// QuestionGeneratorService turns resume text into a fixed-size set of
// interview questions via the LLM.
type QuestionGeneratorService struct {
	gemini GeminiServiceInterface
}

func NewQuestionGeneratorService(gemini GeminiServiceInterface) *QuestionGeneratorService {
	return &QuestionGeneratorService{gemini: gemini}
}

func (s *QuestionGeneratorService) Generate(ctx context.Context, resumeText string) ([]dto.GeneratedQuestion, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("resume text is empty")
	}

	prompt := fmt.Sprintf(`
You are an experienced technical interviewer. Based on the resume below,
write exactly %d interview questions probing the candidate's actual
experience.

Return your answer STRICTLY as a JSON array with this schema:
[
  {
    "question_text": "<the question>",
    "category": "<one of: skills, experience, projects, behavioral>",
    "difficulty": "<one of: easy, medium, hard>"
  }
]

Resume:
%s
`, generatedQuestionCount, resumeText)

	text, err := s.gemini.GenerateContent(ctx, "gemini-2.5-flash", prompt)
	if err != nil {
		return nil, err
	}

	parsed := gjson.Parse(extractJSONArray(text))
	if !parsed.IsArray() {
		return nil, fmt.Errorf("generator returned no question array")
	}

	var questions []dto.GeneratedQuestion
	parsed.ForEach(func(_, item gjson.Result) bool {
		q := dto.GeneratedQuestion{
			QuestionText: item.Get("question_text").String(),
			Category:     item.Get("category").String(),
			Difficulty:   item.Get("difficulty").String(),
		}
		if q.QuestionText == "" {
			return true
		}
		if q.Category == "" {
			q.Category = "resume"
		}
		if q.Difficulty == "" {
			q.Difficulty = "medium"
		}
		questions = append(questions, q)
		return true
	})

	if len(questions) == 0 {
		return nil, fmt.Errorf("generator returned no usable questions")
	}
	return questions, nil
}

// extractJSONArray strips markdown fences and any prose around the array.
func extractJSONArray(text string) string {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return text
	}
	return text[start : end+1]
}
