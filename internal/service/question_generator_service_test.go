package service

import (
	"context"
	"testing"
)

type stubGemini struct {
	text string
	err  error
}

func (s *stubGemini) GenerateContent(ctx context.Context, model, prompt string) (string, error) {
	return s.text, s.err
}

func (s *stubGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, nil
}

func TestGenerateParsesQuestions(t *testing.T) {
	gen := NewQuestionGeneratorService(&stubGemini{text: `[
		{"question_text": "Describe a schema migration you ran in production.", "category": "experience", "difficulty": "hard"},
		{"question_text": "What does a LEFT JOIN return?", "category": "skills", "difficulty": "easy"}
	]`})

	questions, err := gen.Generate(context.Background(), "senior backend engineer, postgres")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].Category != "experience" || questions[0].Difficulty != "hard" {
		t.Fatalf("unexpected first question: %+v", questions[0])
	}
}

func TestGenerateStripsMarkdownFences(t *testing.T) {
	gen := NewQuestionGeneratorService(&stubGemini{text: "```json\n[{\"question_text\": \"Why Go?\"}]\n```"})

	questions, err := gen.Generate(context.Background(), "resume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].Category != "resume" {
		t.Fatalf("expected default category, got %q", questions[0].Category)
	}
	if questions[0].Difficulty != "medium" {
		t.Fatalf("expected default difficulty, got %q", questions[0].Difficulty)
	}
}

func TestGenerateRejectsEmptyResume(t *testing.T) {
	gen := NewQuestionGeneratorService(&stubGemini{text: "[]"})

	if _, err := gen.Generate(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for empty resume")
	}
}

func TestGenerateRejectsGarbageOutput(t *testing.T) {
	gen := NewQuestionGeneratorService(&stubGemini{text: "I cannot help with that."})

	if _, err := gen.Generate(context.Background(), "resume"); err == nil {
		t.Fatalf("expected error for non-array output")
	}
}

func TestGenerateSkipsBlankQuestions(t *testing.T) {
	gen := NewQuestionGeneratorService(&stubGemini{text: `[{"question_text": ""}, {"question_text": "Tell me about your last project."}]`})

	questions, err := gen.Generate(context.Background(), "resume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected blank question skipped, got %d", len(questions))
	}
}
