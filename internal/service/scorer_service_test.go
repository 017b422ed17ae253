package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Prateeks16/interview-pilot/internal/config"
	"github.com/Prateeks16/interview-pilot/internal/dto"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func newTestScorer(t *testing.T, handler http.HandlerFunc) (*ScorerService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := &config.ScorerConfig{
		BaseURL:     server.URL,
		CallbackURL: "http://localhost:8080/evaluation/webhook",
		Timeout:     2 * time.Second,
		MaxInFlight: 4,
	}
	return NewScorerService(cfg, zap.NewNop()), server
}

func TestEvaluateSessionAck(t *testing.T) {
	sessionID := uuid.New()
	var gotBody string

	scorer, _ := newTestScorer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/evaluate/session" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		json.NewEncoder(w).Encode(map[string]any{"accepted": true, "reference": "scorer-42"})
	})

	batch := []dto.AnswerBatchItem{
		{QuestionID: uuid.New(), AnswerText: "sql joins"},
	}
	ack, err := scorer.EvaluateSession(context.Background(), sessionID, batch, "http://cb/evaluation/webhook")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ack.Accepted {
		t.Fatalf("expected accepted ack")
	}
	if ack.Reference != "scorer-42" {
		t.Fatalf("unexpected reference: %q", ack.Reference)
	}

	if gjson.Get(gotBody, "session_id").String() != sessionID.String() {
		t.Fatalf("session_id not forwarded: %s", gotBody)
	}
	if gjson.Get(gotBody, "webhook_url").String() != "http://cb/evaluation/webhook" {
		t.Fatalf("webhook_url not forwarded: %s", gotBody)
	}
	if len(gjson.Get(gotBody, "answers").Array()) != 1 {
		t.Fatalf("answers not forwarded: %s", gotBody)
	}
}

func TestEvaluateSessionServerError(t *testing.T) {
	scorer, _ := newTestScorer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := scorer.EvaluateSession(context.Background(), uuid.New(), nil, "http://cb")
	if err == nil {
		t.Fatalf("expected error on 500")
	}
}

func TestEvaluateSessionRejected(t *testing.T) {
	scorer, _ := newTestScorer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"accepted": false})
	})

	_, err := scorer.EvaluateSession(context.Background(), uuid.New(), nil, "http://cb")
	if err == nil {
		t.Fatalf("expected error when scorer rejects")
	}
}

func TestEvaluateSessionUnreachable(t *testing.T) {
	scorer, server := newTestScorer(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := scorer.EvaluateSession(context.Background(), uuid.New(), nil, "http://cb")
	if err == nil {
		t.Fatalf("expected transport error")
	}
}
