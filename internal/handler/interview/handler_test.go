package interview

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"

	"github.com/careerlift/resume-coach/backend/internal/config"
	interviewmodel "github.com/careerlift/resume-coach/backend/internal/model/interview"
	interviewservice "github.com/careerlift/resume-coach/backend/internal/service/interview"
	"github.com/careerlift/resume-coach/backend/internal/service/session"
)

type stubCompletion struct {
	response string
}

func (s *stubCompletion) Complete(context.Context, []*schema.Message) (string, error) {
	return s.response, nil
}

func (s *stubCompletion) CompleteQuestion(context.Context, []*schema.Message, interviewmodel.Type, string, string) (string, error) {
	return "Tell me about your Go experience.", nil
}

type stubSynthesizer struct{}

func (stubSynthesizer) Synthesize(_ context.Context, _, text string) ([]byte, error) {
	return []byte("audio"), nil
}

func setupRouter(completion *stubCompletion) (*chi.Mux, *interviewservice.Service) {
	store := session.NewStore()
	svc := interviewservice.NewService(store, completion, stubSynthesizer{}, config.InterviewConfig{
		MaxHistoryEntries:      10,
		DefaultDurationMinutes: 15,
		RetryAttempts:          3,
		RetryBaseDelay:         time.Millisecond,
	})

	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	return r, svc
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestStartInterview(t *testing.T) {
	r, _ := setupRouter(&stubCompletion{})

	resp := postJSON(t, r, "/interviews", map[string]any{
		"jobDescription":  "Senior Backend Engineer role requiring Go and Postgres",
		"interviewType":   "technical",
		"durationMinutes": 15,
	})

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var body startResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body.SessionID == "" || body.Question == "" {
		t.Fatalf("incomplete start response: %+v", body)
	}
	if len(body.Audio) == 0 {
		t.Fatal("expected audio bytes in the response")
	}
}

func TestStartInterviewMissingJobDescription(t *testing.T) {
	r, _ := setupRouter(&stubCompletion{})

	resp := postJSON(t, r, "/interviews", map[string]any{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSubmitAnswerReturnsNextQuestion(t *testing.T) {
	completion := &stubCompletion{
		response: `{"completeness": 0.9, "clarity": 0.8, "technicalAccuracy": 0.8, "nextQuestion": "How do you handle migrations?"}`,
	}
	r, svc := setupRouter(completion)

	started, err := svc.Start(context.Background(), interviewservice.StartRequest{JobDescription: "Backend role"})
	if err != nil {
		t.Fatalf("Start err: %v", err)
	}

	resp := postJSON(t, r, "/interviews/"+started.SessionID+"/answers", map[string]any{
		"answerText": "I have 6 years of Go experience...",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body answerResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body.NextQuestion != "How do you handle migrations?" {
		t.Fatalf("unexpected next question: %q", body.NextQuestion)
	}
	if body.Completed {
		t.Fatal("session should not be complete yet")
	}
}

func TestSubmitAnswerUnknownSession(t *testing.T) {
	r, _ := setupRouter(&stubCompletion{})

	resp := postJSON(t, r, "/interviews/does-not-exist/answers", map[string]any{
		"answerText": "hello",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestSubmitFinalAnswerReturnsFeedback(t *testing.T) {
	completion := &stubCompletion{
		response: `{"technicalSkills": 8, "communication": 7, "problemSolving": 9, "roleFit": 7, "overallImpression": 8, "summary": "Well done."}`,
	}
	r, svc := setupRouter(completion)

	started, err := svc.Start(context.Background(), interviewservice.StartRequest{JobDescription: "Backend role"})
	if err != nil {
		t.Fatalf("Start err: %v", err)
	}

	resp := postJSON(t, r, "/interviews/"+started.SessionID+"/answers", map[string]any{
		"answerText": "closing thoughts",
		"isFinal":    true,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body answerResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body.FinalFeedback == nil || body.FinalFeedback.Summary != "Well done." {
		t.Fatalf("unexpected feedback: %+v", body.FinalFeedback)
	}

	// A second submission against the completed session conflicts.
	resp = postJSON(t, r, "/interviews/"+started.SessionID+"/answers", map[string]any{
		"answerText": "one more",
	})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestSessionStatus(t *testing.T) {
	r, svc := setupRouter(&stubCompletion{})

	started, err := svc.Start(context.Background(), interviewservice.StartRequest{JobDescription: "Backend role"})
	if err != nil {
		t.Fatalf("Start err: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/interviews/"+started.SessionID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body statusResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body.State != interviewmodel.StateInProgress {
		t.Fatalf("expected in_progress, got %s", body.State)
	}
	if body.HistoryLength != 1 {
		t.Fatalf("expected history length 1, got %d", body.HistoryLength)
	}
}
