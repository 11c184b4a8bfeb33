package interview

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	interviewmodel "github.com/careerlift/resume-coach/backend/internal/model/interview"
	"github.com/careerlift/resume-coach/backend/internal/service/ai"
	interviewservice "github.com/careerlift/resume-coach/backend/internal/service/interview"
	"github.com/careerlift/resume-coach/backend/pkg/utils"
)

// Handler exposes the interview orchestrator over HTTP.
type Handler struct {
	svc *interviewservice.Service
}

// New creates the interview handler.
func New(svc *interviewservice.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the interview routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/interviews", func(r chi.Router) {
		r.Post("/", h.handleStart)
		r.Get("/{sessionID}", h.handleStatus)
		r.Post("/{sessionID}/answers", h.handleAnswer)
	})
}

type startPayload struct {
	JobDescription  string `json:"jobDescription"`
	JobTitle        string `json:"jobTitle"`
	InterviewType   string `json:"interviewType"`
	Level           string `json:"level"`
	DurationMinutes int    `json:"durationMinutes"`
}

type startResponse struct {
	SessionID string `json:"sessionId"`
	Question  string `json:"question"`
	Audio     []byte `json:"audio,omitempty"`
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var payload startPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Start(r.Context(), interviewservice.StartRequest{
		JobDescription:  payload.JobDescription,
		JobTitle:        payload.JobTitle,
		InterviewType:   payload.InterviewType,
		Level:           payload.Level,
		DurationMinutes: payload.DurationMinutes,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, startResponse{
		SessionID: result.SessionID,
		Question:  result.Question,
		Audio:     result.Audio,
	})
}

type answerPayload struct {
	AnswerText string `json:"answerText"`
	IsFinal    bool   `json:"isFinal"`
}

type answerResponse struct {
	NextQuestion   string                   `json:"nextQuestion,omitempty"`
	Audio          []byte                   `json:"audio,omitempty"`
	FinalFeedback  *interviewmodel.Feedback `json:"finalFeedback,omitempty"`
	ClosingMessage string                   `json:"closingMessage,omitempty"`
	Completed      bool                     `json:"completed,omitempty"`
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionID is required")
		return
	}

	var payload answerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.SubmitAnswer(r.Context(), sessionID, payload.AnswerText, payload.IsFinal)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, answerResponse{
		NextQuestion:   result.NextQuestion,
		Audio:          result.Audio,
		FinalFeedback:  result.FinalFeedback,
		ClosingMessage: result.ClosingMessage,
		Completed:      result.Completed,
	})
}

type statusResponse struct {
	SessionID       string                   `json:"sessionId"`
	State           interviewmodel.State     `json:"state"`
	TurnCount       int                      `json:"turnCount"`
	HistoryLength   int                      `json:"historyLength"`
	CurrentQuestion string                   `json:"currentQuestion,omitempty"`
	FinalFeedback   *interviewmodel.Feedback `json:"finalFeedback,omitempty"`
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionID is required")
		return
	}

	sess, err := h.svc.Get(sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, statusResponse{
		SessionID:       sess.ID,
		State:           sess.State,
		TurnCount:       sess.TurnCount,
		HistoryLength:   len(sess.History),
		CurrentQuestion: sess.CurrentQuestion,
		FinalFeedback:   sess.FinalFeedback,
	})
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interviewservice.ErrInvalidInput):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, interviewservice.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, interviewservice.ErrAlreadyComplete),
		errors.Is(err, interviewservice.ErrConflict):
		utils.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, interviewservice.ErrGenerationFailed),
		errors.Is(err, ai.ErrUpstreamUnavailable):
		utils.RespondError(w, http.StatusBadGateway, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
