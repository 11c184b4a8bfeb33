package interview

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/careerlift/resume-coach/backend/internal/config"
	"github.com/careerlift/resume-coach/backend/internal/model/interview"
	"github.com/careerlift/resume-coach/backend/internal/service/ai"
	"github.com/careerlift/resume-coach/backend/internal/service/session"
)

// closingMessage ends a session that hit the turn cap or ran out of
// time. It is returned to the caller without audio and never appended
// to history.
const closingMessage = "We have reached the end of our time. Thank you for the conversation — submit a final answer to receive your detailed feedback."

// genericContinuation keeps the interview moving when the evaluation
// produced no usable question. The orchestrator never emits an empty
// question.
const genericContinuation = "Could you expand on that? Walk me through your specific contribution and what you would do differently today."

// followUpThreshold decides between probing deeper and moving on: below
// it, the suggested follow-up wins over the next fresh question.
const followUpThreshold = 0.7

// Completion is the retrying text-generation capability the
// orchestrator drives.
type Completion interface {
	Complete(ctx context.Context, messages []*schema.Message) (string, error)
	CompleteQuestion(ctx context.Context, messages []*schema.Message, interviewType interview.Type, level, jobTitle string) (string, error)
}

// Synthesizer turns interviewer text into spoken audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, sessionID, text string) ([]byte, error)
}

// Service is the interview state machine: it starts sessions, evaluates
// answers, and decides between the next question and termination.
// Sessions move Created -> InProgress -> Complete, and Complete is
// terminal.
type Service struct {
	store      *session.Store
	completion Completion
	speech     Synthesizer
	cfg        config.InterviewConfig
	now        func() time.Time
}

// NewService wires the orchestrator to its collaborators.
func NewService(store *session.Store, completion Completion, speech Synthesizer, cfg config.InterviewConfig) *Service {
	return &Service{
		store:      store,
		completion: completion,
		speech:     speech,
		cfg:        cfg,
		now:        time.Now,
	}
}

// StartRequest carries the inputs for a new session.
type StartRequest struct {
	JobDescription  string
	JobTitle        string
	InterviewType   string
	Level           string
	DurationMinutes int
}

// StartResult is the spoken opening turn.
type StartResult struct {
	SessionID string
	Question  string
	Audio     []byte
}

// AnswerResult is one of three shapes: a next question with audio, the
// terminal feedback, or a closing message when the session concluded.
type AnswerResult struct {
	NextQuestion   string
	Audio          []byte
	FinalFeedback  *interview.Feedback
	ClosingMessage string
	Completed      bool
}

// Start validates the request, generates the spoken opening turn, and
// only then creates the session, so a failed start leaves nothing
// behind. Upstream exhaustion on this path degrades to a templated
// fallback question rather than failing the request.
func (s *Service) Start(ctx context.Context, req StartRequest) (*StartResult, error) {
	jobDescription := strings.TrimSpace(req.JobDescription)
	if jobDescription == "" {
		return nil, fmt.Errorf("%w: job description is required", ErrInvalidInput)
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = s.cfg.DefaultDurationMinutes
	}
	interviewType := interview.ParseType(req.InterviewType)

	sess := interview.Session{
		JobDescription:  jobDescription,
		InterviewType:   interviewType,
		Level:           strings.TrimSpace(req.Level),
		DurationMinutes: duration,
		State:           interview.StateCreated,
	}

	messages := ai.OpeningTranscript(jobDescription, interviewType, req.Level)
	question, err := s.completion.CompleteQuestion(ctx, messages, interviewType, req.Level, req.JobTitle)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	question = strings.TrimSpace(question)
	if question == "" {
		question = genericContinuation
	}

	audio, err := s.speech.Synthesize(ctx, "", question)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	sess.State = interview.StateInProgress
	sess.History = []interview.Message{{Role: interview.RoleInterviewer, Content: question}}
	sess.CurrentQuestion = question
	sess.TurnCount = 1

	created := s.store.Create(sess)
	log.Printf("[interview] started session=%s type=%s duration=%dm", created.ID, interviewType, duration)

	return &StartResult{SessionID: created.ID, Question: question, Audio: audio}, nil
}

// Get returns a snapshot of the session for status reads.
func (s *Service) Get(sessionID string) (interview.Session, error) {
	return s.store.Get(sessionID)
}

// SubmitAnswer records the candidate's answer and either continues with
// the next spoken question, concludes with a closing message, or (when
// isFinal) scores the whole session. External calls happen off the
// store lock; the commit re-validates state and version, so a
// concurrently deleted or completed session discards the result.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID, answerText string, isFinal bool) (*AnswerResult, error) {
	answer := strings.TrimSpace(answerText)
	if answer == "" && !isFinal {
		return nil, fmt.Errorf("%w: answer text is required", ErrInvalidInput)
	}

	snap, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if snap.State == interview.StateComplete {
		return nil, ErrAlreadyComplete
	}

	if isFinal {
		return s.finishWithFeedback(ctx, snap, answer)
	}
	return s.continueInterview(ctx, snap, answer)
}

// finishWithFeedback scores the transcript and completes the session.
// History is never mutated on this path.
func (s *Service) finishWithFeedback(ctx context.Context, snap interview.Session, answer string) (*AnswerResult, error) {
	transcript := snap.History
	if answer != "" {
		transcript = append(append([]interview.Message(nil), snap.History...),
			interview.Message{Role: interview.RoleCandidate, Content: answer})
	}

	text, err := s.completion.Complete(ctx, ai.FeedbackTranscript(snap.JobDescription, transcript))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	feedback, err := ai.ParseFeedback(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if _, err := s.store.Mutate(snap.ID, func(sess *interview.Session) error {
		if sess.State == interview.StateComplete {
			return ErrAlreadyComplete
		}
		if sess.Version != snap.Version {
			return ErrConflict
		}
		sess.State = interview.StateComplete
		sess.FinalFeedback = feedback
		return nil
	}); err != nil {
		return nil, err
	}

	log.Printf("[interview] session=%s complete with feedback, turns=%d", snap.ID, snap.TurnCount)
	return &AnswerResult{FinalFeedback: feedback, Completed: true}, nil
}

// continueInterview appends the answer and either emits the next spoken
// question or concludes. Termination is checked after the answer append
// and before a question is emitted; when the append alone already trips
// the cap or the clock, no external calls are made at all.
func (s *Service) continueInterview(ctx context.Context, snap interview.Session, answer string) (*AnswerResult, error) {
	if s.wouldConclude(len(snap.History)+1, snap.Deadline()) {
		return s.conclude(snap, answer)
	}

	text, err := s.completion.Complete(ctx, ai.EvaluationTranscript(snap.JobDescription, snap.History, answer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	eval, err := ai.ParseEvaluation(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	next := chooseNextQuestion(eval)

	audio, err := s.speech.Synthesize(ctx, snap.ID, next)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	concluded := false
	if _, err := s.store.Mutate(snap.ID, func(sess *interview.Session) error {
		if sess.State == interview.StateComplete {
			return ErrAlreadyComplete
		}
		if sess.Version != snap.Version {
			return ErrConflict
		}

		sess.History = append(sess.History, interview.Message{Role: interview.RoleCandidate, Content: answer})

		// Re-check after the append: time may have run out while the
		// evaluation was in flight. The generated question is discarded.
		if s.wouldConclude(len(sess.History), sess.Deadline()) {
			sess.State = interview.StateComplete
			concluded = true
			return nil
		}

		sess.History = append(sess.History, interview.Message{Role: interview.RoleInterviewer, Content: next})
		sess.CurrentQuestion = next
		sess.TurnCount++
		return nil
	}); err != nil {
		return nil, err
	}

	if concluded {
		log.Printf("[interview] session=%s concluded at commit", snap.ID)
		return &AnswerResult{ClosingMessage: closingMessage, Completed: true}, nil
	}

	return &AnswerResult{NextQuestion: next, Audio: audio}, nil
}

// conclude commits the final answer append and the Complete transition
// without asking the upstream for anything.
func (s *Service) conclude(snap interview.Session, answer string) (*AnswerResult, error) {
	if _, err := s.store.Mutate(snap.ID, func(sess *interview.Session) error {
		if sess.State == interview.StateComplete {
			return ErrAlreadyComplete
		}
		if sess.Version != snap.Version {
			return ErrConflict
		}
		sess.History = append(sess.History, interview.Message{Role: interview.RoleCandidate, Content: answer})
		sess.State = interview.StateComplete
		return nil
	}); err != nil {
		return nil, err
	}

	log.Printf("[interview] session=%s concluded, history=%d entries", snap.ID, len(snap.History)+1)
	return &AnswerResult{ClosingMessage: closingMessage, Completed: true}, nil
}

// wouldConclude applies the two termination conditions: the fixed
// history cap and the session deadline. Whichever trips first wins.
func (s *Service) wouldConclude(historyLen int, deadline time.Time) bool {
	if historyLen >= s.cfg.MaxHistoryEntries {
		return true
	}
	return s.now().After(deadline)
}

// chooseNextQuestion applies the completeness rule and guarantees a
// non-empty result.
func chooseNextQuestion(eval *interview.Evaluation) string {
	primary, secondary := eval.NextQuestion, eval.SuggestedFollowUp
	if eval.Completeness < followUpThreshold {
		primary, secondary = eval.SuggestedFollowUp, eval.NextQuestion
	}

	if primary != "" {
		return primary
	}
	if secondary != "" {
		return secondary
	}
	return genericContinuation
}
