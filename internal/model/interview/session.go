package interview

import "time"

// Role identifies the speaker of a transcript entry.
type Role string

const (
	RoleInterviewer Role = "interviewer"
	RoleCandidate   Role = "candidate"
)

// State tracks the session lifecycle. Complete is terminal.
type State string

const (
	StateCreated    State = "created"
	StateInProgress State = "in_progress"
	StateComplete   State = "complete"
)

// Type selects the flavour of questions the interviewer asks.
type Type string

const (
	TypeTechnical  Type = "technical"
	TypeBehavioral Type = "behavioral"
	TypeMixed      Type = "mixed"
)

// Message is one transcript entry. History is append-only; the
// interviewer opens every exchange pair.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Session captures one in-flight mock interview. All mutation goes
// through the session store; everything handed out is a copy.
type Session struct {
	ID              string    `json:"id"`
	JobDescription  string    `json:"jobDescription"`
	InterviewType   Type      `json:"interviewType"`
	Level           string    `json:"level,omitempty"`
	History         []Message `json:"history"`
	CurrentQuestion string    `json:"currentQuestion"`
	DurationMinutes int       `json:"durationMinutes"`
	State           State     `json:"state"`
	TurnCount       int       `json:"turnCount"`
	StartedAt       time.Time `json:"startedAt"`
	LastActivityAt  time.Time `json:"lastActivityAt"`
	FinalFeedback   *Feedback `json:"finalFeedback,omitempty"`

	// Version increments on every committed mutation, letting callers
	// detect concurrent writes between snapshot and commit.
	Version int64 `json:"-"`
}

// Deadline returns the wall-clock instant after which the session is
// considered out of time.
func (s *Session) Deadline() time.Time {
	return s.StartedAt.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// Clone returns a deep copy safe to hand outside the store's lock.
func (s *Session) Clone() Session {
	cp := *s
	cp.History = append([]Message(nil), s.History...)
	if s.FinalFeedback != nil {
		fb := *s.FinalFeedback
		fb.MissingAreas = append([]string(nil), s.FinalFeedback.MissingAreas...)
		cp.FinalFeedback = &fb
	}
	return cp
}

// ParseType normalizes a user-supplied interview type, falling back to
// mixed for anything unrecognized.
func ParseType(raw string) Type {
	switch Type(raw) {
	case TypeTechnical, TypeBehavioral, TypeMixed:
		return Type(raw)
	default:
		return TypeMixed
	}
}
