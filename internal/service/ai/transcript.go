package ai

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/careerlift/resume-coach/backend/internal/model/interview"
)

// Transcript assembly: each orchestrator call gets a system framing plus
// the role-tagged conversation so far. These are pure functions of their
// inputs and never touch session state.

const openingSystemPrompt = "You are an experienced %s interviewer conducting a mock interview for the position described below. Ask one opening question that is specific to the role. Return only the question text, with no preamble.\n\nPosition description:\n%s"

const evaluationSystemPrompt = "You are an experienced interviewer running a mock interview for the position described below. Evaluate the candidate's latest answer against the question it was given for.\nReturn only a JSON object with these fields: completeness (number 0-1), clarity (number 0-1), technicalAccuracy (number 0-1), missingPoints (array of short strings), suggestedFollowUp (a follow-up question probing what the answer missed), nextQuestion (a fresh question moving the interview forward). No other text.\n\nPosition description:\n%s"

const feedbackSystemPrompt = "You are an experienced interviewer concluding a mock interview for the position described below. Score the candidate over the whole conversation.\nReturn only a JSON object with these fields: technicalSkills, communication, problemSolving, roleFit, overallImpression (each an integer 1-10), missingAreas (array of short strings), summary (a few sentences of actionable feedback). No other text.\n\nPosition description:\n%s"

// OpeningTranscript frames the request for the first interviewer turn.
func OpeningTranscript(jobDescription string, interviewType interview.Type, level string) []*schema.Message {
	kind := string(interviewType)
	if level = strings.TrimSpace(level); level != "" {
		kind = fmt.Sprintf("%s-level %s", strings.ToLower(level), kind)
	}

	return []*schema.Message{
		schema.SystemMessage(fmt.Sprintf(openingSystemPrompt, kind, jobDescription)),
		schema.UserMessage("Please ask your opening question."),
	}
}

// EvaluationTranscript frames the per-answer evaluation: system framing,
// the transcript so far, and the answer under judgement as the final
// candidate turn.
func EvaluationTranscript(jobDescription string, history []interview.Message, answer string) []*schema.Message {
	messages := []*schema.Message{
		schema.SystemMessage(fmt.Sprintf(evaluationSystemPrompt, jobDescription)),
	}
	messages = append(messages, historyMessages(history)...)
	messages = append(messages, schema.UserMessage(answer))
	return messages
}

// FeedbackTranscript frames the terminal scoring over the whole session.
func FeedbackTranscript(jobDescription string, history []interview.Message) []*schema.Message {
	messages := []*schema.Message{
		schema.SystemMessage(fmt.Sprintf(feedbackSystemPrompt, jobDescription)),
	}
	messages = append(messages, historyMessages(history)...)
	messages = append(messages, schema.UserMessage("The interview is over. Please return the JSON scoring object."))
	return messages
}

// historyMessages maps transcript roles onto chat roles: the interviewer
// speaks as the assistant, the candidate as the user.
func historyMessages(history []interview.Message) []*schema.Message {
	if len(history) == 0 {
		return nil
	}

	messages := make([]*schema.Message, 0, len(history))
	for _, msg := range history {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		switch msg.Role {
		case interview.RoleInterviewer:
			messages = append(messages, schema.AssistantMessage(content, nil))
		case interview.RoleCandidate:
			messages = append(messages, schema.UserMessage(content))
		}
	}
	return messages
}
