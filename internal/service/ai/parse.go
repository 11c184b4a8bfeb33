package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/careerlift/resume-coach/backend/internal/model/interview"
)

// Model output parsing. The chain returns plain text; the JSON object is
// cut out of it so fenced or prefixed output still parses.

// ParseEvaluation decodes the per-answer evaluation object, clamping
// fractional scores into [0, 1].
func ParseEvaluation(content string) (*interview.Evaluation, error) {
	raw, err := extractJSONObject(content)
	if err != nil {
		return nil, fmt.Errorf("evaluation payload: %w", err)
	}

	eval := &interview.Evaluation{}
	if err := json.Unmarshal(raw, eval); err != nil {
		return nil, fmt.Errorf("evaluation payload: %w", err)
	}

	eval.Completeness = clampFraction(eval.Completeness)
	eval.Clarity = clampFraction(eval.Clarity)
	eval.TechnicalAccuracy = clampFraction(eval.TechnicalAccuracy)
	eval.SuggestedFollowUp = strings.TrimSpace(eval.SuggestedFollowUp)
	eval.NextQuestion = strings.TrimSpace(eval.NextQuestion)
	return eval, nil
}

// ParseFeedback decodes the terminal scoring object, clamping sub-scores
// into [1, 10].
func ParseFeedback(content string) (*interview.Feedback, error) {
	raw, err := extractJSONObject(content)
	if err != nil {
		return nil, fmt.Errorf("feedback payload: %w", err)
	}

	fb := &interview.Feedback{}
	if err := json.Unmarshal(raw, fb); err != nil {
		return nil, fmt.Errorf("feedback payload: %w", err)
	}

	fb.TechnicalSkills = clampScore(fb.TechnicalSkills)
	fb.Communication = clampScore(fb.Communication)
	fb.ProblemSolving = clampScore(fb.ProblemSolving)
	fb.RoleFit = clampScore(fb.RoleFit)
	fb.OverallImpression = clampScore(fb.OverallImpression)
	fb.Summary = strings.TrimSpace(fb.Summary)
	return fb, nil
}

func extractJSONObject(content string) ([]byte, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("missing json object")
	}
	return []byte(trimmed[start : end+1]), nil
}

func clampFraction(val float64) float64 {
	if val < 0 {
		return 0
	}
	if val > 1 {
		return 1
	}
	return val
}

func clampScore(val int) int {
	if val < 1 {
		return 1
	}
	if val > 10 {
		return 10
	}
	return val
}
