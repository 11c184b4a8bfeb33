package ai

import (
	"testing"
)

func TestParseEvaluation(t *testing.T) {
	content := `{"completeness": 0.9, "clarity": 0.8, "technicalAccuracy": 0.7, "missingPoints": ["indexes"], "suggestedFollowUp": "How would you index it?", "nextQuestion": "Describe a schema migration you ran."}`

	eval, err := ParseEvaluation(content)
	if err != nil {
		t.Fatalf("ParseEvaluation err: %v", err)
	}
	if eval.Completeness != 0.9 {
		t.Fatalf("unexpected completeness: %v", eval.Completeness)
	}
	if eval.NextQuestion != "Describe a schema migration you ran." {
		t.Fatalf("unexpected nextQuestion: %q", eval.NextQuestion)
	}
	if len(eval.MissingPoints) != 1 || eval.MissingPoints[0] != "indexes" {
		t.Fatalf("unexpected missingPoints: %v", eval.MissingPoints)
	}
}

func TestParseEvaluationFencedOutput(t *testing.T) {
	content := "Here is the evaluation:\n```json\n{\"completeness\": 0.5, \"clarity\": 0.5, \"technicalAccuracy\": 0.5}\n```"

	eval, err := ParseEvaluation(content)
	if err != nil {
		t.Fatalf("ParseEvaluation err: %v", err)
	}
	if eval.Completeness != 0.5 {
		t.Fatalf("unexpected completeness: %v", eval.Completeness)
	}
}

func TestParseEvaluationClampsScores(t *testing.T) {
	content := `{"completeness": 1.7, "clarity": -0.4, "technicalAccuracy": 0.5}`

	eval, err := ParseEvaluation(content)
	if err != nil {
		t.Fatalf("ParseEvaluation err: %v", err)
	}
	if eval.Completeness != 1 {
		t.Fatalf("completeness should clamp to 1, got %v", eval.Completeness)
	}
	if eval.Clarity != 0 {
		t.Fatalf("clarity should clamp to 0, got %v", eval.Clarity)
	}
}

func TestParseEvaluationMissingObject(t *testing.T) {
	if _, err := ParseEvaluation("I could not evaluate that."); err == nil {
		t.Fatal("expected error for output without a JSON object")
	}
}

func TestParseFeedback(t *testing.T) {
	content := `{"technicalSkills": 8, "communication": 7, "problemSolving": 9, "roleFit": 6, "overallImpression": 8, "missingAreas": ["system design"], "summary": "Strong fundamentals."}`

	fb, err := ParseFeedback(content)
	if err != nil {
		t.Fatalf("ParseFeedback err: %v", err)
	}
	if fb.TechnicalSkills != 8 || fb.OverallImpression != 8 {
		t.Fatalf("unexpected scores: %+v", fb)
	}
	if fb.Summary != "Strong fundamentals." {
		t.Fatalf("unexpected summary: %q", fb.Summary)
	}
}

func TestParseFeedbackClampsScores(t *testing.T) {
	content := `{"technicalSkills": 14, "communication": 0, "problemSolving": -3, "roleFit": 5, "overallImpression": 10, "summary": "x"}`

	fb, err := ParseFeedback(content)
	if err != nil {
		t.Fatalf("ParseFeedback err: %v", err)
	}
	if fb.TechnicalSkills != 10 {
		t.Fatalf("technicalSkills should clamp to 10, got %d", fb.TechnicalSkills)
	}
	if fb.Communication != 1 || fb.ProblemSolving != 1 {
		t.Fatalf("low scores should clamp to 1, got %d/%d", fb.Communication, fb.ProblemSolving)
	}
}
