package ai

import (
	"fmt"
	"strings"

	"github.com/careerlift/resume-coach/backend/internal/model/interview"
)

// fallbackTemplate holds the locally generated question used when the
// completion upstream is unavailable. %s slots take the role phrase.
type fallbackTemplate struct {
	question string
}

var fallbackTemplates = map[interview.Type]fallbackTemplate{
	interview.TypeTechnical: {
		question: "Walk me through a technically challenging project you worked on as %s. What made it hard, and what trade-offs did you make?",
	},
	interview.TypeBehavioral: {
		question: "Tell me about a time you disagreed with a teammate while working as %s. How did you handle it, and what was the outcome?",
	},
	interview.TypeMixed: {
		question: "Tell me about yourself and what drew you to apply for this %s position. Feel free to touch on both your technical background and how you work with others.",
	},
}

const genericFallbackQuestion = "Tell me about your background and the experience that makes you a good fit for this role."

// FallbackQuestion returns a static question templated by interview
// type, level, and job title. It is never empty, including for
// unrecognized types.
func FallbackQuestion(interviewType interview.Type, level, jobTitle string) string {
	tmpl, ok := fallbackTemplates[interviewType]
	if !ok {
		return genericFallbackQuestion
	}

	role := rolePhrase(level, jobTitle)
	return fmt.Sprintf(tmpl.question, role)
}

func rolePhrase(level, jobTitle string) string {
	level = strings.TrimSpace(level)
	jobTitle = strings.TrimSpace(jobTitle)

	switch {
	case level != "" && jobTitle != "":
		return fmt.Sprintf("a %s %s", strings.ToLower(level), jobTitle)
	case jobTitle != "":
		return fmt.Sprintf("a %s", jobTitle)
	case level != "":
		return fmt.Sprintf("a %s engineer", strings.ToLower(level))
	default:
		return "a candidate for this role"
	}
}
