package interview

// Evaluation is the structured judgement of a single answer against the
// question it was given for. Fractional scores live in [0, 1].
type Evaluation struct {
	Completeness      float64  `json:"completeness"`
	Clarity           float64  `json:"clarity"`
	TechnicalAccuracy float64  `json:"technicalAccuracy"`
	MissingPoints     []string `json:"missingPoints,omitempty"`
	SuggestedFollowUp string   `json:"suggestedFollowUp,omitempty"`
	NextQuestion      string   `json:"nextQuestion,omitempty"`
}

// Feedback is the terminal scoring of a whole session. Sub-scores are
// integers in [1, 10]. Written once, when the session completes.
type Feedback struct {
	TechnicalSkills   int      `json:"technicalSkills"`
	Communication     int      `json:"communication"`
	ProblemSolving    int      `json:"problemSolving"`
	RoleFit           int      `json:"roleFit"`
	OverallImpression int      `json:"overallImpression"`
	MissingAreas      []string `json:"missingAreas,omitempty"`
	Summary           string   `json:"summary"`
}
