package analysis

import (
	"strings"

	"github.com/auditkit/question-analyzer/internal/domain/questions"
)

// Verdict is the heuristic classifier's output for one question.
type Verdict struct {
	RequirementMet questions.TriState
	Confidence     float64
	Reasoning      string
}

var (
	positiveKeywords = []string{"yes", "implemented", "compliant", "meets", "satisfies", "fulfills"}
	negativeKeywords = []string{"no", "missing", "non-compliant", "fails", "violates", "lacks"}
)

// ClassifyQuestion decides met/not-met/unknown from keyword containment.
// Negative indicators take precedence when both are present. Pure function
// of its input.
func ClassifyQuestion(question string) Verdict {
	lower := strings.ToLower(question)

	hasPositive := containsAny(lower, positiveKeywords)
	hasNegative := containsAny(lower, negativeKeywords)

	switch {
	case hasPositive && !hasNegative:
		return Verdict{
			RequirementMet: questions.Met,
			Confidence:     0.7,
			Reasoning:      "Question contains positive indicators suggesting requirement may be met.",
		}
	case hasNegative:
		return Verdict{
			RequirementMet: questions.NotMet,
			Confidence:     0.7,
			Reasoning:      "Question contains negative indicators suggesting requirement may not be met.",
		}
	default:
		return Verdict{
			RequirementMet: questions.Unknown,
			Confidence:     0.3,
			Reasoning:      "Cannot determine requirement status from question text alone. Requires evidence review.",
		}
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
