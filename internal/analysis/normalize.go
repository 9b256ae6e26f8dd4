package analysis

import (
	"strconv"
	"strings"

	"github.com/auditkit/question-analyzer/internal/domain/questions"
)

var (
	truthyStrings = map[string]bool{
		"true": true, "yes": true, "y": true, "met": true,
		"compliant": true, "satisfied": true, "fulfilled": true,
	}
	falsyStrings = map[string]bool{
		"false": true, "no": true, "n": true, "not met": true,
		"non-compliant": true, "missing": true, "fails": true,
	}
)

// NormalizeBool coerces a loosely-typed backend value to a tri-state.
// Native booleans pass through; known strings map case-insensitively;
// everything else is Unknown.
func NormalizeBool(value any) questions.TriState {
	switch v := value.(type) {
	case bool:
		if v {
			return questions.Met
		}
		return questions.NotMet
	case string:
		lowered := strings.ToLower(strings.TrimSpace(v))
		if truthyStrings[lowered] {
			return questions.Met
		}
		if falsyStrings[lowered] {
			return questions.NotMet
		}
	}
	return questions.Unknown
}

// DeriveRequirementMet resolves the verdict for a backend record. An
// explicit requirement_met field wins; otherwise a free-text answer may
// imply the verdict.
func DeriveRequirementMet(answer, requirementMet any) questions.TriState {
	if t := NormalizeBool(requirementMet); t != questions.Unknown {
		return t
	}
	return NormalizeBool(answer)
}

// ParseConfidence coerces a possibly-absent or malformed confidence value
// to a float, falling back to def on any failure.
func ParseConfidence(value any, def float64) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}
