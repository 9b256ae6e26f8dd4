package ai

// RawQuestion is one per-question record as returned by a backend, before
// normalization. requirement_met and confidence are deliberately untyped:
// models return booleans, strings, numbers or null for both, and only the
// normalization layer resolves them.
type RawQuestion struct {
	Question       string `json:"question"`
	Answer         string `json:"answer"`
	Evidence       string `json:"evidence"`
	RequirementMet any    `json:"requirement_met"`
	Confidence     any    `json:"confidence"`
	Reasoning      string `json:"reasoning"`
}
