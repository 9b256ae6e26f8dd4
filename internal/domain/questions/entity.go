package questions

// TriState is a verdict that distinguishes "not enough evidence" from
// "evidence of absence".
type TriState int

const (
	Unknown TriState = iota
	Met
	NotMet
)

// MarshalJSON renders the tri-state as true/false/null, the wire shape
// consumed by the frontend.
func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case Met:
		return []byte("true"), nil
	case NotMet:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (t TriState) String() string {
	switch t {
	case Met:
		return "met"
	case NotMet:
		return "not met"
	default:
		return "unknown"
	}
}

// QuestionRecord is one analyzed audit question with its derived verdict.
type QuestionRecord struct {
	Question       string   `json:"question"`
	RequirementMet TriState `json:"requirement_met"`
	Confidence     float64  `json:"confidence"`
	Reasoning      string   `json:"reasoning"`
	Answer         string   `json:"answer,omitempty"`
	Evidence       string   `json:"evidence,omitempty"`
}

// AnalysisResult aggregates all question records for one document.
type AnalysisResult struct {
	Questions      []QuestionRecord `json:"questions"`
	TotalQuestions int              `json:"total_questions"`
	MetCount       int              `json:"met_count"`
	NotMetCount    int              `json:"not_met_count"`
}
