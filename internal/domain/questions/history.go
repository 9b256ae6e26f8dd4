package questions

import "time"

// AnalysisID identifier type
type AnalysisID string

// Analysis is one stored analysis run, kept for auditing and retrieval
type Analysis struct {
	ID             AnalysisID `json:"id"`
	Filename       string     `json:"filename"`
	FileURL        string     `json:"file_url,omitempty"`
	Result         string     `json:"result"` // AnalysisResult as JSON
	TotalQuestions int        `json:"total_questions"`
	MetCount       int        `json:"met_count"`
	NotMetCount    int        `json:"not_met_count"`
	CreatedAt      time.Time  `json:"created_at"`
}
