package analyzer

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/auditkit/question-analyzer/internal/analysis"
	"github.com/auditkit/question-analyzer/internal/application"
	"github.com/auditkit/question-analyzer/internal/domain/ai"
	"github.com/auditkit/question-analyzer/internal/domain/questions"
	"github.com/auditkit/question-analyzer/internal/middleware"
)

// confidence assigned to backend records with a missing or malformed value
const defaultConfidence = 0.3

// Service orchestrates the two-stage pipeline: try the AI backend first,
// degrade to the regex extractor plus keyword classifier when it is
// unavailable. History and Artifacts are optional; a nil port disables the
// corresponding side effect without affecting analysis.
type Service struct {
	AI        ai.Client
	History   questions.Repository
	Artifacts questions.ArtifactStore
	Clock     application.Clock
}

func NewService(client ai.Client, history questions.Repository, artifacts questions.ArtifactStore, clock application.Clock) *Service {
	if clock == nil {
		clock = application.SystemClock{}
	}
	return &Service{AI: client, History: history, Artifacts: artifacts, Clock: clock}
}

// AnalyzeText runs the full pipeline over extracted document text.
// It fails with questions.ErrNoText on empty input and questions.ErrNoQuestions
// when neither path yields a record; both are user-actionable conditions.
func (s *Service) AnalyzeText(ctx context.Context, text string) (*questions.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, questions.ErrNoText
	}

	var records []questions.QuestionRecord
	raw, err := s.AI.Extract(ctx, text)
	if err == nil {
		records = normalizeRaw(raw)
	} else {
		// Any adapter failure means "unavailable"; the heuristic path
		// is the designed degradation, not an error condition.
		middleware.IncrementFallbacks()
		for _, q := range analysis.ExtractQuestions(text) {
			v := analysis.ClassifyQuestion(q)
			records = append(records, questions.QuestionRecord{
				Question:       q,
				RequirementMet: v.RequirementMet,
				Confidence:     v.Confidence,
				Reasoning:      v.Reasoning,
			})
		}
	}

	if len(records) == 0 {
		return nil, questions.ErrNoQuestions
	}

	result := &questions.AnalysisResult{
		Questions:      records,
		TotalQuestions: len(records),
	}
	for _, r := range records {
		switch r.RequirementMet {
		case questions.Met:
			result.MetCount++
		case questions.NotMet:
			result.NotMetCount++
		}
	}
	middleware.IncrementAnalyses()
	return result, nil
}

// normalizeRaw reconciles backend records into QuestionRecords. Records
// without a question text are skipped silently.
func normalizeRaw(raw []ai.RawQuestion) []questions.QuestionRecord {
	var out []questions.QuestionRecord
	for _, r := range raw {
		q := strings.TrimSpace(r.Question)
		if q == "" {
			continue
		}
		reasoning := strings.TrimSpace(r.Reasoning)
		if reasoning == "" {
			reasoning = "LLM analysis provided."
		}
		out = append(out, questions.QuestionRecord{
			Question:       q,
			RequirementMet: analysis.DeriveRequirementMet(strings.TrimSpace(r.Answer), r.RequirementMet),
			Confidence:     analysis.ParseConfidence(r.Confidence, defaultConfidence),
			Reasoning:      reasoning,
			Answer:         strings.TrimSpace(r.Answer),
			Evidence:       strings.TrimSpace(r.Evidence),
		})
	}
	return out
}

// Archive uploads the original document to the artifact store. Best-effort:
// an unconfigured store or upload failure yields an empty URL.
func (s *Service) Archive(ctx context.Context, localPath, key string) string {
	if s.Artifacts == nil {
		return ""
	}
	url, err := s.Artifacts.Upload(ctx, localPath, key)
	if err != nil {
		log.Printf("artifact upload failed for %s: %v", key, err)
		return ""
	}
	return url
}

// Record persists a completed analysis when a history repository is
// configured. Persistence failures are logged, never surfaced: the analysis
// already succeeded from the caller's point of view.
func (s *Service) Record(ctx context.Context, filename, fileURL string, result *questions.AnalysisResult) {
	if s.History == nil || result == nil {
		return
	}
	body, err := json.Marshal(result)
	if err != nil {
		log.Printf("history marshal failed for %s: %v", filename, err)
		return
	}
	a := &questions.Analysis{
		ID:             questions.AnalysisID(uuid.NewString()),
		Filename:       filename,
		FileURL:        fileURL,
		Result:         string(body),
		TotalQuestions: result.TotalQuestions,
		MetCount:       result.MetCount,
		NotMetCount:    result.NotMetCount,
		CreatedAt:      s.Clock.Now(),
	}
	if err := s.History.Save(ctx, a); err != nil {
		log.Printf("history save failed for %s: %v", filename, err)
	}
}

// ListAnalyses returns a page of stored analyses, newest first. Without a
// repository the history is simply empty.
func (s *Service) ListAnalyses(ctx context.Context, page, pageSize int) ([]*questions.Analysis, error) {
	if s.History == nil {
		return []*questions.Analysis{}, nil
	}
	return s.History.Paginate(ctx, page, pageSize)
}
