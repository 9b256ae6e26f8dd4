package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/auditkit/question-analyzer/internal/domain/questions"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save inserts or updates an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO audit_analysis
  (id, filename, file_url, result_json, total_questions, met_count, not_met_count, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET
  filename=EXCLUDED.filename,
  file_url=EXCLUDED.file_url,
  result_json=EXCLUDED.result_json,
  total_questions=EXCLUDED.total_questions,
  met_count=EXCLUDED.met_count,
  not_met_count=EXCLUDED.not_met_count;
`
	filename := a.Filename
	if strings.TrimSpace(filename) == "" {
		filename = "-"
	}
	result := a.Result
	if strings.TrimSpace(result) == "" {
		result = "{}"
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q, a.ID, filename, a.FileURL, result,
		a.TotalQuestions, a.MetCount, a.NotMetCount, createdAt)
	return err
}

// Paginate returns a page of analysis records ordered by created_at desc
func (r *AnalysisRepository) Paginate(ctx context.Context, page, pageSize int) ([]*domain.Analysis, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, filename, file_url, result_json, total_questions, met_count, not_met_count, created_at
FROM audit_analysis
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2;
`
	rows, err := r.db.QueryContext(ctx, q, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		var a domain.Analysis
		var created time.Time
		if err := rows.Scan(&a.ID, &a.Filename, &a.FileURL, &a.Result,
			&a.TotalQuestions, &a.MetCount, &a.NotMetCount, &created); err != nil {
			return nil, err
		}
		a.CreatedAt = created
		out = append(out, &a)
	}
	return out, rows.Err()
}
