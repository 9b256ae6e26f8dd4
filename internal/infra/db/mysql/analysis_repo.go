package mysql

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

// Save inserts an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO audit_analysis
  (id, filename, file_url, result_json, total_questions, met_count, not_met_count, created_at)
VALUES (?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  filename=VALUES(filename), file_url=VALUES(file_url), result_json=VALUES(result_json),
  total_questions=VALUES(total_questions), met_count=VALUES(met_count), not_met_count=VALUES(not_met_count);
`
	filename := stringOrDash(a.Filename)
	result := a.Result
	if strings.TrimSpace(result) == "" {
		// result_json column requires valid JSON; use empty object
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
LIMIT ? OFFSET ?;
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
