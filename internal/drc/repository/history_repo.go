package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/socforge/drc-backend/internal/drc/domain"
)

// HistoryRepo persists completed reports to Postgres so callers can revisit
// past runs.
type HistoryRepo struct {
	db *pgxpool.Pool
}

// NewHistoryRepo creates a HistoryRepo.
func NewHistoryRepo(db *pgxpool.Pool) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Insert stores one report and returns it with ID and timestamp filled in.
func (r *HistoryRepo) Insert(ctx context.Context, diagramHash string, result *domain.DRCResult) (*domain.StoredReport, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	report := &domain.StoredReport{
		ID:          uuid.New().String(),
		DiagramHash: diagramHash,
		Result:      *result,
		CreatedAt:   time.Now().UTC(),
	}

	_, err = r.db.Exec(ctx, `
insert into drc_reports (id, diagram_hash, result, created_at)
values ($1, $2, $3, $4)
`, report.ID, report.DiagramHash, resultJSON, report.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}
	return report, nil
}

// GetByID fetches one stored report.
func (r *HistoryRepo) GetByID(ctx context.Context, id string) (*domain.StoredReport, error) {
	var (
		report     domain.StoredReport
		resultJSON []byte
	)
	err := r.db.QueryRow(ctx, `
select id, diagram_hash, result, created_at
from drc_reports
where id = $1
`, id).Scan(&report.ID, &report.DiagramHash, &resultJSON, &report.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	if err := json.Unmarshal(resultJSON, &report.Result); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}

// ListRecent returns the newest reports, newest first.
func (r *HistoryRepo) ListRecent(ctx context.Context, limit int) ([]domain.StoredReport, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `
select id, diagram_hash, result, created_at
from drc_reports
order by created_at desc
limit $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []domain.StoredReport
	for rows.Next() {
		var (
			report     domain.StoredReport
			resultJSON []byte
		)
		if err := rows.Scan(&report.ID, &report.DiagramHash, &resultJSON, &report.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		if err := json.Unmarshal(resultJSON, &report.Result); err != nil {
			return nil, fmt.Errorf("unmarshal report: %w", err)
		}
		out = append(out, report)
	}
	return out, rows.Err()
}
