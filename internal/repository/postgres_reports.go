package repository

import (
	"context"
	"database/sql"
	"fmt"

	"roomops-data/internal/domain"
)

// PostgresReportsRepo 报表执行记录库 PostgreSQL 实现
// report_runs 表为 append-only：只 INSERT / SELECT，没有 UPDATE 路径
type PostgresReportsRepo struct {
	db *sql.DB
}

func NewPostgresReportsRepo(db *sql.DB) *PostgresReportsRepo {
	return &PostgresReportsRepo{db: db}
}

func (r *PostgresReportsRepo) CreateReportRun(ctx context.Context, run *domain.ReportRun) (*domain.ReportRun, error) {
	if run.ReportType == "" {
		return nil, fmt.Errorf("report_type is required")
	}
	q := `
		INSERT INTO report_runs (report_type, payload)
		VALUES ($1, $2)
		RETURNING report_id::text, report_type, payload, created_at`
	var created domain.ReportRun
	err := r.db.QueryRowContext(ctx, q, run.ReportType, []byte(run.Payload)).Scan(
		&created.ReportID, &created.ReportType, &created.Payload, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create report run: %w", err)
	}
	return &created, nil
}

func (r *PostgresReportsRepo) ListReportRuns(ctx context.Context, reportType string) ([]domain.ReportRun, error) {
	q := `SELECT report_id::text, report_type, payload, created_at FROM report_runs`
	args := []any{}
	if reportType != "" {
		q += ` WHERE report_type = $1`
		args = append(args, reportType)
	}
	q += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.ReportRun{}
	for rows.Next() {
		var run domain.ReportRun
		if err := rows.Scan(&run.ReportID, &run.ReportType, &run.Payload, &run.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (r *PostgresReportsRepo) LatestReportRun(ctx context.Context, reportType string) (*domain.ReportRun, error) {
	q := `
		SELECT report_id::text, report_type, payload, created_at
		FROM report_runs
		WHERE report_type = $1
		ORDER BY created_at DESC
		LIMIT 1`
	var run domain.ReportRun
	err := r.db.QueryRowContext(ctx, q, reportType).Scan(
		&run.ReportID, &run.ReportType, &run.Payload, &run.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}
