package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"roomops-data/internal/domain"
)

// MemoryReportsRepo 内存报表执行记录库（append-only，写入后不再更新）
type MemoryReportsRepo struct {
	mu   sync.RWMutex
	runs []domain.ReportRun
}

func NewMemoryReportsRepo() *MemoryReportsRepo {
	return &MemoryReportsRepo{}
}

func (r *MemoryReportsRepo) CreateReportRun(_ context.Context, run *domain.ReportRun) (*domain.ReportRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run.ReportID == "" {
		run.ReportID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	r.runs = append(r.runs, *run)
	return run, nil
}

func (r *MemoryReportsRepo) ListReportRuns(_ context.Context, reportType string) ([]domain.ReportRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.ReportRun{}
	for _, run := range r.runs {
		if reportType == "" || run.ReportType == reportType {
			out = append(out, run)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// LatestReportRun 取 created_at 最大的一条；无记录返回 (nil, nil)
func (r *MemoryReportsRepo) LatestReportRun(_ context.Context, reportType string) (*domain.ReportRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *domain.ReportRun
	for i := range r.runs {
		run := r.runs[i]
		if reportType != "" && run.ReportType != reportType {
			continue
		}
		if latest == nil || run.CreatedAt.After(latest.CreatedAt) {
			latest = &run
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}
