package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"roomops-data/internal/domain"
	"roomops-data/internal/repository"
	"roomops-data/internal/reset"
)

// ResetHandler 日结管理端 Handler：手工触发 + 报表读取/导出
type ResetHandler struct {
	orchestrator *reset.Orchestrator
	reports      repository.ReportsRepo
	logger       *zap.Logger
}

// NewResetHandler 创建日结 Handler
func NewResetHandler(orchestrator *reset.Orchestrator, reports repository.ReportsRepo, logger *zap.Logger) *ResetHandler {
	return &ResetHandler{
		orchestrator: orchestrator,
		reports:      reports,
		logger:       logger,
	}
}

// RunManualReset 管理员手工触发日结（绕过当日幂等保护），同步返回报表。
// 失败同步回错误：手工触发的失败必须对调用者可见。
func (h *ResetHandler) RunManualReset(w http.ResponseWriter, r *http.Request) {
	report, err := h.orchestrator.Run(r.Context(), reset.TriggerManual)
	if err != nil {
		h.logger.Error("Manual daily reset failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(report))
}

// GetLatestReport 返回最近一份 daily_reset 报表（按 created_at 最大选取）
func (h *ResetHandler) GetLatestReport(w http.ResponseWriter, r *http.Request) {
	run, err := h.reports.LatestReportRun(r.Context(), domain.ReportTypeDailyReset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	if run == nil {
		writeJSON(w, http.StatusNotFound, Fail("no daily reset report yet"))
		return
	}
	var report domain.DailyResetReport
	if err := json.Unmarshal(run.Payload, &report); err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail("stored report is unreadable"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"report_id":  run.ReportID,
		"created_at": run.CreatedAt,
		"report":     report,
	}))
}

// ListReports 列出全部 daily_reset 报表执行记录（无保留上限，append-only）
func (h *ResetHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	runs, err := h.reports.ListReportRuns(r.Context(), domain.ReportTypeDailyReset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	items := make([]map[string]any, 0, len(runs))
	for _, run := range runs {
		items = append(items, map[string]any{
			"report_id":   run.ReportID,
			"report_type": run.ReportType,
			"payload":     json.RawMessage(run.Payload),
			"created_at":  run.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items, "total": len(items)}))
}

// ExportLatestReport 导出最近一份日结报表为 xlsx
func (h *ResetHandler) ExportLatestReport(w http.ResponseWriter, r *http.Request) {
	run, err := h.reports.LatestReportRun(r.Context(), domain.ReportTypeDailyReset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	if run == nil {
		writeJSON(w, http.StatusNotFound, Fail("no daily reset report yet"))
		return
	}
	var report domain.DailyResetReport
	if err := json.Unmarshal(run.Payload, &report); err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail("stored report is unreadable"))
		return
	}
	data, err := GenerateDailyResetExport(&report)
	if err != nil {
		h.logger.Error("Failed to generate report export", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	filename := fmt.Sprintf("daily_reset_%s.xlsx", report.Date)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Last-Modified", run.CreatedAt.UTC().Format(time.RFC1123))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
