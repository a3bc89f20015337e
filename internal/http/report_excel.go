package httpapi

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"roomops-data/internal/domain"
)

// DailyResetExportHeader 日结报表导出表头
var DailyResetExportHeader = []string{
	"Room Number",
	"Status",
	"Assigned To",
	"Tasks Completed",
	"Open Comments",
}

// GenerateDailyResetExport 生成日结报表 xlsx 文件
// Sheet 1: 每房一行的最终房态；Sheet 2: 汇总（任务/工单/房态计数）
func GenerateDailyResetExport(report *domain.DailyResetReport) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	roomSheet := "Room Statuses"
	index, err := f.NewSheet(roomSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range DailyResetExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(roomSheet, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(roomSheet, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i, row := range report.RoomStatuses {
		values := []any{row.RoomNumber, row.Status, row.AssignedTo, row.TasksCompleted, row.OpenComments}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(roomSheet, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	summarySheet := "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summary := [][]any{
		{"Date", report.Date},
		{"Executed At", report.ExecutedAt.Format("2006-01-02 15:04:05")},
		{"Tasks Total", report.Tasks.Total},
		{"Tasks Completed", report.Tasks.Completed},
		{"Tasks Pending", report.Tasks.Pending},
		{"Work Orders Total", report.WorkOrders.Total},
		{"Work Orders Completed", report.WorkOrders.Completed},
		{"Work Orders Pending", report.WorkOrders.Pending},
	}
	for _, s := range domain.AllRoomStatuses {
		summary = append(summary, []any{fmt.Sprintf("Rooms %s", s), report.RoomCounts[string(s)]})
	}
	for i, pair := range summary {
		for col, v := range pair {
			cell, err := excelize.CoordinatesToCellName(col+1, i+1)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set summary cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
