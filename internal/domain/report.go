package domain

import (
	"encoding/json"
	"time"
)

// ReportTypeDailyReset 日结报表的 report_type 判别值
const ReportTypeDailyReset = "daily_reset"

// ReportRun 报表执行记录（对应 report_runs 表，append-only，写入后不再更新）
type ReportRun struct {
	ReportID   string          `db:"report_id"`
	ReportType string          `db:"report_type"` // NOT NULL，如 'daily_reset'
	Payload    json.RawMessage `db:"payload"`     // JSONB，报表快照本体
	CreatedAt  time.Time       `db:"created_at"`
}

// RoomStatusRow 日结报表中单个房间的最终状态行
// assigned_to 为展示用的扁平化姓名字符串（报表自包含，不回查 users 表）
type RoomStatusRow struct {
	RoomID         string `json:"room_id"`
	RoomNumber     string `json:"room_number"`
	Status         string `json:"status"`
	AssignedTo     string `json:"assigned_to,omitempty"`
	TasksCompleted int    `json:"tasks_completed"`
	OpenComments   int    `json:"open_comments"`
}

// TaskSummary 任务汇总
type TaskSummary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// WorkOrderSummary 工单汇总
type WorkOrderSummary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// DailyResetReport 日结报表快照（每日历日至多一份，不可变）
type DailyResetReport struct {
	Date         string           `json:"date"` // YYYY-MM-DD（本地日历日）
	RoomStatuses []RoomStatusRow  `json:"room_statuses"`
	Tasks        TaskSummary      `json:"tasks"`
	WorkOrders   WorkOrderSummary `json:"work_orders"`
	RoomCounts   map[string]int   `json:"room_counts"` // 8个房态全量出现，含0
	ExecutedAt   time.Time        `json:"executed_at"`
}
