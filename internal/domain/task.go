package domain

import (
	"database/sql"
)

// 任务类型（task_type）
const (
	TaskTypeHousekeeping = "housekeeping"
	TaskTypeMaintenance  = "maintenance"
	TaskTypeInspection   = "inspection"
	TaskTypeAlert        = "alert" // panic alert 由系统转为 alert 任务
)

// 任务状态（status）
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusPaused     = "paused"
	TaskStatusCompleted  = "completed"
	TaskStatusFailed     = "failed"
)

// Task 任务领域模型（对应 tasks 表）
// is_deleted 为软删除标记：日结归档只置位，不做物理删除
type Task struct {
	TaskID      string         `db:"task_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"` // nullable
	TaskType    string         `db:"task_type"`   // NOT NULL
	Status      string         `db:"status"`      // NOT NULL, default 'pending'
	RoomID      sql.NullString `db:"room_id"`     // nullable
	AssigneeID  sql.NullString `db:"assignee_id"` // nullable
	StartedAt   sql.NullTime   `db:"started_at"`  // nullable
	PausedAt    sql.NullTime   `db:"paused_at"`   // nullable
	FinishedAt  sql.NullTime   `db:"finished_at"` // nullable
	IsDeleted   bool           `db:"is_deleted"`  // NOT NULL, default false
	CreatedAt   sql.NullTime   `db:"created_at"`
}

func (t Task) ToJSON() map[string]any {
	m := map[string]any{
		"task_id":    t.TaskID,
		"title":      t.Title,
		"task_type":  t.TaskType,
		"status":     t.Status,
		"is_deleted": t.IsDeleted,
	}
	if t.Description.Valid {
		m["description"] = t.Description.String
	}
	if t.RoomID.Valid {
		m["room_id"] = t.RoomID.String
	}
	if t.AssigneeID.Valid {
		m["assignee_id"] = t.AssigneeID.String
	}
	if t.StartedAt.Valid {
		m["started_at"] = t.StartedAt.Time
	}
	if t.PausedAt.Valid {
		m["paused_at"] = t.PausedAt.Time
	}
	if t.FinishedAt.Valid {
		m["finished_at"] = t.FinishedAt.Time
	}
	if t.CreatedAt.Valid {
		m["created_at"] = t.CreatedAt.Time
	}
	return m
}
