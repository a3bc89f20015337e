package domain

import (
	"database/sql"
)

// 工单状态（status）
const (
	WorkOrderStatusPending    = "pending"
	WorkOrderStatusInProgress = "in_progress"
	WorkOrderStatusCompleted  = "completed"
)

// WorkOrder 工单领域模型（对应 work_orders 表）
// 日结引擎只读工单，不做任何变更
type WorkOrder struct {
	WorkOrderID string         `db:"work_order_id"`
	Title       string         `db:"title"`
	Priority    string         `db:"priority"` // NOT NULL, default 'normal'
	Status      string         `db:"status"`   // NOT NULL, default 'pending'
	RoomID      sql.NullString `db:"room_id"`     // nullable
	AssigneeID  sql.NullString `db:"assignee_id"` // nullable
	SLADueAt    sql.NullTime   `db:"sla_due_at"`  // nullable
	CreatedAt   sql.NullTime   `db:"created_at"`
}

func (wo WorkOrder) ToJSON() map[string]any {
	m := map[string]any{
		"work_order_id": wo.WorkOrderID,
		"title":         wo.Title,
		"priority":      wo.Priority,
		"status":        wo.Status,
	}
	if wo.RoomID.Valid {
		m["room_id"] = wo.RoomID.String
	}
	if wo.AssigneeID.Valid {
		m["assignee_id"] = wo.AssigneeID.String
	}
	if wo.SLADueAt.Valid {
		m["sla_due_at"] = wo.SLADueAt.Time
	}
	if wo.CreatedAt.Valid {
		m["created_at"] = wo.CreatedAt.Time
	}
	return m
}
