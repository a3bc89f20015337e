package domain

import (
	"database/sql"
)

// RoomStatus 房态枚举（对应 rooms.status，闭集，共8个值）
type RoomStatus string

const (
	RoomStatusDirty          RoomStatus = "dirty"
	RoomStatusClean          RoomStatus = "clean"
	RoomStatusReady          RoomStatus = "ready"
	RoomStatusRoll           RoomStatus = "roll"
	RoomStatusOut            RoomStatus = "out"
	RoomStatusCleanInspected RoomStatus = "clean_inspected"
	RoomStatusOutOfOrder     RoomStatus = "out_of_order"
	RoomStatusMaintenance    RoomStatus = "maintenance"
)

// AllRoomStatuses 所有合法房态（顺序固定，用于报表 per-status 统计）
var AllRoomStatuses = []RoomStatus{
	RoomStatusDirty,
	RoomStatusClean,
	RoomStatusReady,
	RoomStatusRoll,
	RoomStatusOut,
	RoomStatusCleanInspected,
	RoomStatusOutOfOrder,
	RoomStatusMaintenance,
}

// ValidRoomStatus 校验房态是否属于闭集
func ValidRoomStatus(s RoomStatus) bool {
	for _, v := range AllRoomStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Room 客房领域模型（对应 rooms 表）
type Room struct {
	RoomID     string         `db:"room_id"`
	RoomNumber string         `db:"room_number"`
	RoomType   sql.NullString `db:"room_type"` // nullable
	Floor      sql.NullString `db:"floor"`     // nullable
	SquareFt   sql.NullInt64  `db:"square_ft"` // nullable
	Status     RoomStatus     `db:"status"`    // NOT NULL, default 'dirty'
	CreatedAt  sql.NullTime   `db:"created_at"`
	UpdatedAt  sql.NullTime   `db:"updated_at"`
}

func (r Room) ToJSON() map[string]any {
	m := map[string]any{
		"room_id":     r.RoomID,
		"room_number": r.RoomNumber,
		"status":      string(r.Status),
	}
	if r.RoomType.Valid {
		m["room_type"] = r.RoomType.String
	}
	if r.Floor.Valid {
		m["floor"] = r.Floor.String
	}
	if r.SquareFt.Valid {
		m["square_ft"] = r.SquareFt.Int64
	}
	if r.UpdatedAt.Valid {
		m["updated_at"] = r.UpdatedAt.Time
	}
	return m
}
