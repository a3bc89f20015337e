package reset

import (
	"roomops-data/internal/domain"
)

// transitions 日结房态迁移表（对闭集全覆盖的单一映射，便于审计）
// 粘滞状态：roll / out / maintenance / out_of_order 跨日保持不变；
// 其余房态在新的住宿日一律回到 dirty（默认需要重新做房）。
// 该策略刻意不做按物业配置。
var transitions = map[domain.RoomStatus]domain.RoomStatus{
	domain.RoomStatusDirty:          domain.RoomStatusDirty,
	domain.RoomStatusClean:          domain.RoomStatusDirty,
	domain.RoomStatusReady:          domain.RoomStatusDirty,
	domain.RoomStatusCleanInspected: domain.RoomStatusDirty,
	domain.RoomStatusRoll:           domain.RoomStatusRoll,
	domain.RoomStatusOut:            domain.RoomStatusOut,
	domain.RoomStatusMaintenance:    domain.RoomStatusMaintenance,
	domain.RoomStatusOutOfOrder:     domain.RoomStatusOutOfOrder,
}

// NextStatus 计算次日房态。纯函数，无 I/O。
// 对枚举闭集全定义；未知输入按 dirty 处理，保证迁移后不会留下未定义房态。
func NextStatus(current domain.RoomStatus) domain.RoomStatus {
	if next, ok := transitions[current]; ok {
		return next
	}
	return domain.RoomStatusDirty
}
