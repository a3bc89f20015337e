package reset

import (
	"time"

	"roomops-data/internal/domain"
)

// BuildDailyResetReport 由各集合的一致性快照构建日结报表。
// 纯计算，无副作用；快照一致性由编排器负责，这里不加锁。
//
// 规则：
//   - 每个房间恰好产出一行（无任务的房间计数为0，不省略）；
//   - 房间的 assigned_to 取该房间"活动任务"（pending/in_progress，未软删）
//     的执行人姓名；用户已不存在时留空，不报错；
//   - 任务/工单汇总按状态全量过滤；
//   - per-status 房态计数覆盖全部8个枚举值（含0）。
func BuildDailyResetReport(
	asOf time.Time,
	rooms []domain.Room,
	tasks []domain.Task,
	workOrders []domain.WorkOrder,
	comments []domain.RoomComment,
	users []domain.User,
) domain.DailyResetReport {
	// 用户 id -> 姓名（仅用于展示扁平化，报表自包含）
	names := make(map[string]string, len(users))
	for _, u := range users {
		if u.Nickname.Valid {
			names[u.UserID] = u.Nickname.String
		}
	}

	roomStatuses := make([]domain.RoomStatusRow, 0, len(rooms))
	for _, room := range rooms {
		row := domain.RoomStatusRow{
			RoomID:     room.RoomID,
			RoomNumber: room.RoomNumber,
			Status:     string(room.Status),
		}
		// 活动任务决定展示用执行人；取遇到的第一个。执行人已不存在时
		// 该房间保持未分配，不回退到后续任务的执行人。
		assigneePicked := false
		for _, t := range tasks {
			if t.IsDeleted || !t.RoomID.Valid || t.RoomID.String != room.RoomID {
				continue
			}
			if t.Status == domain.TaskStatusCompleted {
				row.TasksCompleted++
			}
			if !assigneePicked &&
				(t.Status == domain.TaskStatusPending || t.Status == domain.TaskStatusInProgress) &&
				t.AssigneeID.Valid {
				row.AssignedTo = names[t.AssigneeID.String]
				assigneePicked = true
			}
		}
		for _, c := range comments {
			if c.RoomID == room.RoomID && !c.IsResolved {
				row.OpenComments++
			}
		}
		roomStatuses = append(roomStatuses, row)
	}

	var taskSummary domain.TaskSummary
	for _, t := range tasks {
		if t.IsDeleted {
			continue
		}
		taskSummary.Total++
		switch t.Status {
		case domain.TaskStatusCompleted:
			taskSummary.Completed++
		case domain.TaskStatusPending:
			taskSummary.Pending++
		}
	}

	var woSummary domain.WorkOrderSummary
	for _, wo := range workOrders {
		woSummary.Total++
		switch wo.Status {
		case domain.WorkOrderStatusCompleted:
			woSummary.Completed++
		case domain.WorkOrderStatusPending:
			woSummary.Pending++
		}
	}

	roomCounts := make(map[string]int, len(domain.AllRoomStatuses))
	for _, s := range domain.AllRoomStatuses {
		roomCounts[string(s)] = 0
	}
	for _, room := range rooms {
		roomCounts[string(room.Status)]++
	}

	return domain.DailyResetReport{
		Date:         asOf.Format("2006-01-02"),
		RoomStatuses: roomStatuses,
		Tasks:        taskSummary,
		WorkOrders:   woSummary,
		RoomCounts:   roomCounts,
		ExecutedAt:   asOf,
	}
}
