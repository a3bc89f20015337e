package notify

import (
	"context"
	"time"
)

// 事件类型
const (
	EventRoomStatusChanged = "room_status_changed"
	EventTaskCompleted     = "task_completed"
	EventResetCompleted    = "reset_completed"
)

// Event 广播事件（fire-and-forget：发布失败只记日志，不影响业务流程）
type Event struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data"`
}

// Notifier 通知下沉接口。实现必须容忍无订阅者，且不得把发布失败
// 传导给调用方（Publish 不返回 error）。
type Notifier interface {
	Publish(ctx context.Context, ev Event)
}

// RoomStatusChanged 构造房态变更事件
func RoomStatusChanged(roomID, roomNumber, from, to string) Event {
	return Event{
		Type:       EventRoomStatusChanged,
		OccurredAt: time.Now(),
		Data: map[string]any{
			"room_id":     roomID,
			"room_number": roomNumber,
			"from":        from,
			"to":          to,
		},
	}
}

// TaskCompleted 构造任务完成事件
func TaskCompleted(taskID, taskType, roomID string) Event {
	return Event{
		Type:       EventTaskCompleted,
		OccurredAt: time.Now(),
		Data: map[string]any{
			"task_id":   taskID,
			"task_type": taskType,
			"room_id":   roomID,
		},
	}
}

// ResetCompleted 构造日结完成事件
func ResetCompleted(date string, rooms, transitioned, archived int) Event {
	return Event{
		Type:       EventResetCompleted,
		OccurredAt: time.Now(),
		Data: map[string]any{
			"date":               date,
			"rooms":              rooms,
			"rooms_transitioned": transitioned,
			"tasks_archived":     archived,
		},
	}
}

// NopNotifier 空实现（NOTIFY_MODE=off，或测试用）
type NopNotifier struct{}

func NewNopNotifier() *NopNotifier { return &NopNotifier{} }

func (n *NopNotifier) Publish(_ context.Context, _ Event) {}
