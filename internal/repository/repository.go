package repository

import (
	"context"

	"roomops-data/internal/domain"
)

// 数据访问层接口。每个集合提供 postgres 与 memory 两套实现：
// DB 未就绪时（本地联测）main 落到 memory 实现，页面与日结引擎行为一致。

// RoomsRepo 客房数据访问
type RoomsRepo interface {
	ListRooms(ctx context.Context) ([]domain.Room, error)
	GetRoom(ctx context.Context, roomID string) (*domain.Room, error)
	CreateRoom(ctx context.Context, room *domain.Room) (*domain.Room, error)
	UpdateRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus) error
}

// TasksRepo 任务数据访问
// ListTasks(includeDeleted=false) 过滤软删除任务（默认列表视角）
type TasksRepo interface {
	ListTasks(ctx context.Context, includeDeleted bool) ([]domain.Task, error)
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)
	CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)
	UpdateTask(ctx context.Context, taskID string, payload map[string]any) error
	MarkTaskDeleted(ctx context.Context, taskID string) error
}

// WorkOrdersRepo 工单数据访问
type WorkOrdersRepo interface {
	ListWorkOrders(ctx context.Context) ([]domain.WorkOrder, error)
	CreateWorkOrder(ctx context.Context, wo *domain.WorkOrder) (*domain.WorkOrder, error)
	UpdateWorkOrder(ctx context.Context, workOrderID string, payload map[string]any) error
}

// RoomCommentsRepo 客房留言数据访问（只增不删）
type RoomCommentsRepo interface {
	ListRoomComments(ctx context.Context) ([]domain.RoomComment, error)
	CreateRoomComment(ctx context.Context, c *domain.RoomComment) (*domain.RoomComment, error)
	ResolveRoomComment(ctx context.Context, commentID string) error
}

// UsersRepo 用户数据访问（日结只读，用于报表姓名扁平化）
type UsersRepo interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

// ReportsRepo 报表执行记录数据访问（append-only）
// LatestReportRun 按 created_at 取最新一条；无记录时返回 (nil, nil)
type ReportsRepo interface {
	CreateReportRun(ctx context.Context, run *domain.ReportRun) (*domain.ReportRun, error)
	ListReportRuns(ctx context.Context, reportType string) ([]domain.ReportRun, error)
	LatestReportRun(ctx context.Context, reportType string) (*domain.ReportRun, error)
}
