package reset

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"roomops-data/internal/domain"
	"roomops-data/internal/notify"
	"roomops-data/internal/repository"
)

// Trigger 日结触发方式
type Trigger string

const (
	// TriggerScheduled 定时器触发，受"当日已结"幂等保护
	TriggerScheduled Trigger = "scheduled"
	// TriggerManual 管理员手工触发，绕过幂等保护（允许强制重跑）
	TriggerManual Trigger = "manual"
)

// Orchestrator 日结编排器：聚合 → 落报表 → 迁移房态 → 归档任务。
// lastResetDate 由编排器实例持有：构造时从最新一条 daily_reset 报表种子化，
// 每次成功运行后更新，进程重启外不会重置。
type Orchestrator struct {
	rooms      repository.RoomsRepo
	tasks      repository.TasksRepo
	workOrders repository.WorkOrdersRepo
	comments   repository.RoomCommentsRepo
	users      repository.UsersRepo
	reports    repository.ReportsRepo
	notifier   notify.Notifier
	logger     *zap.Logger
	loc        *time.Location

	now func() time.Time

	// mu 串行化整个关键区（聚合→归档）：手工触发与定时触发并发时不得交错写
	mu            sync.Mutex
	lastResetDate string
}

// NewOrchestrator 创建编排器并种子化幂等标记。
// 种子化失败只降级告警：最坏情况是当日重复跑一次定时日结。
func NewOrchestrator(
	rooms repository.RoomsRepo,
	tasks repository.TasksRepo,
	workOrders repository.WorkOrdersRepo,
	comments repository.RoomCommentsRepo,
	users repository.UsersRepo,
	reports repository.ReportsRepo,
	notifier notify.Notifier,
	loc *time.Location,
	logger *zap.Logger,
) *Orchestrator {
	if loc == nil {
		loc = time.Local
	}
	if notifier == nil {
		notifier = notify.NewNopNotifier()
	}
	o := &Orchestrator{
		rooms:      rooms,
		tasks:      tasks,
		workOrders: workOrders,
		comments:   comments,
		users:      users,
		reports:    reports,
		notifier:   notifier,
		logger:     logger,
		loc:        loc,
		now:        time.Now,
	}
	o.seedLastResetDate()
	return o
}

func (o *Orchestrator) seedLastResetDate() {
	run, err := o.reports.LatestReportRun(context.Background(), domain.ReportTypeDailyReset)
	if err != nil {
		o.logger.Warn("Failed to seed last reset date from report store", zap.Error(err))
		return
	}
	if run == nil {
		return
	}
	var report domain.DailyResetReport
	if err := json.Unmarshal(run.Payload, &report); err != nil {
		o.logger.Warn("Failed to decode latest daily reset report", zap.Error(err))
		return
	}
	o.lastResetDate = report.Date
	o.logger.Info("Seeded last reset date", zap.String("date", report.Date))
}

// Run 执行一次日结。
// scheduled 触发在当日已结时静默跳过（返回 nil, nil）；manual 触发总是执行。
// 任一步骤失败即中止，不自动重试；报表先于任何变更落库，崩溃时报表
// 始终反映结前状态。步骤4/5之后的失败会留下"报表已写、房态部分迁移"
// 的不一致窗口（无补偿回滚），手工重跑是安全的：房态迁移逐房幂等，
// 归档只会重复标记已完成任务。
func (o *Orchestrator) Run(ctx context.Context, trigger Trigger) (*domain.DailyResetReport, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.now().In(o.loc)
	today := now.Format("2006-01-02")

	if trigger == TriggerScheduled && o.lastResetDate == today {
		o.logger.Info("Daily reset already completed for today, skipping",
			zap.String("date", today))
		return nil, nil
	}

	o.logger.Info("Starting daily reset",
		zap.String("trigger", string(trigger)),
		zap.String("date", today))

	// 1. 快照读取（任何读失败都在变更前中止，手工重试安全）
	rooms, err := o.rooms.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	tasks, err := o.tasks.ListTasks(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	workOrders, err := o.workOrders.ListWorkOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}
	comments, err := o.comments.ListRoomComments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list room comments: %w", err)
	}
	users, err := o.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	// 2. 聚合（结前快照）
	report := BuildDailyResetReport(now, rooms, tasks, workOrders, comments, users)

	// 3. 先落报表再动数据
	payload, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to encode daily reset report: %w", err)
	}
	if _, err := o.reports.CreateReportRun(ctx, &domain.ReportRun{
		ReportType: domain.ReportTypeDailyReset,
		Payload:    payload,
	}); err != nil {
		return nil, fmt.Errorf("failed to persist daily reset report: %w", err)
	}

	// 4. 迁移房态，变化的房间各写一条系统审计留言；未变化的房间不动
	changed := 0
	for _, room := range rooms {
		next := NextStatus(room.Status)
		if next == room.Status {
			continue
		}
		if err := o.rooms.UpdateRoomStatus(ctx, room.RoomID, next); err != nil {
			return nil, fmt.Errorf("failed to transition room %s: %w", room.RoomNumber, err)
		}
		if _, err := o.comments.CreateRoomComment(ctx, &domain.RoomComment{
			RoomID:   room.RoomID,
			AuthorID: domain.SystemUserID,
			Content:  fmt.Sprintf("Daily reset: Status changed from %s to %s", room.Status, next),
		}); err != nil {
			return nil, fmt.Errorf("failed to create audit comment for room %s: %w", room.RoomNumber, err)
		}
		changed++
	}

	// 5. 归档已完成任务（软删除）
	archived := 0
	for _, t := range CompletedForArchive(tasks) {
		if err := o.tasks.MarkTaskDeleted(ctx, t.TaskID); err != nil {
			return nil, fmt.Errorf("failed to archive task %s: %w", t.TaskID, err)
		}
		archived++
	}

	// 6. 标记当日已结
	o.lastResetDate = today

	o.logger.Info("Daily reset completed",
		zap.String("trigger", string(trigger)),
		zap.String("date", today),
		zap.Int("rooms", len(rooms)),
		zap.Int("rooms_transitioned", changed),
		zap.Int("tasks_archived", archived))

	o.notifier.Publish(ctx, notify.ResetCompleted(today, len(rooms), changed, archived))

	return &report, nil
}
