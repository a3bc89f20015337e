package reset

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"roomops-data/internal/domain"
	"roomops-data/internal/repository"
)

type testDeps struct {
	rooms    *repository.MemoryRoomsRepo
	tasks    *repository.MemoryTasksRepo
	orders   *repository.MemoryWorkOrdersRepo
	comments *repository.MemoryRoomCommentsRepo
	users    *repository.MemoryUsersRepo
	reports  *repository.MemoryReportsRepo
}

func newTestOrchestrator(t *testing.T, now time.Time) (*Orchestrator, *testDeps) {
	t.Helper()
	deps := &testDeps{
		rooms:    repository.NewMemoryRoomsRepo(),
		tasks:    repository.NewMemoryTasksRepo(),
		orders:   repository.NewMemoryWorkOrdersRepo(),
		comments: repository.NewMemoryRoomCommentsRepo(),
		users:    repository.NewMemoryUsersRepo(),
		reports:  repository.NewMemoryReportsRepo(),
	}
	o := NewOrchestrator(
		deps.rooms, deps.tasks, deps.orders, deps.comments, deps.users, deps.reports,
		nil, time.UTC, zap.NewNop())
	o.now = func() time.Time { return now }
	return o, deps
}

func seedRoom(t *testing.T, deps *testDeps, number string, status domain.RoomStatus) *domain.Room {
	t.Helper()
	room, err := deps.rooms.CreateRoom(context.Background(), &domain.Room{
		RoomNumber: number,
		Status:     status,
	})
	require.NoError(t, err)
	return room
}

func TestRun_TransitionsAndAuditComments(t *testing.T) {
	now := time.Date(2025, 3, 11, 0, 0, 1, 0, time.UTC)
	o, deps := newTestOrchestrator(t, now)
	ctx := context.Background()

	a := seedRoom(t, deps, "101", domain.RoomStatusReady)
	b := seedRoom(t, deps, "102", domain.RoomStatusRoll)
	c := seedRoom(t, deps, "103", domain.RoomStatusOutOfOrder)

	report, err := o.Run(ctx, TriggerScheduled)
	require.NoError(t, err)
	require.NotNil(t, report)

	// A ready -> dirty，B/C 粘滞不动
	gotA, _ := deps.rooms.GetRoom(ctx, a.RoomID)
	gotB, _ := deps.rooms.GetRoom(ctx, b.RoomID)
	gotC, _ := deps.rooms.GetRoom(ctx, c.RoomID)
	assert.Equal(t, domain.RoomStatusDirty, gotA.Status)
	assert.Equal(t, domain.RoomStatusRoll, gotB.Status)
	assert.Equal(t, domain.RoomStatusOutOfOrder, gotC.Status)

	// 只有 A 产生系统审计留言
	comments, err := deps.comments.ListRoomComments(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, a.RoomID, comments[0].RoomID)
	assert.Equal(t, domain.SystemUserID, comments[0].AuthorID)
	assert.Equal(t, "Daily reset: Status changed from ready to dirty", comments[0].Content)

	// 报表反映结前状态
	require.Len(t, report.RoomStatuses, 3)
	assert.Equal(t, "ready", report.RoomStatuses[0].Status)
	assert.Equal(t, "2025-03-11", report.Date)
}

func TestRun_ArchivesCompletedTasks(t *testing.T) {
	now := time.Date(2025, 3, 11, 0, 0, 1, 0, time.UTC)
	o, deps := newTestOrchestrator(t, now)
	ctx := context.Background()

	done, err := deps.tasks.CreateTask(ctx, &domain.Task{
		Title: "Turn room 101", TaskType: domain.TaskTypeHousekeeping,
		Status: domain.TaskStatusCompleted,
	})
	require.NoError(t, err)
	open, err := deps.tasks.CreateTask(ctx, &domain.Task{
		Title: "Fix AC", TaskType: domain.TaskTypeMaintenance,
		Status: domain.TaskStatusInProgress,
	})
	require.NoError(t, err)

	_, err = o.Run(ctx, TriggerScheduled)
	require.NoError(t, err)

	gotDone, _ := deps.tasks.GetTask(ctx, done.TaskID)
	gotOpen, _ := deps.tasks.GetTask(ctx, open.TaskID)
	assert.True(t, gotDone.IsDeleted)
	assert.False(t, gotOpen.IsDeleted)
	assert.Equal(t, domain.TaskStatusInProgress, gotOpen.Status)
}

// 同日第二次 scheduled 触发是静默 no-op；manual 仍然全量执行
func TestRun_ScheduledIdempotentPerDate_ManualBypasses(t *testing.T) {
	now := time.Date(2025, 3, 11, 0, 0, 1, 0, time.UTC)
	o, deps := newTestOrchestrator(t, now)
	ctx := context.Background()

	room := seedRoom(t, deps, "101", domain.RoomStatusReady)

	first, err := o.Run(ctx, TriggerScheduled)
	require.NoError(t, err)
	require.NotNil(t, first)

	// 把房间改回 ready，验证第二次 scheduled 不会再动它
	require.NoError(t, deps.rooms.UpdateRoomStatus(ctx, room.RoomID, domain.RoomStatusReady))

	second, err := o.Run(ctx, TriggerScheduled)
	require.NoError(t, err)
	assert.Nil(t, second)

	got, _ := deps.rooms.GetRoom(ctx, room.RoomID)
	assert.Equal(t, domain.RoomStatusReady, got.Status)

	runs, _ := deps.reports.ListReportRuns(ctx, domain.ReportTypeDailyReset)
	assert.Len(t, runs, 1)

	// manual 绕过 guard：再次全量执行
	third, err := o.Run(ctx, TriggerManual)
	require.NoError(t, err)
	require.NotNil(t, third)

	got, _ = deps.rooms.GetRoom(ctx, room.RoomID)
	assert.Equal(t, domain.RoomStatusDirty, got.Status)

	runs, _ = deps.reports.ListReportRuns(ctx, domain.ReportTypeDailyReset)
	assert.Len(t, runs, 2)
}

// 次日边界后 scheduled 再次生效
func TestRun_NewDateResetsGuard(t *testing.T) {
	now := time.Date(2025, 3, 11, 0, 0, 1, 0, time.UTC)
	o, deps := newTestOrchestrator(t, now)
	ctx := context.Background()

	seedRoom(t, deps, "101", domain.RoomStatusReady)

	first, err := o.Run(ctx, TriggerScheduled)
	require.NoError(t, err)
	require.NotNil(t, first)

	o.now = func() time.Time { return now.AddDate(0, 0, 1) }
	second, err := o.Run(ctx, TriggerScheduled)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "2025-03-12", second.Date)
}

// 构造时从报表库种子化 guard：重启当日不会重复跑 scheduled
func TestNewOrchestrator_SeedsGuardFromLatestReport(t *testing.T) {
	now := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)
	o, deps := newTestOrchestrator(t, now)
	ctx := context.Background()

	seedRoom(t, deps, "101", domain.RoomStatusReady)
	_, err := o.Run(ctx, TriggerScheduled)
	require.NoError(t, err)

	// "重启"：同一批 repo 上重建编排器
	restarted := NewOrchestrator(
		deps.rooms, deps.tasks, deps.orders, deps.comments, deps.users, deps.reports,
		nil, time.UTC, zap.NewNop())
	restarted.now = func() time.Time { return now }

	report, err := restarted.Run(ctx, TriggerScheduled)
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestRun_EmptyCollections(t *testing.T) {
	now := time.Date(2025, 3, 11, 0, 0, 1, 0, time.UTC)
	o, _ := newTestOrchestrator(t, now)

	report, err := o.Run(context.Background(), TriggerScheduled)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Empty(t, report.RoomStatuses)
	assert.Equal(t, 0, report.Tasks.Total)
	assert.Equal(t, 0, report.WorkOrders.Total)
}

// 落库的报表读回后与聚合产物逐字段一致（存储边界无字段丢失/改名）
func TestRun_PersistedReportRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 11, 0, 0, 1, 0, time.UTC)
	o, deps := newTestOrchestrator(t, now)
	ctx := context.Background()

	seedRoom(t, deps, "101", domain.RoomStatusReady)
	_, err := deps.tasks.CreateTask(ctx, &domain.Task{
		Title: "Turn room", TaskType: domain.TaskTypeHousekeeping,
		Status: domain.TaskStatusCompleted,
		RoomID: sql.NullString{String: "ignored", Valid: false},
	})
	require.NoError(t, err)

	returned, err := o.Run(ctx, TriggerScheduled)
	require.NoError(t, err)
	require.NotNil(t, returned)

	run, err := deps.reports.LatestReportRun(ctx, domain.ReportTypeDailyReset)
	require.NoError(t, err)
	require.NotNil(t, run)

	var stored domain.DailyResetReport
	require.NoError(t, json.Unmarshal(run.Payload, &stored))

	expected, err := json.Marshal(returned)
	require.NoError(t, err)
	actual, err := json.Marshal(stored)
	require.NoError(t, err)
	assert.JSONEq(t, string(expected), string(actual))
}
