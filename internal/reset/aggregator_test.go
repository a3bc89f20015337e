package reset

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomops-data/internal/domain"
)

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func TestBuildDailyResetReport_OneRowPerRoom(t *testing.T) {
	asOf := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	rooms := []domain.Room{
		{RoomID: "r1", RoomNumber: "101", Status: domain.RoomStatusReady},
		{RoomID: "r2", RoomNumber: "102", Status: domain.RoomStatusDirty},
		{RoomID: "r3", RoomNumber: "103", Status: domain.RoomStatusRoll},
	}
	users := []domain.User{
		{UserID: "u1", Nickname: nullStr("Ana"), Role: "housekeeper"},
	}
	tasks := []domain.Task{
		{TaskID: "t1", Status: domain.TaskStatusCompleted, RoomID: nullStr("r1")},
		{TaskID: "t2", Status: domain.TaskStatusCompleted, RoomID: nullStr("r1")},
		{TaskID: "t3", Status: domain.TaskStatusInProgress, RoomID: nullStr("r1"), AssigneeID: nullStr("u1")},
		{TaskID: "t4", Status: domain.TaskStatusCompleted, RoomID: nullStr("r2"), IsDeleted: true}, // 软删除不计
	}
	comments := []domain.RoomComment{
		{CommentID: "c1", RoomID: "r2", AuthorID: "u1", IsResolved: false},
		{CommentID: "c2", RoomID: "r2", AuthorID: "u1", IsResolved: true},
	}

	report := BuildDailyResetReport(asOf, rooms, tasks, nil, comments, users)

	require.Len(t, report.RoomStatuses, 3)
	assert.Equal(t, "2025-03-10", report.Date)

	r1 := report.RoomStatuses[0]
	assert.Equal(t, "101", r1.RoomNumber)
	assert.Equal(t, 2, r1.TasksCompleted)
	assert.Equal(t, "Ana", r1.AssignedTo)
	assert.Equal(t, 0, r1.OpenComments)

	r2 := report.RoomStatuses[1]
	assert.Equal(t, 0, r2.TasksCompleted)
	assert.Equal(t, "", r2.AssignedTo)
	assert.Equal(t, 1, r2.OpenComments)

	// 无任务无留言的房间仍有行，全零
	r3 := report.RoomStatuses[2]
	assert.Equal(t, "103", r3.RoomNumber)
	assert.Equal(t, 0, r3.TasksCompleted)
	assert.Equal(t, 0, r3.OpenComments)
}

func TestBuildDailyResetReport_RoomCountsSumToTotal(t *testing.T) {
	rooms := []domain.Room{
		{RoomID: "r1", RoomNumber: "101", Status: domain.RoomStatusReady},
		{RoomID: "r2", RoomNumber: "102", Status: domain.RoomStatusDirty},
		{RoomID: "r3", RoomNumber: "103", Status: domain.RoomStatusDirty},
		{RoomID: "r4", RoomNumber: "104", Status: domain.RoomStatusMaintenance},
	}
	report := BuildDailyResetReport(time.Now(), rooms, nil, nil, nil, nil)

	require.Len(t, report.RoomCounts, len(domain.AllRoomStatuses))
	sum := 0
	for _, s := range domain.AllRoomStatuses {
		count, ok := report.RoomCounts[string(s)]
		assert.True(t, ok, "missing status key %s", s)
		sum += count
	}
	assert.Equal(t, len(rooms), sum)
	assert.Equal(t, 2, report.RoomCounts["dirty"])
}

func TestBuildDailyResetReport_Summaries(t *testing.T) {
	tasks := []domain.Task{
		{TaskID: "t1", Status: domain.TaskStatusCompleted},
		{TaskID: "t2", Status: domain.TaskStatusPending},
		{TaskID: "t3", Status: domain.TaskStatusInProgress},
	}
	workOrders := []domain.WorkOrder{
		{WorkOrderID: "w1", Status: domain.WorkOrderStatusCompleted},
		{WorkOrderID: "w2", Status: domain.WorkOrderStatusPending},
		{WorkOrderID: "w3", Status: domain.WorkOrderStatusPending},
	}
	report := BuildDailyResetReport(time.Now(), nil, tasks, workOrders, nil, nil)

	assert.Equal(t, domain.TaskSummary{Total: 3, Completed: 1, Pending: 1}, report.Tasks)
	assert.Equal(t, domain.WorkOrderSummary{Total: 3, Completed: 1, Pending: 2}, report.WorkOrders)
}

// 已删除的用户：assignee 留空，不报错
func TestBuildDailyResetReport_MissingUserYieldsEmptyAssignee(t *testing.T) {
	rooms := []domain.Room{{RoomID: "r1", RoomNumber: "101", Status: domain.RoomStatusDirty}}
	tasks := []domain.Task{
		{TaskID: "t1", Status: domain.TaskStatusPending, RoomID: nullStr("r1"), AssigneeID: nullStr("ghost")},
	}
	report := BuildDailyResetReport(time.Now(), rooms, tasks, nil, nil, nil)
	require.Len(t, report.RoomStatuses, 1)
	assert.Equal(t, "", report.RoomStatuses[0].AssignedTo)
}

// 第一个活动任务的执行人已不存在：房间保持未分配，
// 不回退到后续活动任务的执行人
func TestBuildDailyResetReport_FirstActiveAssigneeWins(t *testing.T) {
	rooms := []domain.Room{{RoomID: "r1", RoomNumber: "101", Status: domain.RoomStatusDirty}}
	users := []domain.User{
		{UserID: "u2", Nickname: nullStr("Bo"), Role: "housekeeper"},
	}
	tasks := []domain.Task{
		{TaskID: "t1", Status: domain.TaskStatusPending, RoomID: nullStr("r1"), AssigneeID: nullStr("ghost")},
		{TaskID: "t2", Status: domain.TaskStatusInProgress, RoomID: nullStr("r1"), AssigneeID: nullStr("u2")},
	}

	report := BuildDailyResetReport(time.Now(), rooms, tasks, nil, nil, users)

	require.Len(t, report.RoomStatuses, 1)
	assert.Equal(t, "", report.RoomStatuses[0].AssignedTo)
}

func TestBuildDailyResetReport_EmptyCollections(t *testing.T) {
	report := BuildDailyResetReport(time.Now(), nil, nil, nil, nil, nil)

	assert.NotNil(t, report.RoomStatuses)
	assert.Empty(t, report.RoomStatuses)
	assert.Equal(t, domain.TaskSummary{}, report.Tasks)
	assert.Equal(t, domain.WorkOrderSummary{}, report.WorkOrders)
	for _, s := range domain.AllRoomStatuses {
		assert.Equal(t, 0, report.RoomCounts[string(s)])
	}
}
