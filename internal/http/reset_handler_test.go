package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"roomops-data/internal/domain"
	"roomops-data/internal/repository"
	"roomops-data/internal/reset"
)

type resetTestEnv struct {
	rooms    *repository.MemoryRoomsRepo
	tasks    *repository.MemoryTasksRepo
	comments *repository.MemoryRoomCommentsRepo
	reports  *repository.MemoryReportsRepo
	router   *Router
}

func newResetTestEnv(t *testing.T) *resetTestEnv {
	t.Helper()
	logger := zap.NewNop()

	env := &resetTestEnv{
		rooms:    repository.NewMemoryRoomsRepo(),
		tasks:    repository.NewMemoryTasksRepo(),
		comments: repository.NewMemoryRoomCommentsRepo(),
		reports:  repository.NewMemoryReportsRepo(),
	}
	users := repository.NewMemoryUsersRepo()
	users.UpsertUser(domain.SystemUserID, "System", "system")

	orch := reset.NewOrchestrator(
		env.rooms, env.tasks, repository.NewMemoryWorkOrdersRepo(),
		env.comments, users, env.reports,
		nil, time.UTC, logger)

	env.router = NewRouter(logger)
	env.router.RegisterResetRoutes(NewResetHandler(orch, env.reports, logger))
	return env
}

func seedRoom(t *testing.T, env *resetTestEnv, number string, status domain.RoomStatus) *domain.Room {
	t.Helper()
	room, err := env.rooms.CreateRoom(context.Background(), &domain.Room{
		RoomNumber: number,
		Status:     status,
	})
	require.NoError(t, err)
	return room
}

func TestRunManualReset_ReturnsReportAndTransitionsRooms(t *testing.T) {
	env := newResetTestEnv(t)
	ctx := context.Background()

	ready := seedRoom(t, env, "101", domain.RoomStatusReady)
	seedRoom(t, env, "102", domain.RoomStatusOut)

	req := httptest.NewRequest(http.MethodPost, "/ops/api/v1/reset/run", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body Result[domain.DailyResetReport]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ResultSuccess, body.Code)
	// 报表反映结前快照
	assert.Equal(t, 1, body.Result.RoomCounts[string(domain.RoomStatusReady)])
	assert.Equal(t, 1, body.Result.RoomCounts[string(domain.RoomStatusOut)])
	assert.Len(t, body.Result.RoomStatuses, 2)

	// ready → dirty，out 原地不动
	after, err := env.rooms.GetRoom(ctx, ready.RoomID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomStatusDirty, after.Status)

	comments, err := env.comments.ListRoomComments(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, domain.SystemUserID, comments[0].AuthorID)
	assert.Equal(t, "Daily reset: Status changed from ready to dirty", comments[0].Content)
}

func TestGetLatestReport_NotFoundBeforeFirstRun(t *testing.T) {
	env := newResetTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/ops/api/v1/reset/latest", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body Result[any]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ResultError, body.Code)
}

func TestGetLatestReport_AfterRun(t *testing.T) {
	env := newResetTestEnv(t)
	seedRoom(t, env, "201", domain.RoomStatusClean)

	run := httptest.NewRequest(http.MethodPost, "/ops/api/v1/reset/run", nil)
	env.router.ServeHTTP(httptest.NewRecorder(), run)

	req := httptest.NewRequest(http.MethodGet, "/ops/api/v1/reset/latest", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body Result[struct {
		ReportID  string                  `json:"report_id"`
		CreatedAt time.Time               `json:"created_at"`
		Report    domain.DailyResetReport `json:"report"`
	}]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Result.ReportID)
	assert.Equal(t, 1, body.Result.Report.RoomCounts[string(domain.RoomStatusClean)])
}

func TestListReports_AppendOnlyAcrossRuns(t *testing.T) {
	env := newResetTestEnv(t)
	seedRoom(t, env, "301", domain.RoomStatusDirty)

	// 手工触发不受当日幂等保护，连跑两次产生两条记录
	for i := 0; i < 2; i++ {
		run := httptest.NewRequest(http.MethodPost, "/ops/api/v1/reset/run", nil)
		env.router.ServeHTTP(httptest.NewRecorder(), run)
	}

	req := httptest.NewRequest(http.MethodGet, "/ops/api/v1/reset/reports", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body Result[struct {
		Items []json.RawMessage `json:"items"`
		Total int               `json:"total"`
	}]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Result.Total)
	assert.Len(t, body.Result.Items, 2)
}

func TestExportLatestReport_ReturnsXlsxAttachment(t *testing.T) {
	env := newResetTestEnv(t)
	room := seedRoom(t, env, "401", domain.RoomStatusCleanInspected)
	_, err := env.tasks.CreateTask(context.Background(), &domain.Task{
		Title:    "Deep clean",
		TaskType: domain.TaskTypeHousekeeping,
		Status:   domain.TaskStatusCompleted,
		RoomID:   sql.NullString{String: room.RoomID, Valid: true},
	})
	require.NoError(t, err)

	run := httptest.NewRequest(http.MethodPost, "/ops/api/v1/reset/run", nil)
	env.router.ServeHTTP(httptest.NewRecorder(), run)

	req := httptest.NewRequest(http.MethodGet, "/ops/api/v1/reset/latest/export", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "daily_reset_")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	// xlsx 是 zip 容器，魔数 PK
	body := rec.Body.Bytes()
	require.Greater(t, len(body), 4)
	assert.Equal(t, []byte{'P', 'K'}, body[:2])
}

func TestResetRoutes_MethodNotAllowed(t *testing.T) {
	env := newResetTestEnv(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/ops/api/v1/reset/run"},
		{http.MethodPost, "/ops/api/v1/reset/latest"},
		{http.MethodPost, "/ops/api/v1/reset/latest/export"},
		{http.MethodPost, "/ops/api/v1/reset/reports"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "%s %s", tc.method, tc.path)
	}
}
